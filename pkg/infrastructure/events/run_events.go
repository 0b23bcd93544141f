package events

import "time"

const (
	RunStartedEvent     = "run.started"
	StageCompletedEvent = "run.stage.completed"
	RunCompletedEvent   = "run.completed"
	RunFailedEvent      = "run.failed"
)

// RunStarted marks the beginning of a pipeline run over a loaded table
type RunStarted struct {
	RunID string `json:"run_id"`
	Rows  int    `json:"rows"`
}

// StageCompleted marks one pipeline stage finishing
type StageCompleted struct {
	RunID   string        `json:"run_id"`
	Stage   string        `json:"stage"`
	Rows    int           `json:"rows"`
	Elapsed time.Duration `json:"elapsed"`
}

// RunCompleted carries the run summary
type RunCompleted struct {
	RunID      string         `json:"run_id"`
	TierCounts map[string]int `json:"tier_counts"`
	Elapsed    time.Duration  `json:"elapsed"`
}

// RunFailed marks a run aborted before producing output
type RunFailed struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}
