// Package orchestration wires the four pipeline stages into a single run:
// normalize -> summarize -> classify -> policy. Each stage consumes the
// previous stage's table and produces a new one; the orchestrator owns
// sequencing, run identity, audit events, and logging, and the stages stay
// pure.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"abcplan/pkg/application/dto"
	"abcplan/pkg/application/services/classify"
	"abcplan/pkg/application/services/normalize"
	"abcplan/pkg/application/services/policy"
	"abcplan/pkg/application/services/summarize"
	"abcplan/pkg/domain/entities"
	"abcplan/pkg/infrastructure/events"
)

// ErrEmptyTable is the only hard failure of the pipeline: a table with zero
// rows. Every other degenerate input yields defined zero results.
var ErrEmptyTable = errors.New("input table has no rows")

// Config aggregates the per-stage configuration for one orchestrator
type Config struct {
	Normalize           normalize.Config
	DefaultLeadTimeDays float64
	Classify            classify.Config
	Policy              policy.Params
}

// DefaultConfig returns the standard pipeline configuration
func DefaultConfig() Config {
	return Config{
		Normalize:           normalize.DefaultConfig(),
		DefaultLeadTimeDays: summarize.DefaultLeadTimeDays,
		Classify:            classify.DefaultConfig(),
		Policy:              policy.DefaultParams(),
	}
}

// PlanningOrchestrator coordinates the classification-and-policy pipeline
type PlanningOrchestrator struct {
	normalizer *normalize.Service
	summarizer *summarize.Service
	classifier *classify.Service
	policies   *policy.Service
	eventStore events.EventStore
	logger     *zap.Logger
}

// NewPlanningOrchestrator creates an orchestrator from the aggregated
// configuration. The event store may be nil when no audit trail is wanted.
func NewPlanningOrchestrator(
	config Config,
	eventStore events.EventStore,
	logger *zap.Logger,
) (*PlanningOrchestrator, error) {
	classifier, err := classify.NewService(config.Classify)
	if err != nil {
		return nil, fmt.Errorf("invalid classification config: %w", err)
	}

	policyService, err := policy.NewService(config.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid policy config: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &PlanningOrchestrator{
		normalizer: normalize.NewService(config.Normalize),
		summarizer: summarize.NewService(config.DefaultLeadTimeDays),
		classifier: classifier,
		policies:   policyService,
		eventStore: eventStore,
		logger:     logger,
	}, nil
}

// Run executes the full pipeline over the raw table and returns the run
// result. The input table is never mutated; each stage replaces the table
// the previous stage produced.
func (po *PlanningOrchestrator) Run(
	ctx context.Context,
	table *entities.RawTable,
) (*dto.RunResult, error) {
	if len(table.Rows) == 0 {
		return nil, ErrEmptyTable
	}

	runID := uuid.NewString()
	startTime := time.Now()

	po.appendEvent(runID, events.RunStartedEvent, events.RunStarted{
		RunID: runID,
		Rows:  len(table.Rows),
	})
	po.logger.Info("pipeline run started",
		zap.String("run_id", runID),
		zap.Int("rows", len(table.Rows)),
	)

	normalized, err := po.stage(ctx, runID, "normalize", func() []*entities.ProductRecord {
		return po.normalizer.Normalize(table)
	})
	if err != nil {
		return nil, po.failRun(runID, err)
	}

	summarized, err := po.stage(ctx, runID, "summarize", func() []*entities.ProductRecord {
		return po.summarizer.Summarize(normalized)
	})
	if err != nil {
		return nil, po.failRun(runID, err)
	}

	classified, err := po.stage(ctx, runID, "classify", func() []*entities.ProductRecord {
		return po.classifier.Classify(summarized)
	})
	if err != nil {
		return nil, po.failRun(runID, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, po.failRun(runID, err)
	}
	policyStart := time.Now()
	policies := po.policies.Compute(classified)
	po.appendEvent(runID, events.StageCompletedEvent, events.StageCompleted{
		RunID:   runID,
		Stage:   "policy",
		Rows:    len(policies),
		Elapsed: time.Since(policyStart),
	})

	tierCounts := map[string]int{
		entities.TierA.String(): 0,
		entities.TierB.String(): 0,
		entities.TierC.String(): 0,
	}
	for _, record := range classified {
		tierCounts[record.Tier.String()]++
	}

	result := &dto.RunResult{
		RunID:      runID,
		Columns:    append([]string(nil), table.Columns...),
		Products:   classified,
		Policies:   policies,
		TierCounts: tierCounts,
		TotalValue: po.classifier.TotalValue(summarized),
		Elapsed:    time.Since(startTime),
	}

	po.appendEvent(runID, events.RunCompletedEvent, events.RunCompleted{
		RunID:      runID,
		TierCounts: tierCounts,
		Elapsed:    result.Elapsed,
	})
	po.logger.Info("pipeline run completed",
		zap.String("run_id", runID),
		zap.Int("tier_a", tierCounts["A"]),
		zap.Int("tier_b", tierCounts["B"]),
		zap.Int("tier_c", tierCounts["C"]),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// stage runs one table transform with cancellation check, timing, and audit
func (po *PlanningOrchestrator) stage(
	ctx context.Context,
	runID string,
	name string,
	transform func() []*entities.ProductRecord,
) ([]*entities.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stageStart := time.Now()
	records := transform()
	elapsed := time.Since(stageStart)

	po.appendEvent(runID, events.StageCompletedEvent, events.StageCompleted{
		RunID:   runID,
		Stage:   name,
		Rows:    len(records),
		Elapsed: elapsed,
	})
	po.logger.Debug("pipeline stage completed",
		zap.String("run_id", runID),
		zap.String("stage", name),
		zap.Int("rows", len(records)),
		zap.Duration("elapsed", elapsed),
	)

	return records, nil
}

func (po *PlanningOrchestrator) failRun(runID string, err error) error {
	po.appendEvent(runID, events.RunFailedEvent, events.RunFailed{
		RunID:  runID,
		Reason: err.Error(),
	})
	po.logger.Error("pipeline run failed",
		zap.String("run_id", runID),
		zap.Error(err),
	)
	return err
}

func (po *PlanningOrchestrator) appendEvent(runID, eventType string, data interface{}) {
	if po.eventStore == nil {
		return
	}
	// Audit failures never abort a run.
	_ = po.eventStore.AppendEvent(runID, events.NewEvent(eventType, runID, data))
}
