package events

import (
	"time"
)

// Event is a single entry in a pipeline run's audit stream
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventStore records and replays run events
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string) ([]Event, error)
	ReadAllEvents() ([]Event, error)
}

// BaseEvent is the concrete event carrier
type BaseEvent struct {
	EventType    string
	Stream       string
	EventData    interface{}
	EventTime    time.Time
	EventVersion int
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) StreamID() string {
	return e.Stream
}

func (e BaseEvent) Data() interface{} {
	return e.EventData
}

func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func (e BaseEvent) Version() int {
	return e.EventVersion
}

// NewEvent creates an unversioned event; the store assigns the version on append
func NewEvent(eventType, streamID string, data interface{}) Event {
	return BaseEvent{
		EventType: eventType,
		Stream:    streamID,
		EventData: data,
		EventTime: time.Now(),
	}
}
