package events

import (
	"sync"
)

// InMemoryEventStore keeps run event streams in memory, one stream per run
type InMemoryEventStore struct {
	streams   map[string][]Event
	allEvents []Event
	mutex     sync.RWMutex
}

// NewInMemoryEventStore creates an empty store
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:   make(map[string][]Event),
		allEvents: make([]Event, 0),
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent appends an event to the stream, assigning the next version
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)
	return nil
}

// ReadEvents returns the events of one stream in append order
func (s *InMemoryEventStore) ReadEvents(streamID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out, nil
}

// ReadAllEvents returns every recorded event across streams
func (s *InMemoryEventStore) ReadAllEvents() ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]Event, len(s.allEvents))
	copy(out, s.allEvents)
	return out, nil
}
