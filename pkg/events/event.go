package events

import "time"

// Session lifecycle event types published after each state change.
const (
	TypeSessionCreated            = "SESSION_CREATED"
	TypeDocumentImported          = "DOCUMENT_IMPORTED"
	TypeDocumentImportUnconfirmed = "DOCUMENT_IMPORT_UNCONFIRMED"
	TypeExchangeRecorded          = "EXCHANGE_RECORDED"
	TypeSessionDeleted            = "SESSION_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation the concrete events build on.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionEvent builds a session-scoped event. The session id is always
// present in the payload under "session_id"; extra fields are merged in.
func NewSessionEvent(eventType, sessionID string, extra map[string]interface{}) Event {
	payload := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
}
