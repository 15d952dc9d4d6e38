package models

type EventType string

const (
	EventMessage EventType = "message"
	EventJoin    EventType = "join"
	EventLeave   EventType = "leave"
)

// InputEvent is what the dispatcher posts for every tracked chat event.
// Date is optional and defaults to today (UTC).
type InputEvent struct {
	Type     EventType `json:"type"`
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Date     string    `json:"date,omitempty"`
}
