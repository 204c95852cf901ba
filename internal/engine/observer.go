package engine

import "time"

// EventType represents the lifecycle phases of a catalog operation
type EventType string

const (
	EventCreateTable EventType = "create_table"
	EventInsert      EventType = "insert"
	EventOpStart     EventType = "op_start"
	EventOpEnd       EventType = "op_end"
	EventOpError     EventType = "op_error"
)

// Event represents a lifecycle event of the engine
type Event struct {
	Type      EventType // Type of event
	OpID      string    // Operation ID for tracing (shared by start and end)
	Table     string    // Table the operation reads or writes
	Timestamp time.Time // When the event occurred
	Data      any       // Phase-specific data (description, result name, row count, error)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
