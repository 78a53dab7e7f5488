package events

import "time"

const EmployeeCreatedTopic = "ems.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int       `json:"employee_id"`
	PositionID int       `json:"position_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
