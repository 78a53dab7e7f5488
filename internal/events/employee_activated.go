package events

import "time"

const EmployeeActivatedTopic = "ems.employee.lifecycle.v1"

type EmployeeActivatedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  int       `json:"employee_id"`
	ActivatedAt time.Time `json:"activated_at"`
}
