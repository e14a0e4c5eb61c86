package domain

import "time"

const (
	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
	EmployeeDeleted = "employee_deleted"
)

// EmployeeEvent is the message published to the events queue whenever an
// employee record is mutated. The notifier worker consumes these.
type EmployeeEvent struct {
	Type       string    `json:"type"`
	EmployeeID int64     `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	OccurredAt time.Time `json:"occurredAt"`
}
