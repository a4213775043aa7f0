package events

import "time"

const (
	LeaveSubmittedTopic = "hr.leave.submitted.v1"
	LeaveResolvedTopic  = "hr.leave.resolved.v1"

	LeaveSubmittedEventType = "leave.submitted"
	LeaveResolvedEventType  = "leave.resolved"
)

type LeaveSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveType   string    `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	SubmittedBy string    `json:"submitted_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// LeaveResolvedEvent carries enough contact data for the notification
// consumer to work without querying the database.
type LeaveResolvedEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	EmployeeEmail   string    `json:"employee_email"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Outcome         string    `json:"outcome"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ResolvedBy      string    `json:"resolved_by,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
