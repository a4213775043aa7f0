package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeIllness     = "ILLNESS"
	TypeVacation    = "VACATION"
	TypePersonal    = "PERSONAL"
	TypeMaternity   = "MATERNITY"
	TypeBereavement = "BEREAVEMENT"
	TypeStudy       = "STUDY"
	TypeOther       = "OTHER"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// BalanceControlledTypes draw from the yearly entitlement.
var BalanceControlledTypes = []string{TypeVacation, TypePersonal}

var validTypes = map[string]bool{
	TypeIllness:     true,
	TypeVacation:    true,
	TypePersonal:    true,
	TypeMaternity:   true,
	TypeBereavement: true,
	TypeStudy:       true,
	TypeOther:       true,
}

func IsValidType(t string) bool {
	return validTypes[t]
}

func IsBalanceControlled(t string) bool {
	return t == TypeVacation || t == TypePersonal
}

type LeaveRequest struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_leave_requests_employee_status"`
	Employee   *LeaveEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	LeaveType         string    `gorm:"type:varchar(20);not null"`
	StartDate         time.Time `gorm:"type:date;not null"`
	EndDate           time.Time `gorm:"type:date;not null"`
	ReinstatementDate time.Time `gorm:"type:date;not null"`
	Status            string    `gorm:"type:varchar(20);not null;index:idx_leave_requests_employee_status"`

	RequestedDays    *int
	RemainingBalance *int

	DiagnosisCode        *string `gorm:"type:varchar(10)"`
	DiagnosisDescription *string `gorm:"type:varchar(255)"`
	CertificateRef       *string `gorm:"type:varchar(255)"`
	Observations         *string `gorm:"type:text"`
	RejectionReason      *string `gorm:"type:text"`

	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	ResolvedBy *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveEmployee is the slice of the employee row leave handling needs.
type LeaveEmployee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentNumber string
	FullName       string
	Email          string
	HireDate       *time.Time `gorm:"type:date"`
	Active         bool
}

func (LeaveEmployee) TableName() string {
	return "employees"
}

// Span is the date range of a stored request, used by the ledger.
type Span struct {
	StartDate time.Time
	EndDate   time.Time
}
