package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Payroll is an uploaded payslip PDF for one employee and month. The
// amounts live inside the document; nothing here computes them.
type Payroll struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payrolls_employee_period"`
	Period           string     `gorm:"type:varchar(7);not null;uniqueIndex:uq_payrolls_employee_period"`
	FileRef          string     `gorm:"type:varchar(255);not null"`
	OriginalFilename string     `gorm:"type:varchar(255)"`
	UploadedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}

// PayrollEmployee is the slice of the employees table payroll needs.
type PayrollEmployee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Active   bool
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
