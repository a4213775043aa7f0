package bootstrap

import (
	"go-rrhh/internal/auth"
	"go-rrhh/internal/employee"
	"go-rrhh/internal/leave"
	"go-rrhh/internal/messaging/kafka"
	"go-rrhh/internal/payroll"
	"go-rrhh/internal/rbac"
	"go-rrhh/internal/salarycategory"

	"gorm.io/gorm"
)

// Migrate brings the schema to the current version. Order matters for the
// foreign keys between employees, categories and leave rows.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&salarycategory.SalaryCategory{},
		&employee.Employee{},
		&salarycategory.SalaryHistoryEntry{},
		&leave.LeaveRequest{},
		&payroll.Payroll{},
		&auth.User{},
		&rbac.RolePermission{},
		&kafka.OutboxRecord{},
	)
}
