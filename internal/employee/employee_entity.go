package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DocumentNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_document_number"`
	FullName       string     `gorm:"type:varchar(150);not null"`
	Email          string     `gorm:"type:varchar(150)"`
	Username       *string    `gorm:"type:varchar(50);index"`
	HireDate       *time.Time `gorm:"type:date"`
	CategoryID     *uuid.UUID `gorm:"type:uuid;index"`
	UnionID        *int64
	InsurerID      *int64
	AgreementID    *int64 `gorm:"index"`
	Active         bool   `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "employees"
}
