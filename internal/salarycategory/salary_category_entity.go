package salarycategory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KindGeneral    = "general"
	KindIndividual = "individual"
	KindReset      = "reset"
)

type SalaryCategory struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name                string           `gorm:"type:varchar(100);not null"`
	AgreementID         int64            `gorm:"not null;index"`
	BaseSalary          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	PreviousSalary      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	NonTaxableAllowance decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	LastUpdatedAt       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (SalaryCategory) TableName() string {
	return "salary_categories"
}

// SalaryHistoryEntry is append-only. Acting user fields are both set or
// both nil.
type SalaryHistoryEntry struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CategoryID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	PreviousSalary    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	NewSalary         decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	UpdateKind        string           `gorm:"type:varchar(20);not null"`
	PercentageApplied *decimal.Decimal `gorm:"type:decimal(12,6)"`
	EffectiveDate     time.Time        `gorm:"type:date;not null"`
	ActingUserID      *uuid.UUID       `gorm:"type:uuid"`
	ActingUsername    *string          `gorm:"type:varchar(50)"`
	Note              string           `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
}

func (SalaryHistoryEntry) TableName() string {
	return "salary_history"
}

// HistoryRow is a history entry joined with its category for exports.
type HistoryRow struct {
	SalaryHistoryEntry
	CategoryName string
	AgreementID  int64
}
