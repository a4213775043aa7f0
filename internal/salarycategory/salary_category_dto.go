package salarycategory

import "github.com/shopspring/decimal"

type UpdateSalaryRequest struct {
	NewSalary     *decimal.Decimal `json:"new_salary" binding:"required"`
	EffectiveDate string           `json:"effective_date"`
	Note          string           `json:"note" binding:"max=255"`
}

type BulkUpdateRequest struct {
	AgreementID    int64            `json:"agreement_id" binding:"required,gt=0"`
	Percentage     *decimal.Decimal `json:"percentage"`
	FixedAllowance *decimal.Decimal `json:"fixed_allowance"`
	EffectiveDate  string           `json:"effective_date"`
	Note           string           `json:"note" binding:"max=255"`
}

type ExportQuery struct {
	AgreementID *int64 `form:"agreement_id"`
	From        string `form:"from"`
	To          string `form:"to"`
}

type CategoryResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	AgreementID         int64   `json:"agreement_id"`
	BaseSalary          string  `json:"base_salary"`
	PreviousSalary      *string `json:"previous_salary,omitempty"`
	NonTaxableAllowance string  `json:"non_taxable_allowance"`
	LastUpdatedAt       *string `json:"last_updated_at,omitempty"`
}

type HistoryResponse struct {
	ID                string  `json:"id"`
	CategoryID        string  `json:"category_id"`
	PreviousSalary    string  `json:"previous_salary"`
	NewSalary         string  `json:"new_salary"`
	UpdateKind        string  `json:"update_kind"`
	PercentageApplied *string `json:"percentage_applied,omitempty"`
	EffectiveDate     string  `json:"effective_date"`
	ActingUserID      *string `json:"acting_user_id,omitempty"`
	ActingUsername    *string `json:"acting_username,omitempty"`
	Note              string  `json:"note,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type BulkUpdateResponse struct {
	AgreementID       int64  `json:"agreement_id"`
	SalariesUpdated   int    `json:"salaries_updated"`
	AllowancesUpdated int64  `json:"allowances_updated"`
	Percentage        string `json:"percentage,omitempty"`
	FixedAllowance    string `json:"fixed_allowance,omitempty"`
}
