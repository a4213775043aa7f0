package salarycategory

import (
	"context"
	"database/sql"
	"time"

	"go-rrhh/internal/shared/connection"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryFilter scopes the history export. Nil fields are not applied.
type HistoryFilter struct {
	AgreementID *int64
	From        *time.Time
	To          *time.Time
}

//go:generate mockgen -source=salary_category_repo.go -destination=mock/salary_category_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]SalaryCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SalaryCategory, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SalaryCategory, error)
	FindByAgreementForUpdate(ctx context.Context, agreementID int64) ([]SalaryCategory, error)
	InsertHistory(ctx context.Context, entries []SalaryHistoryEntry) error
	UpdateSalary(ctx context.Context, id uuid.UUID, previous, current decimal.Decimal, at time.Time) error
	UpdateAllowanceByAgreement(ctx context.Context, agreementID int64, allowance decimal.Decimal, at time.Time) (int64, error)
	FindHistory(ctx context.Context, categoryID uuid.UUID) ([]SalaryHistoryEntry, error)
	FindHistoryRows(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryCategory, error) {
	var cats []SalaryCategory
	err := r.db.WithContext(ctx).Order("agreement_id ASC, name ASC").Find(&cats).Error
	return cats, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*SalaryCategory, error) {
	var cat SalaryCategory
	if err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SalaryCategory, error) {
	var cat SalaryCategory
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cat, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *repository) FindByAgreementForUpdate(ctx context.Context, agreementID int64) ([]SalaryCategory, error) {
	var cats []SalaryCategory
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("agreement_id = ?", agreementID).
		Order("id ASC").
		Find(&cats).Error
	return cats, err
}

func (r *repository) InsertHistory(ctx context.Context, entries []SalaryHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) UpdateSalary(ctx context.Context, id uuid.UUID, previous, current decimal.Decimal, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&SalaryCategory{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"previous_salary": previous,
			"base_salary":     current,
			"last_updated_at": at,
		}).Error
}

func (r *repository) UpdateAllowanceByAgreement(ctx context.Context, agreementID int64, allowance decimal.Decimal, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&SalaryCategory{}).
		Where("agreement_id = ?", agreementID).
		Updates(map[string]any{
			"non_taxable_allowance": allowance,
			"last_updated_at":       at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindHistory(ctx context.Context, categoryID uuid.UUID) ([]SalaryHistoryEntry, error) {
	var entries []SalaryHistoryEntry
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindHistoryRows(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error) {
	db := r.db.WithContext(ctx).
		Table("salary_history").
		Select("salary_history.*, salary_categories.name AS category_name, salary_categories.agreement_id AS agreement_id").
		Joins("JOIN salary_categories ON salary_categories.id = salary_history.category_id")
	if filter.AgreementID != nil {
		db = db.Where("salary_categories.agreement_id = ?", *filter.AgreementID)
	}
	if filter.From != nil {
		db = db.Where("salary_history.effective_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("salary_history.effective_date <= ?", *filter.To)
	}

	var rows []HistoryRow
	err := db.Order("salary_history.effective_date DESC, salary_categories.name ASC").Scan(&rows).Error
	return rows, err
}
