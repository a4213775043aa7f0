package payroll

import (
	"context"
	"database/sql"

	"go-rrhh/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, period string) (bool, error)
	FindEmployee(ctx context.Context, employeeID uuid.UUID) (*PayrollEmployee, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Payroll, error) {
	var p Payroll
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ? AND period = ?", employeeID, period).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID uuid.UUID) (*PayrollEmployee, error) {
	var e PayrollEmployee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
