package leave

import (
	"context"
	"database/sql"
	"time"

	"go-rrhh/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryFilter narrows the leave history listing. Zero values mean no filter.
type HistoryFilter struct {
	EmployeeID *uuid.UUID
	Status     string
	LeaveType  string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockEmployee(ctx context.Context, employeeID uuid.UUID) (*LeaveEmployee, error)
	FindEmployee(ctx context.Context, employeeID uuid.UUID) (*LeaveEmployee, error)
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	FindPending(ctx context.Context) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error)
	FindHistory(ctx context.Context, filter HistoryFilter) ([]LeaveRequest, int64, error)
	FindSpans(ctx context.Context, employeeID uuid.UUID, types, statuses []string, window *DateWindow) ([]Span, error)
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

// LockEmployee takes a row lock that is held until the surrounding
// transaction ends, serialising submissions for the same employee.
func (r *repository) LockEmployee(ctx context.Context, employeeID uuid.UUID) (*LeaveEmployee, error) {
	var e LeaveEmployee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", employeeID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindEmployee(ctx context.Context, employeeID uuid.UUID) (*LeaveEmployee, error) {
	var e LeaveEmployee
	if err := r.db.WithContext(ctx).Where("id = ?", employeeID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(l).Error
}

func (r *repository) FindPending(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", StatusPending).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindHistory(ctx context.Context, filter HistoryFilter) ([]LeaveRequest, int64, error) {
	scope := historyScope(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&LeaveRequest{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Employee").
		Order("start_date DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&leaves).Error
	return leaves, total, err
}

func historyScope(filter HistoryFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.EmployeeID != nil {
			db = db.Where("employee_id = ?", *filter.EmployeeID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.LeaveType != "" {
			db = db.Where("leave_type = ?", filter.LeaveType)
		}
		if filter.From != nil {
			db = db.Where("end_date >= ?", *filter.From)
		}
		if filter.To != nil {
			db = db.Where("start_date <= ?", *filter.To)
		}
		return db
	}
}

func (r *repository) FindSpans(ctx context.Context, employeeID uuid.UUID, types, statuses []string, window *DateWindow) ([]Span, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("start_date", "end_date").
		Where("employee_id = ?", employeeID).
		Where("leave_type IN ?", types).
		Where("status IN ?", statuses)
	if window != nil {
		db = db.Where("start_date <= ? AND end_date >= ?", window.To, window.From)
	}

	var spans []Span
	err := db.Scan(&spans).Error
	return spans, err
}
