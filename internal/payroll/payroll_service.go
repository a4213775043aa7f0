package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go-rrhh/internal/domain"
	payrollerrors "go-rrhh/internal/payroll/errors"
	"go-rrhh/internal/shared/contextutil"
	"go-rrhh/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	periodLayout     = "2006-01"
	periodConstraint = "uq_payrolls_employee_period"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, actor domain.Identity, req UploadPayrollRequest, filename string, data []byte) (PayrollResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error)
	Open(ctx context.Context, id string) (Document, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	files  storage.FileStore
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, files storage.FileStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, files: files, logger: l}
}

// Upload stores the PDF first and the row second; the file is removed again
// when the row cannot be written.
func (s *service) Upload(ctx context.Context, actor domain.Identity, req UploadPayrollRequest, filename string, data []byte) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	period, err := normalizePeriod(req.Period)
	if err != nil {
		return PayrollResponse{}, err
	}
	if len(data) == 0 {
		return PayrollResponse{}, payrollerrors.ErrFileRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upload payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	exists, err := qtx.ExistsForPeriod(ctx, employeeID, period)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		return PayrollResponse{}, payrollerrors.ErrPayrollExists
	}

	id := uuid.New()
	key := fmt.Sprintf("payrolls/%s/%s-%s.pdf", employeeID, period, id)
	ref, err := s.files.Save(ctx, key, data, storage.PDFContentType)
	if err != nil {
		s.logger.Error("upload payroll store file failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	p := &Payroll{
		ID:               id,
		EmployeeID:       employeeID,
		Period:           period,
		FileRef:          ref,
		OriginalFilename: cleanFilename(filename),
		UploadedBy:       actor.UserID,
	}

	err = qtx.Create(ctx, p)
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		if delErr := s.files.Delete(context.WithoutCancel(ctx), ref); delErr != nil {
			s.logger.Warn("failed to remove orphaned payroll file", zap.String("ref", ref), zap.Error(delErr))
		}
		s.logger.Error("upload payroll persist failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("upload payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", id.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("period", period),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]PayrollResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(employeeID))
	if err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	payrolls, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("get payrolls by employee failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) Open(ctx context.Context, id string) (Document, error) {
	payrollID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Document{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, payrollID)
	if err != nil {
		return Document{}, mapRepositoryError(err)
	}

	body, err := s.files.Open(ctx, p.FileRef)
	if errors.Is(err, storage.ErrFileNotFound) {
		s.logger.Warn("payroll file missing", zap.String("payroll_id", id), zap.String("ref", p.FileRef))
		return Document{}, payrollerrors.ErrPayrollFileMissing
	}
	if err != nil {
		return Document{}, err
	}

	name := p.OriginalFilename
	if name == "" {
		name = fmt.Sprintf("payroll-%s.pdf", p.Period)
	}
	return Document{Filename: name, Body: body}, nil
}

func cleanFilename(v string) string {
	name := filepath.Base(strings.TrimSpace(v))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func normalizePeriod(v string) (string, error) {
	t, err := time.Parse(periodLayout, strings.TrimSpace(v))
	if err != nil {
		return "", payrollerrors.ErrInvalidPeriodFormat
	}
	return t.Format(periodLayout), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == periodConstraint {
		return payrollerrors.ErrPayrollExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: payrolls") {
		return payrollerrors.ErrPayrollExists
	}
	return err
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID.String(),
		Period:           p.Period,
		OriginalFilename: p.OriginalFilename,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
	if p.UploadedBy != nil {
		v := p.UploadedBy.String()
		resp.UploadedBy = &v
	}
	return resp
}
