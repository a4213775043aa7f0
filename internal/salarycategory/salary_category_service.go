package salarycategory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go-rrhh/internal/domain"
	salarycategoryerrors "go-rrhh/internal/salarycategory/errors"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	agreementLockFm = "lock:salary-agreement:%d"
	agreementLockTT = 30 * time.Second

	// column scales of the money and percentage fields
	moneyScale      = 2
	percentageScale = 6
)

var hundred = decimal.NewFromInt(100)

// Locker is satisfied by *redislock.Client.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration, opt *redislock.Options) (*redislock.Lock, error)
}

//go:generate mockgen -source=salary_category_service.go -destination=mock/salary_category_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]CategoryResponse, error)
	GetByID(ctx context.Context, id string) (CategoryResponse, error)
	GetHistory(ctx context.Context, id string) ([]HistoryResponse, error)
	ExportHistory(ctx context.Context, q ExportQuery, w io.Writer) error
	UpdateIndividual(ctx context.Context, actor domain.Identity, id string, req UpdateSalaryRequest) (CategoryResponse, error)
	UpdateBulkByAgreement(ctx context.Context, actor domain.Identity, req BulkUpdateRequest) (BulkUpdateResponse, error)
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("salarycategory.service")
		}
	}
}

// WithLocker serialises bulk updates per agreement across API replicas.
func WithLocker(locker Locker) Option {
	return func(s *service) { s.locker = locker }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	db     *sql.DB
	repo   Repository
	locker Locker
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		now:    time.Now,
		logger: zap.L().Named("salarycategory.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetAll(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all categories failed", zap.Error(err))
		return nil, err
	}
	resp := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CategoryResponse, error) {
	catID, err := parseCategoryID(id)
	if err != nil {
		return CategoryResponse{}, err
	}
	cat, err := s.repo.FindByID(ctx, catID)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cat), nil
}

func (s *service) GetHistory(ctx context.Context, id string) ([]HistoryResponse, error) {
	catID, err := parseCategoryID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, catID); err != nil {
		return nil, mapRepositoryError(err)
	}
	entries, err := s.repo.FindHistory(ctx, catID)
	if err != nil {
		return nil, err
	}
	resp := make([]HistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapHistoryResponse(e)
	}
	return resp, nil
}

func (s *service) ExportHistory(ctx context.Context, q ExportQuery, w io.Writer) error {
	filter := HistoryFilter{AgreementID: q.AgreementID}
	var err error
	if filter.From, err = parseOptionalDate(q.From); err != nil {
		return err
	}
	if filter.To, err = parseOptionalDate(q.To); err != nil {
		return err
	}

	rows, err := s.repo.FindHistoryRows(ctx, filter)
	if err != nil {
		s.logger.Error("export salary history failed", zap.Error(err))
		return err
	}
	return WriteHistoryXLSX(w, rows)
}

// UpdateIndividual moves the current salary into the previous slot and
// appends one history entry in the same transaction.
func (s *service) UpdateIndividual(ctx context.Context, actor domain.Identity, id string, req UpdateSalaryRequest) (CategoryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update individual salary requested",
		zap.String("request_id", rid),
		zap.String("category_id", id),
		zap.String("actor", actor.Username),
	)

	catID, err := parseCategoryID(id)
	if err != nil {
		return CategoryResponse{}, err
	}
	if req.NewSalary == nil {
		return CategoryResponse{}, apperror.RequiredField("new_salary")
	}
	newSalary := *req.NewSalary
	if newSalary.IsNegative() {
		return CategoryResponse{}, salarycategoryerrors.ErrNegativeSalary
	}
	if exceedsScale(newSalary, moneyScale) {
		return CategoryResponse{}, salarycategoryerrors.ErrSalaryPrecision
	}
	effective, err := s.effectiveDate(req.EffectiveDate)
	if err != nil {
		return CategoryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update individual salary begin tx failed", zap.Error(err))
		return CategoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cat, err := qtx.FindByIDForUpdate(ctx, catID)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}

	kind := KindIndividual
	if newSalary.IsZero() {
		kind = KindReset
	}
	entry := newHistoryEntry(actor, cat.ID, cat.BaseSalary, newSalary, kind, nil, effective, req.Note)
	if err := qtx.InsertHistory(ctx, []SalaryHistoryEntry{entry}); err != nil {
		s.logger.Error("update individual salary history failed", zap.Error(err))
		return CategoryResponse{}, err
	}

	now := s.now().UTC()
	if err := qtx.UpdateSalary(ctx, cat.ID, cat.BaseSalary, newSalary, now); err != nil {
		s.logger.Error("update individual salary persist failed", zap.Error(err))
		return CategoryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update individual salary commit failed", zap.Error(err))
		return CategoryResponse{}, err
	}

	s.logger.Info("update individual salary success",
		zap.String("request_id", rid),
		zap.String("category_id", cat.ID.String()),
		zap.String("previous", cat.BaseSalary.StringFixed(2)),
		zap.String("new", newSalary.StringFixed(2)),
		zap.String("kind", kind),
	)

	previous := cat.BaseSalary
	cat.PreviousSalary = &previous
	cat.BaseSalary = newSalary
	cat.LastUpdatedAt = &now
	return mapToResponse(*cat), nil
}

// UpdateBulkByAgreement applies a percentage raise and/or a fixed allowance
// to every category of an agreement. Percentage changes are audited one
// entry per category; allowance changes are not audited.
func (s *service) UpdateBulkByAgreement(ctx context.Context, actor domain.Identity, req BulkUpdateRequest) (BulkUpdateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk salary update requested",
		zap.String("request_id", rid),
		zap.Int64("agreement_id", req.AgreementID),
		zap.String("actor", actor.Username),
	)

	if req.AgreementID <= 0 {
		return BulkUpdateResponse{}, apperror.InvalidField("agreement_id")
	}
	if req.Percentage == nil && req.FixedAllowance == nil {
		return BulkUpdateResponse{}, salarycategoryerrors.ErrNoAdjustment
	}
	if req.Percentage != nil && req.Percentage.LessThanOrEqual(hundred.Neg()) {
		return BulkUpdateResponse{}, salarycategoryerrors.ErrInvalidPercentage
	}
	if req.Percentage != nil && exceedsScale(*req.Percentage, percentageScale) {
		return BulkUpdateResponse{}, salarycategoryerrors.ErrPercentagePrecision
	}
	if req.FixedAllowance != nil && req.FixedAllowance.IsNegative() {
		return BulkUpdateResponse{}, salarycategoryerrors.ErrNegativeAllowance
	}
	if req.FixedAllowance != nil && exceedsScale(*req.FixedAllowance, moneyScale) {
		return BulkUpdateResponse{}, salarycategoryerrors.ErrAllowancePrecision
	}
	effective, err := s.effectiveDate(req.EffectiveDate)
	if err != nil {
		return BulkUpdateResponse{}, err
	}

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, fmt.Sprintf(agreementLockFm, req.AgreementID), agreementLockTT, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			s.logger.Warn("bulk salary update lock busy", zap.Int64("agreement_id", req.AgreementID))
			return BulkUpdateResponse{}, salarycategoryerrors.ErrBulkUpdateInProgress
		}
		if err != nil {
			s.logger.Error("bulk salary update lock failed", zap.Error(err))
			return BulkUpdateResponse{}, err
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				s.logger.Warn("bulk salary update lock release failed", zap.Error(err))
			}
		}()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk salary update begin tx failed", zap.Error(err))
		return BulkUpdateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	resp := BulkUpdateResponse{AgreementID: req.AgreementID}

	if req.Percentage != nil {
		pct := *req.Percentage
		resp.Percentage = pct.String()

		cats, err := qtx.FindByAgreementForUpdate(ctx, req.AgreementID)
		if err != nil {
			s.logger.Error("bulk salary update load categories failed", zap.Error(err))
			return BulkUpdateResponse{}, err
		}

		raised := make([]decimal.Decimal, len(cats))
		entries := make([]SalaryHistoryEntry, len(cats))
		for i, c := range cats {
			raised[i] = ApplyPercentage(c.BaseSalary, pct)
			entries[i] = newHistoryEntry(actor, c.ID, c.BaseSalary, raised[i], KindGeneral, &pct, effective, req.Note)
		}

		// history first so it captures the pre-update salary
		if err := qtx.InsertHistory(ctx, entries); err != nil {
			s.logger.Error("bulk salary update history failed", zap.Error(err))
			return BulkUpdateResponse{}, err
		}
		for i, c := range cats {
			if err := qtx.UpdateSalary(ctx, c.ID, c.BaseSalary, raised[i], now); err != nil {
				s.logger.Error("bulk salary update persist failed", zap.String("category_id", c.ID.String()), zap.Error(err))
				return BulkUpdateResponse{}, err
			}
		}
		resp.SalariesUpdated = len(cats)
	}

	if req.FixedAllowance != nil {
		allowance := *req.FixedAllowance
		resp.FixedAllowance = allowance.StringFixed(2)

		n, err := qtx.UpdateAllowanceByAgreement(ctx, req.AgreementID, allowance, now)
		if err != nil {
			s.logger.Error("bulk allowance update failed", zap.Error(err))
			return BulkUpdateResponse{}, err
		}
		resp.AllowancesUpdated = n
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk salary update commit failed", zap.Error(err))
		return BulkUpdateResponse{}, err
	}

	s.logger.Info("bulk salary update success",
		zap.String("request_id", rid),
		zap.Int64("agreement_id", req.AgreementID),
		zap.Int("salaries_updated", resp.SalariesUpdated),
		zap.Int64("allowances_updated", resp.AllowancesUpdated),
	)
	return resp, nil
}

// ApplyPercentage returns old * (1 + pct/100) rounded to cents, halves away
// from zero. Only the result is rounded.
func ApplyPercentage(old, pct decimal.Decimal) decimal.Decimal {
	return old.Mul(hundred.Add(pct)).Div(hundred).Round(moneyScale)
}

// exceedsScale reports whether d carries significant digits past places.
func exceedsScale(d decimal.Decimal, places int32) bool {
	return !d.Equal(d.Round(places))
}

func newHistoryEntry(actor domain.Identity, categoryID uuid.UUID, previous, current decimal.Decimal, kind string, pct *decimal.Decimal, effective time.Time, note string) SalaryHistoryEntry {
	entry := SalaryHistoryEntry{
		ID:                uuid.New(),
		CategoryID:        categoryID,
		PreviousSalary:    previous,
		NewSalary:         current,
		UpdateKind:        kind,
		PercentageApplied: pct,
		EffectiveDate:     effective,
		Note:              strings.TrimSpace(note),
	}
	if actor.UserID != nil {
		entry.ActingUserID = actor.UserID
		entry.ActingUsername = actor.UsernamePtr()
	}
	return entry
}

func (s *service) effectiveDate(v string) (time.Time, error) {
	d, err := parseOptionalDate(v)
	if err != nil {
		return time.Time{}, err
	}
	if d != nil {
		return *d, nil
	}
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, salarycategoryerrors.ErrInvalidEffectiveDate
	}
	return &t, nil
}

func parseCategoryID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return uuid.Nil, salarycategoryerrors.ErrInvalidCategoryID
	}
	return id, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarycategoryerrors.ErrCategoryNotFound
	}
	return err
}

func mapToResponse(c SalaryCategory) CategoryResponse {
	resp := CategoryResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		AgreementID:         c.AgreementID,
		BaseSalary:          c.BaseSalary.StringFixed(2),
		NonTaxableAllowance: c.NonTaxableAllowance.StringFixed(2),
	}
	if c.PreviousSalary != nil {
		v := c.PreviousSalary.StringFixed(2)
		resp.PreviousSalary = &v
	}
	if c.LastUpdatedAt != nil {
		v := c.LastUpdatedAt.Format(time.RFC3339)
		resp.LastUpdatedAt = &v
	}
	return resp
}

func mapHistoryResponse(e SalaryHistoryEntry) HistoryResponse {
	resp := HistoryResponse{
		ID:             e.ID.String(),
		CategoryID:     e.CategoryID.String(),
		PreviousSalary: e.PreviousSalary.StringFixed(2),
		NewSalary:      e.NewSalary.StringFixed(2),
		UpdateKind:     e.UpdateKind,
		EffectiveDate:  e.EffectiveDate.Format(dateLayout),
		ActingUsername: e.ActingUsername,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
	if e.PercentageApplied != nil {
		v := e.PercentageApplied.String()
		resp.PercentageApplied = &v
	}
	if e.ActingUserID != nil {
		v := e.ActingUserID.String()
		resp.ActingUserID = &v
	}
	return resp
}
