package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-rrhh/internal/domain"
	"go-rrhh/internal/events"
	leaveerrors "go-rrhh/internal/leave/errors"
	"go-rrhh/internal/messaging/kafka"
	"go-rrhh/internal/shared/apperror"
	"go-rrhh/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout      = "2006-01-02"
	defaultPageSize = 10
	maxPageSize     = 100
	aggregateType   = "leave_request"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Identity, req SubmitLeaveRequest) (LeaveResponse, error)
	Resolve(ctx context.Context, actor domain.Identity, id string, req ResolveLeaveRequest) (LeaveResponse, error)
	GetPending(ctx context.Context) ([]LeaveResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetHistory(ctx context.Context, q HistoryQuery) ([]LeaveResponse, int64, error)
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("leave.service")
		}
	}
}

// WithOutbox makes Submit and Resolve record events in the same transaction
// as the leave row.
func WithOutbox(outbox kafka.OutboxRepository) Option {
	return func(s *service) { s.outbox = outbox }
}

// WithClock overrides the source of "today" used for accrual.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		now:    time.Now,
		logger: zap.L().Named("leave.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type submitInput struct {
	employeeID    uuid.UUID
	leaveType     string
	start         time.Time
	end           time.Time
	reinstatement time.Time
	requestedDays int
}

func (s *service) Submit(ctx context.Context, actor domain.Identity, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("actor", actor.Username),
	)

	in, err := validateSubmitRequest(req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.LockEmployee(ctx, in.employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave lock employee failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !emp.Active {
		return LeaveResponse{}, leaveerrors.ErrEmployeeInactive
	}

	l := &LeaveRequest{
		ID:                   uuid.New(),
		EmployeeID:           emp.ID,
		LeaveType:            in.leaveType,
		StartDate:            in.start,
		EndDate:              in.end,
		ReinstatementDate:    in.reinstatement,
		Status:               StatusPending,
		DiagnosisCode:        trimmedOrNil(req.DiagnosisCode),
		DiagnosisDescription: trimmedOrNil(req.DiagnosisDescription),
		CertificateRef:       trimmedOrNil(req.CertificateRef),
		Observations:         trimmedOrNil(req.Observations),
		CreatedBy:            actor.UserID,
	}
	if l.DiagnosisCode != nil {
		code := strings.ToUpper(*l.DiagnosisCode)
		l.DiagnosisCode = &code
	}

	if IsBalanceControlled(in.leaveType) {
		entitlement := Entitlement(emp.HireDate, s.now())
		consumed, err := NewLedger(qtx).ConsumedForSubmission(ctx, emp.ID)
		if err != nil {
			s.logger.Error("submit leave ledger failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		available := max(entitlement-consumed, 0)
		if in.requestedDays > available {
			s.logger.Warn("submit leave capacity exceeded",
				zap.String("employee_id", emp.ID.String()),
				zap.Int("requested", in.requestedDays),
				zap.Int("available", available),
			)
			return LeaveResponse{}, leaveerrors.CapacityExceeded(available)
		}
		requested := in.requestedDays
		remaining := available - requested
		l.RequestedDays = &requested
		l.RemainingBalance = &remaining
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, l.ID, events.LeaveSubmittedEventType, events.LeaveSubmittedTopic, events.LeaveSubmittedEvent{
		EventType:   events.LeaveSubmittedEventType,
		LeaveID:     l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveType:   l.LeaveType,
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		SubmittedBy: actor.Username,
		OccurredAt:  s.now().UTC(),
	}); err != nil {
		s.logger.Error("submit leave outbox failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", emp.ID.String()),
		zap.String("leave_type", l.LeaveType),
	)

	l.Employee = emp
	return mapToResponse(*l), nil
}

func (s *service) Resolve(ctx context.Context, actor domain.Identity, id string, req ResolveLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("resolve leave requested",
		zap.String("leave_id", id),
		zap.String("outcome", req.Outcome),
		zap.String("actor", actor.Username),
	)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, apperror.InvalidField("leave id")
	}
	outcome := strings.ToUpper(strings.TrimSpace(req.Outcome))
	if outcome != StatusApproved && outcome != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidOutcome
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("resolve leave load failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("resolve leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", outcome),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	l.Status = outcome
	l.ResolvedBy = actor.UserID
	l.ResolvedAt = &now
	l.RejectionReason = nil
	if outcome == StatusRejected {
		l.RejectionReason = trimmedOrNil(req.RejectionReason)
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("resolve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID)
	if err != nil {
		s.logger.Error("resolve leave load employee failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	l.Employee = emp

	resolved := events.LeaveResolvedEvent{
		EventType:     events.LeaveResolvedEventType,
		LeaveID:       l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  emp.FullName,
		EmployeeEmail: emp.Email,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		Outcome:       outcome,
		ResolvedBy:    actor.Username,
		OccurredAt:    now,
	}
	if l.RejectionReason != nil {
		resolved.RejectionReason = *l.RejectionReason
	}
	if err := s.enqueue(ctx, tx, l.ID, events.LeaveResolvedEventType, events.LeaveResolvedTopic, resolved); err != nil {
		s.logger.Error("resolve leave outbox failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("resolve leave success",
		zap.String("leave_id", id),
		zap.String("status", outcome),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	empID, err := s.findEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	leaves, err := s.repo.FindByEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetHistory(ctx context.Context, q HistoryQuery) ([]LeaveResponse, int64, error) {
	filter, err := buildHistoryFilter(q)
	if err != nil {
		return nil, 0, err
	}
	leaves, total, err := s.repo.FindHistory(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

// GetBalance reports the current calendar year: entitlement as of today
// against pending and approved balance-controlled requests in the year.
func (s *service) GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(employeeID))
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	emp, err := s.repo.FindEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	today := s.now()
	entitlement := Entitlement(emp.HireDate, today)
	consumed, err := NewLedger(s.repo).ConsumedInYear(ctx, emp.ID, today.Year())
	if err != nil {
		return BalanceResponse{}, err
	}

	return BalanceResponse{
		EmployeeID:  emp.ID.String(),
		Year:        today.Year(),
		Entitlement: entitlement,
		Consumed:    consumed,
		Available:   max(entitlement-consumed, 0),
	}, nil
}

func (s *service) findEmployeeID(ctx context.Context, employeeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(employeeID))
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := s.repo.FindEmployee(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, leaveerrors.ErrEmployeeNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, leaveID uuid.UUID, eventType, topic string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		aggregateType,
		leaveID.String(),
		eventType,
		topic,
		payload,
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func validateSubmitRequest(req SubmitLeaveRequest) (submitInput, error) {
	var in submitInput

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return in, apperror.RequiredField("employee_id")
	}
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return in, leaveerrors.ErrInvalidEmployeeID
	}
	in.employeeID = id

	in.leaveType = strings.ToUpper(strings.TrimSpace(req.LeaveType))
	if in.leaveType == "" {
		return in, apperror.RequiredField("leave_type")
	}
	if !IsValidType(in.leaveType) {
		return in, leaveerrors.ErrInvalidLeaveType
	}

	if in.start, err = parseRequiredDate("start_date", req.StartDate); err != nil {
		return in, err
	}
	if in.end, err = parseRequiredDate("end_date", req.EndDate); err != nil {
		return in, err
	}
	if in.reinstatement, err = parseRequiredDate("reinstatement_date", req.ReinstatementDate); err != nil {
		return in, err
	}

	in.requestedDays = RequestedDays(in.start, in.end)
	if in.requestedDays <= 0 {
		return in, leaveerrors.ErrInvalidDateRange
	}
	if in.reinstatement.Before(in.end) {
		return in, leaveerrors.ErrInvalidReinstatementDate
	}

	if in.leaveType == TypeIllness {
		if trimmedOrNil(req.CertificateRef) == nil {
			return in, leaveerrors.ErrCertificateRequired
		}
		if trimmedOrNil(req.DiagnosisCode) == nil {
			return in, leaveerrors.ErrDiagnosisRequired
		}
	}
	return in, nil
}

func buildHistoryFilter(q HistoryQuery) (HistoryFilter, error) {
	filter := HistoryFilter{
		Status:    strings.ToUpper(strings.TrimSpace(q.Status)),
		LeaveType: strings.ToUpper(strings.TrimSpace(q.LeaveType)),
	}
	filter.Page, filter.PageSize = normalizePage(q.Page, q.PageSize)

	if v := strings.TrimSpace(q.EmployeeID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, leaveerrors.ErrInvalidEmployeeID
		}
		filter.EmployeeID = &id
	}
	switch filter.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
	default:
		return filter, apperror.InvalidField("status")
	}
	if filter.LeaveType != "" && !IsValidType(filter.LeaveType) {
		return filter, leaveerrors.ErrInvalidLeaveType
	}
	if v := strings.TrimSpace(q.From); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, leaveerrors.ErrInvalidDateFormat
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.To); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, leaveerrors.ErrInvalidDateFormat
		}
		filter.To = &t
	}
	return filter, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func parseRequiredDate(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, apperror.RequiredField(field)
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                   l.ID.String(),
		EmployeeID:           l.EmployeeID.String(),
		LeaveType:            l.LeaveType,
		StartDate:            l.StartDate.Format(dateLayout),
		EndDate:              l.EndDate.Format(dateLayout),
		ReinstatementDate:    l.ReinstatementDate.Format(dateLayout),
		TotalDays:            max(RequestedDays(l.StartDate, l.EndDate), 0),
		Status:               l.Status,
		RequestedDays:        l.RequestedDays,
		RemainingBalance:     l.RemainingBalance,
		DiagnosisCode:        l.DiagnosisCode,
		DiagnosisDescription: l.DiagnosisDescription,
		CertificateRef:       l.CertificateRef,
		Observations:         l.Observations,
		RejectionReason:      l.RejectionReason,
		CreatedAt:            l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
		resp.DocumentNumber = l.Employee.DocumentNumber
	}
	if l.CreatedBy != nil {
		v := l.CreatedBy.String()
		resp.CreatedBy = &v
	}
	if l.ResolvedBy != nil {
		v := l.ResolvedBy.String()
		resp.ResolvedBy = &v
	}
	if l.ResolvedAt != nil {
		v := l.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
