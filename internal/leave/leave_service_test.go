package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-rrhh/internal/domain"
	"go-rrhh/internal/leave"
	leaveerrors "go-rrhh/internal/leave/errors"
	"go-rrhh/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo overrides only what a test needs; anything else panics on the
// nil embedded interface.
type fakeRepo struct {
	leave.Repository

	employee *leave.LeaveEmployee
	pending  *leave.LeaveRequest
	spans    []leave.Span
	created  []*leave.LeaveRequest
	updated  []*leave.LeaveRequest
}

func (f *fakeRepo) WithTx(*sql.Tx) leave.Repository { return f }

func (f *fakeRepo) LockEmployee(_ context.Context, id uuid.UUID) (*leave.LeaveEmployee, error) {
	return f.FindEmployee(context.Background(), id)
}

func (f *fakeRepo) FindEmployee(_ context.Context, id uuid.UUID) (*leave.LeaveEmployee, error) {
	if f.employee == nil || f.employee.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.employee, nil
}

func (f *fakeRepo) FindSpans(context.Context, uuid.UUID, []string, []string, *leave.DateWindow) ([]leave.Span, error) {
	return f.spans, nil
}

func (f *fakeRepo) Create(_ context.Context, l *leave.LeaveRequest) error {
	f.created = append(f.created, l)
	return nil
}

func (f *fakeRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	if f.pending == nil || f.pending.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.pending, nil
}

func (f *fakeRepo) Update(_ context.Context, l *leave.LeaveRequest) error {
	f.updated = append(f.updated, l)
	return nil
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func newEmployee() *leave.LeaveEmployee {
	return &leave.LeaveEmployee{
		ID:       uuid.New(),
		FullName: "Ana Pereyra",
		Email:    "ana.pereyra@example.com",
		Active:   true,
	}
}

func TestService_Submit_WritesOutboxInSameTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	emp := newEmployee()
	repo := &fakeRepo{employee: emp}
	svc := leave.NewService(db, repo,
		leave.WithOutbox(kafka.NewOutboxRepository(db)),
		leave.WithClock(func() time.Time { return today }),
	)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "leave_request", sqlmock.AnyArg(), "leave.submitted", "hr.leave.submitted.v1", sqlmock.AnyArg(), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp, err := svc.Submit(context.Background(), domain.Identity{Username: "jefe.rrhh"}, vacation(emp.ID, date(2026, time.April, 6), date(2026, time.April, 8)))

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, resp.ID, repo.created[0].ID.String())
	assert.Nil(t, repo.created[0].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_CapacityRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	emp := newEmployee()
	repo := &fakeRepo{
		employee: emp,
		spans:    []leave.Span{{StartDate: date(2025, time.November, 3), EndDate: date(2025, time.November, 14)}},
	}
	svc := leave.NewService(db, repo, leave.WithClock(func() time.Time { return today }))

	expectTx(mock, false)

	_, err = svc.Submit(context.Background(), domain.Identity{}, vacation(emp.ID, date(2026, time.April, 6), date(2026, time.April, 8)))

	assert.Equal(t, leaveerrors.CapacityExceeded(2).Message, err.Error())
	assert.Empty(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Submit_ValidationSkipsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := leave.NewService(db, &fakeRepo{})

	_, err = svc.Submit(context.Background(), domain.Identity{}, leave.SubmitLeaveRequest{EmployeeID: "not-a-uuid"})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Resolve(t *testing.T) {
	t.Run("approve records resolver", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		emp := newEmployee()
		l := &leave.LeaveRequest{ID: uuid.New(), EmployeeID: emp.ID, Status: leave.StatusPending, LeaveType: leave.TypeVacation}
		repo := &fakeRepo{employee: emp, pending: l}
		svc := leave.NewService(db, repo, leave.WithClock(func() time.Time { return today }))
		uid := uuid.New()

		expectTx(mock, true)

		resp, err := svc.Resolve(context.Background(), domain.Identity{UserID: &uid, Username: "jefe.rrhh"}, l.ID.String(), leave.ResolveLeaveRequest{
			Outcome:         "approved",
			RejectionReason: ptr("ignored on approval"),
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Nil(t, resp.RejectionReason)
		require.Len(t, repo.updated, 1)
		assert.Equal(t, &uid, repo.updated[0].ResolvedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = leave.NewService(db, &fakeRepo{}).Resolve(context.Background(), domain.Identity{}, "42", leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "leave id is invalid")
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		_, err = leave.NewService(db, &fakeRepo{}).Resolve(context.Background(), domain.Identity{}, uuid.NewString(), leave.ResolveLeaveRequest{Outcome: leave.StatusRejected})

		assert.EqualError(t, err, "connection refused")
	})
}
