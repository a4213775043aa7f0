package leave_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-rrhh/internal/domain"
	"go-rrhh/internal/leave"
	leaveerrors "go-rrhh/internal/leave/errors"
	"go-rrhh/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var today = date(2026, time.March, 2)

type leaveFixture struct {
	db      *gorm.DB
	repo    leave.Repository
	service leave.Service
	actor   domain.Identity
}

func setupLeaveDB(t *testing.T) *leaveFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&leave.LeaveEmployee{}, &leave.LeaveRequest{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := leave.NewRepository(db)
	uid := uuid.New()
	return &leaveFixture{
		db:      db,
		repo:    repo,
		service: leave.NewService(sqlDB, repo, leave.WithClock(func() time.Time { return today })),
		actor:   domain.Identity{UserID: &uid, Username: "rrhh.admin"},
	}
}

func (f *leaveFixture) addEmployee(t *testing.T, hire *time.Time, active bool) uuid.UUID {
	t.Helper()
	e := leave.LeaveEmployee{
		ID:             uuid.New(),
		DocumentNumber: uuid.NewString()[:8],
		FullName:       "Ana Pereyra",
		Email:          "ana.pereyra@example.com",
		HireDate:       hire,
		Active:         true,
	}
	require.NoError(t, f.db.Create(&e).Error)
	if !active {
		require.NoError(t, f.db.Model(&e).Update("active", false).Error)
	}
	return e.ID
}

func (f *leaveFixture) countLeaves(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&leave.LeaveRequest{}).Count(&n).Error)
	return n
}

func vacation(empID uuid.UUID, start, end time.Time) leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{
		EmployeeID:        empID.String(),
		LeaveType:         leave.TypeVacation,
		StartDate:         start.Format("2006-01-02"),
		EndDate:           end.Format("2006-01-02"),
		ReinstatementDate: end.AddDate(0, 0, 1).Format("2006-01-02"),
	}
}

func TestSubmit_VacationWithinBalance(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, ptr(date(2023, time.January, 1)), true)

	resp, err := f.service.Submit(context.Background(), f.actor, vacation(empID, date(2026, time.April, 6), date(2026, time.April, 15)))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 10, resp.TotalDays)
	require.NotNil(t, resp.RequestedDays)
	require.NotNil(t, resp.RemainingBalance)
	assert.Equal(t, 10, *resp.RequestedDays)
	assert.Equal(t, 4, *resp.RemainingBalance)
	assert.Equal(t, "2026-04-06", resp.StartDate)
	assert.Equal(t, "Ana Pereyra", resp.EmployeeName)
	assert.Equal(t, int64(1), f.countLeaves(t))
}

func TestSubmit_CapacityExceededWritesNothing(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, nil, true)

	_, err := f.service.Submit(context.Background(), f.actor, vacation(empID, date(2026, time.April, 1), date(2026, time.April, 15)))

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeCapacityExceeded))
	assert.Contains(t, err.Error(), "at most 14 days")
	assert.Equal(t, int64(0), f.countLeaves(t))
}

func TestSubmit_ApprovedDaysReduceCeiling(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, ptr(date(2024, time.February, 1)), true)

	first, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.January, 5), date(2026, time.January, 18)))
	require.NoError(t, err)
	_, err = f.service.Resolve(ctx, f.actor, first.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.May, 4), date(2026, time.May, 4)))

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeCapacityExceeded))
	assert.Contains(t, err.Error(), "at most 0 days")
	assert.Equal(t, int64(1), f.countLeaves(t))
}

func TestSubmit_PendingDaysDoNotReduceCeiling(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, nil, true)

	_, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.April, 6), date(2026, time.April, 15)))
	require.NoError(t, err)
	second, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.June, 1), date(2026, time.June, 10)))
	require.NoError(t, err)

	assert.Equal(t, 4, *second.RemainingBalance)
	assert.Equal(t, int64(2), f.countLeaves(t))
}

func TestSubmit_NonControlledTypeIgnoresBalance(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, nil, true)

	req := leave.SubmitLeaveRequest{
		EmployeeID:        empID.String(),
		LeaveType:         "maternity",
		StartDate:         "2026-04-01",
		EndDate:           "2026-07-29",
		ReinstatementDate: "2026-07-30",
	}
	resp, err := f.service.Submit(context.Background(), f.actor, req)

	require.NoError(t, err)
	assert.Equal(t, leave.TypeMaternity, resp.LeaveType)
	assert.Nil(t, resp.RequestedDays)
	assert.Nil(t, resp.RemainingBalance)
}

func TestSubmit_Validation(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, nil, true)
	ctx := context.Background()

	illness := leave.SubmitLeaveRequest{
		EmployeeID:        empID.String(),
		LeaveType:         leave.TypeIllness,
		StartDate:         "2026-03-02",
		EndDate:           "2026-03-04",
		ReinstatementDate: "2026-03-05",
		DiagnosisCode:     ptr("J11"),
	}
	_, err := f.service.Submit(ctx, f.actor, illness)
	assert.ErrorIs(t, err, leaveerrors.ErrCertificateRequired)

	inverted := vacation(empID, date(2026, time.April, 10), date(2026, time.April, 9))
	_, err = f.service.Submit(ctx, f.actor, inverted)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	earlyReturn := vacation(empID, date(2026, time.April, 6), date(2026, time.April, 7))
	earlyReturn.ReinstatementDate = "2026-04-06"
	_, err = f.service.Submit(ctx, f.actor, earlyReturn)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidReinstatementDate)

	_, err = f.service.Submit(ctx, f.actor, vacation(uuid.New(), date(2026, time.April, 6), date(2026, time.April, 7)))
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)

	assert.Equal(t, int64(0), f.countLeaves(t))
}

func TestSubmit_ReinstatementOnEndDate(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, nil, true)

	req := vacation(empID, date(2026, time.April, 6), date(2026, time.April, 7))
	req.ReinstatementDate = "2026-04-07"

	resp, err := f.service.Submit(context.Background(), f.actor, req)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-07", resp.ReinstatementDate)
	assert.Equal(t, int64(1), f.countLeaves(t))
}

func TestSubmit_InactiveEmployee(t *testing.T) {
	f := setupLeaveDB(t)
	empID := f.addEmployee(t, nil, false)

	_, err := f.service.Submit(context.Background(), f.actor, vacation(empID, date(2026, time.April, 6), date(2026, time.April, 7)))

	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeInactive)
}

func TestResolve_Transitions(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, nil, true)

	created, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.April, 6), date(2026, time.April, 8)))
	require.NoError(t, err)

	rejected, err := f.service.Resolve(ctx, f.actor, created.ID, leave.ResolveLeaveRequest{
		Outcome:         leave.StatusRejected,
		RejectionReason: ptr("  overlaps closing week "),
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "overlaps closing week", *rejected.RejectionReason)
	require.NotNil(t, rejected.ResolvedBy)
	assert.Equal(t, f.actor.UserIDString(), *rejected.ResolvedBy)
	assert.NotNil(t, rejected.ResolvedAt)

	_, err = f.service.Resolve(ctx, f.actor, created.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.Equal(t, 409, apperror.ToHTTP(err).Status)

	_, err = f.service.Resolve(ctx, f.actor, uuid.NewString(), leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)

	stored, err := f.repo.FindByID(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, stored.Status)
}

func TestQueries(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, nil, true)
	otherID := f.addEmployee(t, nil, true)

	a, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.January, 12), date(2026, time.January, 16)))
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.February, 2), date(2026, time.February, 3)))
	require.NoError(t, err)
	_, err = f.service.Submit(ctx, f.actor, vacation(otherID, date(2026, time.March, 9), date(2026, time.March, 9)))
	require.NoError(t, err)
	_, err = f.service.Resolve(ctx, f.actor, a.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})
	require.NoError(t, err)

	t.Run("pending", func(t *testing.T) {
		pending, err := f.service.GetPending(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("by employee", func(t *testing.T) {
		list, err := f.service.GetByEmployee(ctx, empID.String())
		require.NoError(t, err)
		assert.Len(t, list, 2)

		_, err = f.service.GetByEmployee(ctx, uuid.NewString())
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("history filters and paginates", func(t *testing.T) {
		list, total, err := f.service.GetHistory(ctx, leave.HistoryQuery{Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, a.ID, list[0].ID)

		list, total, err = f.service.GetHistory(ctx, leave.HistoryQuery{PageSize: 2, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 1)

		_, _, err = f.service.GetHistory(ctx, leave.HistoryQuery{From: "02/01/2026"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("balance counts pending and approved", func(t *testing.T) {
		bal, err := f.service.GetBalance(ctx, empID.String())
		require.NoError(t, err)
		assert.Equal(t, 2026, bal.Year)
		assert.Equal(t, 14, bal.Entitlement)
		assert.Equal(t, 7, bal.Consumed)
		assert.Equal(t, 7, bal.Available)
	})
}

func TestLedger_ConsumedInYearUsesOverlap(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, nil, true)

	rows := []leave.LeaveRequest{
		{StartDate: date(2025, time.December, 29), EndDate: date(2026, time.January, 2), Status: leave.StatusApproved, LeaveType: leave.TypeVacation},
		{StartDate: date(2025, time.June, 2), EndDate: date(2025, time.June, 6), Status: leave.StatusApproved, LeaveType: leave.TypeVacation},
		{StartDate: date(2026, time.July, 1), EndDate: date(2026, time.July, 3), Status: leave.StatusRejected, LeaveType: leave.TypePersonal},
		{StartDate: date(2026, time.August, 3), EndDate: date(2026, time.August, 4), Status: leave.StatusPending, LeaveType: leave.TypePersonal},
		{StartDate: date(2026, time.September, 1), EndDate: date(2026, time.September, 30), Status: leave.StatusApproved, LeaveType: leave.TypeStudy},
	}
	for i := range rows {
		rows[i].ID = uuid.New()
		rows[i].EmployeeID = empID
		rows[i].ReinstatementDate = rows[i].EndDate.AddDate(0, 0, 1)
		require.NoError(t, f.repo.Create(ctx, &rows[i]))
	}

	ledger := leave.NewLedger(f.repo)

	inYear, err := ledger.ConsumedInYear(ctx, empID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 7, inYear)

	forSubmission, err := ledger.ConsumedForSubmission(ctx, empID)
	require.NoError(t, err)
	assert.Equal(t, 10, forSubmission)
}

func TestSubmit_SixYearSeniorityExhaustsBalance(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, ptr(today.AddDate(-6, 0, 0)), true)

	first, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.April, 1), date(2026, time.April, 21)))
	require.NoError(t, err)
	require.NotNil(t, first.RemainingBalance)
	assert.Equal(t, 21, *first.RequestedDays)
	assert.Equal(t, 0, *first.RemainingBalance)

	_, err = f.service.Resolve(ctx, f.actor, first.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusApproved})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.April, 22), date(2026, time.April, 22)))
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeCapacityExceeded))
	assert.Contains(t, err.Error(), "at most 0 days")
	assert.Equal(t, int64(1), f.countLeaves(t))
}

func TestResolve_RejectTwice(t *testing.T) {
	f := setupLeaveDB(t)
	ctx := context.Background()
	empID := f.addEmployee(t, nil, true)

	created, err := f.service.Submit(ctx, f.actor, vacation(empID, date(2026, time.May, 4), date(2026, time.May, 6)))
	require.NoError(t, err)

	first, err := f.service.Resolve(ctx, f.actor, created.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, first.Status)
	before, err := f.repo.FindByID(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)

	_, err = f.service.Resolve(ctx, f.actor, created.ID, leave.ResolveLeaveRequest{Outcome: leave.StatusRejected})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)

	after, err := f.repo.FindByID(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, after.Status)
	assert.Equal(t, before.ResolvedAt, after.ResolvedAt)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}
