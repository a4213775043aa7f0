package leave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateWindow restricts the ledger to requests overlapping [From, To].
type DateWindow struct {
	From time.Time
	To   time.Time
}

func YearWindow(year int) DateWindow {
	return DateWindow{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// RequestedDays is the inclusive day count of a range. Zero or negative
// means the range is inverted.
func RequestedDays(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// SumSpans adds up inclusive spans, ignoring inverted ones.
func SumSpans(spans []Span) int {
	total := 0
	for _, sp := range spans {
		if d := RequestedDays(sp.StartDate, sp.EndDate); d > 0 {
			total += d
		}
	}
	return total
}

type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// ConsumedForSubmission is the usage checked when a new request is
// submitted: approved balance-controlled requests across all years.
func (l *Ledger) ConsumedForSubmission(ctx context.Context, employeeID uuid.UUID) (int, error) {
	spans, err := l.repo.FindSpans(ctx, employeeID, BalanceControlledTypes, []string{StatusApproved}, nil)
	if err != nil {
		return 0, err
	}
	return SumSpans(spans), nil
}

// ConsumedInYear is the usage shown by the balance lookup: pending and
// approved balance-controlled requests overlapping the calendar year.
func (l *Ledger) ConsumedInYear(ctx context.Context, employeeID uuid.UUID, year int) (int, error) {
	window := YearWindow(year)
	spans, err := l.repo.FindSpans(ctx, employeeID, BalanceControlledTypes, []string{StatusPending, StatusApproved}, &window)
	if err != nil {
		return 0, err
	}
	return SumSpans(spans), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
