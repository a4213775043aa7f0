package leave_test

import (
	"testing"
	"time"

	"go-rrhh/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestRequestedDays(t *testing.T) {
	assert.Equal(t, 1, leave.RequestedDays(date(2026, time.May, 4), date(2026, time.May, 4)))
	assert.Equal(t, 10, leave.RequestedDays(date(2026, time.May, 4), date(2026, time.May, 13)))
	assert.Equal(t, 0, leave.RequestedDays(date(2026, time.May, 4), date(2026, time.May, 3)))
	assert.Equal(t, 2, leave.RequestedDays(date(2026, time.December, 31), date(2027, time.January, 1)))

	// time of day is ignored
	start := time.Date(2026, time.May, 4, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 5, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, leave.RequestedDays(start, end))
}

func TestSumSpans_SkipsInvertedRanges(t *testing.T) {
	spans := []leave.Span{
		{StartDate: date(2026, time.January, 5), EndDate: date(2026, time.January, 9)},
		{StartDate: date(2026, time.March, 10), EndDate: date(2026, time.March, 1)},
		{StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 1)},
	}

	assert.Equal(t, 6, leave.SumSpans(spans))
	assert.Equal(t, 0, leave.SumSpans(nil))
}

func TestYearWindow(t *testing.T) {
	w := leave.YearWindow(2026)

	assert.Equal(t, date(2026, time.January, 1), w.From)
	assert.Equal(t, date(2026, time.December, 31), w.To)
}
