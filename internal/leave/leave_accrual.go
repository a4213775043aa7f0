package leave

import "time"

type accrualBracket struct {
	maxYears int
	days     int
}

var accrualBrackets = []accrualBracket{
	{maxYears: 5, days: 14},
	{maxYears: 10, days: 21},
	{maxYears: 20, days: 28},
}

const seniorEntitlementDays = 35

// SeniorityYears counts completed years between hireDate and asOf. The
// result is negative for a hire date in the future.
func SeniorityYears(hireDate, asOf time.Time) int {
	years := asOf.Year() - hireDate.Year()
	if asOf.Month() < hireDate.Month() ||
		(asOf.Month() == hireDate.Month() && asOf.Day() < hireDate.Day()) {
		years--
	}
	return years
}

// Entitlement returns the yearly vacation days for an employee hired on
// hireDate, evaluated on asOf. Employees without a hire date get the first
// bracket.
func Entitlement(hireDate *time.Time, asOf time.Time) int {
	if hireDate == nil {
		return accrualBrackets[0].days
	}
	years := SeniorityYears(*hireDate, asOf)
	for _, b := range accrualBrackets {
		if years <= b.maxYears {
			return b.days
		}
	}
	return seniorEntitlementDays
}
