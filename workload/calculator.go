// Package workload prices teaching activities and rolls them up into
// monthly totals. Everything here is pure: invalid input produces zero
// values that callers must check, never errors.
package workload

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type ActivityType string

const (
	ActivityLecture  ActivityType = "lecture"
	ActivityTutorial ActivityType = "tutorial"
	ActivityLab      ActivityType = "lab"
)

// Activities lists the known activity types in display order.
var Activities = []ActivityType{ActivityLecture, ActivityTutorial, ActivityLab}

func (a ActivityType) Valid() bool {
	switch a {
	case ActivityLecture, ActivityTutorial, ActivityLab:
		return true
	}
	return false
}

func ParseActivityType(s string) (ActivityType, bool) {
	a := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}

// RateTable maps an activity to its hourly rate in whole currency units.
type RateTable map[ActivityType]int64

// DefaultRates returns a fresh copy of the standard rates.
func DefaultRates() RateTable {
	return RateTable{
		ActivityLecture:  500,
		ActivityTutorial: 300,
		ActivityLab:      400,
	}
}

// Rate returns the hourly rate for a, or 0 when a is not in the table.
func (r RateTable) Rate(a ActivityType) int64 {
	return r[a]
}

// Entry is one recorded teaching activity with its derived fields.
type Entry struct {
	WorkDate      time.Time
	SubjectID     uint
	ActivityType  ActivityType
	StartTime     string
	EndTime       string
	DurationHours float64
	DailyPay      int64
}

type MonthlySummary struct {
	Entries    []Entry
	TotalPay   int64
	TotalHours float64
	UniqueDays int
}

// ParseClock parses a 24-hour HH:MM value into minutes since midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	h, m, found := strings.Cut(s, ":")
	if !found || len(h) == 0 || len(h) > 2 || len(m) != 2 || !digits(h) || !digits(m) {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ComputeDuration returns end-start in hours rounded to two decimals.
// It returns 0 when either time is unparseable and a non-positive value
// when end is not after start; overnight spans are not supported.
func ComputeDuration(start, end string) float64 {
	s, ok := ParseClock(start)
	if !ok {
		return 0
	}
	e, ok := ParseClock(end)
	if !ok {
		return 0
	}
	return round2(float64(e-s) / 60)
}

// ComputePay returns hours priced at the activity's rate, rounded to the
// nearest whole unit. Unknown activities price at zero.
func ComputePay(hours float64, activity ActivityType, rates RateTable) int64 {
	return int64(math.Round(hours * float64(rates.Rate(activity))))
}

// Price computes the derived fields stored with an entry.
func Price(start, end string, activity ActivityType, rates RateTable) (hours float64, rate int64, pay int64) {
	hours = ComputeDuration(start, end)
	rate = rates.Rate(activity)
	pay = ComputePay(hours, activity, rates)
	return hours, rate, pay
}

// AggregateMonth sums the stored derived fields of entries. The input
// order is kept in the summary; totals do not depend on it.
func AggregateMonth(entries []Entry) MonthlySummary {
	summary := MonthlySummary{Entries: make([]Entry, 0, len(entries))}
	days := make(map[string]struct{})
	for _, e := range entries {
		summary.Entries = append(summary.Entries, e)
		summary.TotalPay += e.DailyPay
		summary.TotalHours += e.DurationHours
		days[e.WorkDate.Format(DateLayout)] = struct{}{}
	}
	summary.TotalHours = round2(summary.TotalHours)
	summary.UniqueDays = len(days)
	return summary
}

// Overlaps reports whether two same-day time ranges intersect. Ranges
// touching at an endpoint do not overlap. Unparseable times are treated
// as overlapping.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, ok1 := ParseClock(aStart)
	ae, ok2 := ParseClock(aEnd)
	bs, ok3 := ParseClock(bStart)
	be, ok4 := ParseClock(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return true
	}
	return as < be && ae > bs
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
