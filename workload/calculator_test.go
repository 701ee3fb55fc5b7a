package workload

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestComputeDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       float64
	}{
		{"ninety minutes", "09:00", "10:30", 1.5},
		{"full hour", "14:00", "15:00", 1},
		{"rounds to two decimals", "09:00", "09:10", 0.17},
		{"single digit hour", "9:00", "10:00", 1},
		{"whole day", "00:00", "23:59", 23.98},
		{"empty start", "", "10:00", 0},
		{"empty end", "09:00", "", 0},
		{"garbage", "nine", "10:00", 0},
		{"hour out of range", "24:00", "10:00", 0},
		{"minute out of range", "09:60", "10:00", 0},
		{"seconds not accepted", "09:00:00", "10:00", 0},
		{"signed hour", "+9:00", "10:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDuration(tt.start, tt.end))
		})
	}
}

func TestComputeDuration_EndNotAfterStart(t *testing.T) {
	assert.LessOrEqual(t, ComputeDuration("10:00", "09:00"), 0.0)
	assert.Equal(t, -1.0, ComputeDuration("10:00", "09:00"))
	assert.Equal(t, 0.0, ComputeDuration("10:00", "10:00"))
}

func TestComputeDuration_Monotonic(t *testing.T) {
	prev := 0.0
	for end := 9*60 + 1; end < 24*60; end += 7 {
		clock := formatClock(end)
		got := ComputeDuration("09:00", clock)
		assert.GreaterOrEqual(t, got, prev, "end=%s", clock)
		prev = got
	}
}

func TestComputePay(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, int64(750), ComputePay(1.5, ActivityLecture, rates))
	assert.Equal(t, int64(600), ComputePay(2, ActivityTutorial, rates))
	assert.Equal(t, int64(400), ComputePay(1, ActivityLab, rates))
	assert.Equal(t, int64(0), ComputePay(2, "unknown_type", rates))
	assert.Equal(t, int64(0), ComputePay(0, ActivityLecture, rates))
	// 0.17h * 300 = 51
	assert.Equal(t, int64(51), ComputePay(0.17, ActivityTutorial, rates))
	// 0.33h * 500 = 165
	assert.Equal(t, int64(165), ComputePay(0.33, ActivityLecture, rates))
}

func TestComputePay_CustomRates(t *testing.T) {
	rates := RateTable{ActivityLecture: 1000}
	assert.Equal(t, int64(1500), ComputePay(1.5, ActivityLecture, rates))
	assert.Equal(t, int64(0), ComputePay(1.5, ActivityLab, rates))
}

func TestDefaultRates_ReturnsCopy(t *testing.T) {
	r := DefaultRates()
	r[ActivityLecture] = 1
	assert.Equal(t, int64(500), DefaultRates().Rate(ActivityLecture))
}

func TestPrice(t *testing.T) {
	hours, rate, pay := Price("09:00", "10:30", ActivityLecture, DefaultRates())
	assert.Equal(t, 1.5, hours)
	assert.Equal(t, int64(500), rate)
	assert.Equal(t, int64(750), pay)

	hours, _, pay = Price("10:00", "09:00", ActivityLab, DefaultRates())
	assert.LessOrEqual(t, hours, 0.0)
	assert.LessOrEqual(t, pay, int64(0))
}

func TestAggregateMonth_Empty(t *testing.T) {
	s := AggregateMonth(nil)
	assert.Equal(t, int64(0), s.TotalPay)
	assert.Equal(t, 0.0, s.TotalHours)
	assert.Equal(t, 0, s.UniqueDays)
	require.NotNil(t, s.Entries)
	assert.Empty(t, s.Entries)
}

func TestAggregateMonth_Totals(t *testing.T) {
	entries := []Entry{
		{WorkDate: date(t, "2024-03-01"), ActivityType: ActivityLecture, StartTime: "09:00", EndTime: "10:30", DurationHours: 1.5, DailyPay: 750},
		{WorkDate: date(t, "2024-03-01"), ActivityType: ActivityLab, StartTime: "11:00", EndTime: "13:00", DurationHours: 2, DailyPay: 800},
		{WorkDate: date(t, "2024-03-04"), ActivityType: ActivityTutorial, StartTime: "14:00", EndTime: "14:10", DurationHours: 0.17, DailyPay: 51},
	}

	s := AggregateMonth(entries)
	assert.Equal(t, int64(1601), s.TotalPay)
	assert.Equal(t, 3.67, s.TotalHours)
	assert.Equal(t, 2, s.UniqueDays)
	assert.Equal(t, entries, s.Entries)
}

func TestAggregateMonth_TrustsStoredFields(t *testing.T) {
	entries := []Entry{
		{WorkDate: date(t, "2024-03-01"), ActivityType: ActivityLecture, StartTime: "09:00", EndTime: "10:00", DurationHours: 3, DailyPay: 42},
	}
	s := AggregateMonth(entries)
	assert.Equal(t, int64(42), s.TotalPay)
	assert.Equal(t, 3.0, s.TotalHours)
}

func TestAggregateMonth_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var entries []Entry
	var want int64
	for i := 0; i < 40; i++ {
		start := 8*60 + rng.Intn(300)
		end := start + 15 + rng.Intn(180)
		activity := Activities[rng.Intn(len(Activities))]
		hours, _, pay := Price(formatClock(start), formatClock(end), activity, DefaultRates())
		entries = append(entries, Entry{
			WorkDate:      time.Date(2024, 3, 1+rng.Intn(28), 0, 0, 0, 0, time.UTC),
			ActivityType:  activity,
			StartTime:     formatClock(start),
			EndTime:       formatClock(end),
			DurationHours: hours,
			DailyPay:      pay,
		})
		want += pay
	}

	base := AggregateMonth(entries)
	assert.Equal(t, want, base.TotalPay)

	for i := 0; i < 5; i++ {
		shuffled := append([]Entry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		s := AggregateMonth(shuffled)
		assert.Equal(t, base.TotalPay, s.TotalPay)
		assert.InDelta(t, base.TotalHours, s.TotalHours, 1e-9)
		assert.Equal(t, base.UniqueDays, s.UniqueDays)
	}
}

func TestStoredPayMatchesRecomputation(t *testing.T) {
	rates := DefaultRates()
	for start := 7 * 60; start < 20*60; start += 13 {
		for _, length := range []int{10, 45, 50, 90, 125} {
			for _, activity := range Activities {
				s, e := formatClock(start), formatClock(start+length)
				hours, _, stored := Price(s, e, activity, rates)
				assert.Equal(t, stored, ComputePay(ComputeDuration(s, e), activity, rates))
				assert.Greater(t, hours, 0.0)
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 string
		want           bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching", "09:00", "10:00", "10:00", "11:00", false},
		{"partial", "09:00", "10:30", "10:00", "11:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"unparseable", "nine", "10:00", "11:00", "12:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a1, tt.a2, tt.b1, tt.b2))
			assert.Equal(t, tt.want, Overlaps(tt.b1, tt.b2, tt.a1, tt.a2))
		})
	}
}

func TestParseActivityType(t *testing.T) {
	a, ok := ParseActivityType(" Lecture ")
	assert.True(t, ok)
	assert.Equal(t, ActivityLecture, a)

	_, ok = ParseActivityType("seminar")
	assert.False(t, ok)
}

func TestParseMonth(t *testing.T) {
	from, to, err := ParseMonth("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	for _, bad := range []string{"", "2024", "2024-13", "2024-1", "03-2024"} {
		_, _, err := ParseMonth(bad)
		assert.Error(t, err, bad)
	}
}

func formatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}
