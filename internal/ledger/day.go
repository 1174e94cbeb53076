package ledger

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey formats t as a local calendar day (YYYY-MM-DD) in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// ParseDateKey returns local midnight of the day named by key.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, loc)
}

// StartOfDay returns local midnight of the calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a midnight by whole calendar days, so DST changes never
// shift the result off midnight.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

// Yesterday returns the date key of the day before the one named by key.
func Yesterday(key string, loc *time.Location) (string, bool) {
	day, err := ParseDateKey(key, loc)
	if err != nil {
		return "", false
	}
	return AddDays(day, -1).Format(dateKeyLayout), true
}

// Day is one calendar-day bucket [Start, Start+1 day).
type Day struct {
	Start time.Time
	Key   string
}

func (d Day) End() time.Time { return AddDays(d.Start, 1) }

// LastDays returns n consecutive days ending with the day containing now,
// oldest first.
func LastDays(now time.Time, n int) []Day {
	today := StartOfDay(now)
	days := make([]Day, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		start := AddDays(today, -offset)
		days = append(days, Day{Start: start, Key: start.Format(dateKeyLayout)})
	}
	return days
}

// SumByDay buckets entries into days using value and returns one total per day.
func SumByDay[E Entry](l *Ledger[E], days []Day, value func(E) int) []int {
	totals := make([]int, len(days))
	for i, d := range days {
		for _, e := range l.Query(d.Start, d.End()) {
			totals[i] += value(e)
		}
	}
	return totals
}
