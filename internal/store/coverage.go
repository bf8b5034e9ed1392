package store

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"borecal/internal/bore"
	"borecal/internal/model"
)

// Coverage returns the ISO days in [from, to] that have no table entry.
// Dates are taken by their calendar fields.
func Coverage(table model.Table, from, to time.Time) ([]string, error) {
	start := midnightUTC(from)
	end := midnightUTC(to)
	if end.Before(start) {
		return nil, errors.New("coverage: to is before from")
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start,
		Until:   end,
	})
	if err != nil {
		return nil, err
	}

	missing := make([]string, 0)
	for _, day := range rule.All() {
		key := bore.ToISODate(day)
		if _, ok := table.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// Span returns the earliest and latest valid ISO keys in table. ok is
// false when the table has no parseable key.
func Span(table model.Table) (first, last time.Time, ok bool) {
	keys := make([]string, 0, len(table))
	for k := range table {
		if _, err := bore.ParseISODate(k, time.UTC); err == nil {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return time.Time{}, time.Time{}, false
	}
	// yyyy-mm-dd sorts lexically in date order.
	sort.Strings(keys)

	first, _ = bore.ParseISODate(keys[0], time.UTC)
	last, _ = bore.ParseISODate(keys[len(keys)-1], time.UTC)
	return first, last, true
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
