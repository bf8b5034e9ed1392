// Package ics publishes the calendar table as an iCalendar feed of all-day
// events so the bore dates can be subscribed to from any calendar app.
package ics

import (
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"borecal/internal/bore"
	appLog "borecal/internal/log"
	"borecal/internal/model"
)

const productID = "-//borecal//bore calendar//ES"

// ExportOptions controls Export.
type ExportOptions struct {
	// Name is the calendar display name.
	Name string
	// From and To restrict the exported days (inclusive). Zero means open.
	From time.Time
	To   time.Time
	// Stamp is used for DTSTAMP. Defaults to time.Now().
	Stamp time.Time
}

// Export builds a VCALENDAR with one all-day VEVENT per table entry,
// ordered by date. Keys that are not ISO dates are skipped.
func Export(table model.Table, opts ExportOptions) *ical.Calendar {
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	skipped := 0
	for _, key := range keys {
		day, err := bore.ParseISODate(key, time.UTC)
		if err != nil {
			skipped++
			continue
		}
		if !opts.From.IsZero() && day.Before(dateOnly(opts.From)) {
			continue
		}
		if !opts.To.IsZero() && day.After(dateOnly(opts.To)) {
			continue
		}
		addEntry(cal, key, day, table[key], opts.Stamp)
	}

	if skipped > 0 {
		appLog.Info("ics export skipped non-date keys", "count", skipped)
	}
	return cal
}

// Write serializes the exported feed to w.
func Write(w io.Writer, table model.Table, opts ExportOptions) error {
	_, err := io.WriteString(w, Export(table, opts).Serialize())
	return err
}

func addEntry(cal *ical.Calendar, key string, day time.Time, e model.Entry, stamp time.Time) {
	ev := cal.AddEvent(key + "@borecal")
	ev.SetDtStampTime(stamp)
	ev.SetAllDayStartAt(day)
	ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
	ev.SetSummary(summary(e))
	if desc := description(e); desc != "" {
		ev.SetDescription(desc)
	}
	if e.Event != "" {
		ev.AddProperty(ical.ComponentPropertyCategories, "EVENT")
	}
}

func summary(e model.Entry) string {
	if e.Event != "" {
		return e.Bore + " · " + e.Event
	}
	return e.Bore
}

func description(e model.Entry) string {
	lines := make([]string, 0, 4)
	if e.Yehudim != "" {
		lines = append(lines, e.Yehudim)
	}
	if e.Note != "" {
		lines = append(lines, e.Note)
	}
	if e.Moon != "" {
		lines = append(lines, "moon: "+e.Moon)
	}
	if e.Aviv != "" {
		lines = append(lines, "aviv: "+e.Aviv)
	}
	return strings.Join(lines, "\n")
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
