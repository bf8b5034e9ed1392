// Package bore derives the two date keys used to look up a calendar entry:
// the civil date and the bore date, which advances at a fixed local hour
// instead of midnight.
package bore

import (
	"fmt"
	"time"

	appLog "borecal/internal/log"
)

// ISOLayout is the table key format.
const ISOLayout = "2006-01-02"

// Clock supplies the current local time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (time.Local if nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Dates holds the civil and shifted dates of one run and their table keys.
type Dates struct {
	Civil time.Time
	Bore  time.Time

	CivilISO  string
	LookupISO string
}

// Shifted reports whether the bore day was advanced past the civil day.
func (d Dates) Shifted() bool {
	return d.CivilISO != d.LookupISO
}

// Shift returns civil advanced by one calendar day when its local hour is
// at or past sunsetHour, and civil unchanged otherwise.
func Shift(civil time.Time, sunsetHour int) time.Time {
	if civil.Hour() >= sunsetHour {
		// AddDate keeps the wall clock and location, so DST days still land
		// on the next calendar date.
		return civil.AddDate(0, 0, 1)
	}
	return civil
}

// ToISODate formats t's own calendar fields as yyyy-mm-dd. It never
// converts to UTC first.
func ToISODate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseISODate parses a yyyy-mm-dd key as midnight in loc.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(ISOLayout, s, loc)
}

// Resolve reads clock once and computes both keys.
func Resolve(clock Clock, sunsetHour int) Dates {
	civil := clock.Now()
	shifted := Shift(civil, sunsetHour)

	d := Dates{
		Civil:     civil,
		Bore:      shifted,
		CivilISO:  ToISODate(civil),
		LookupISO: ToISODate(shifted),
	}

	if d.Shifted() {
		appLog.Debug("past sunset hour; advancing bore lookup by one day",
			"sunset_hour", sunsetHour,
			"civil", d.CivilISO,
			"lookup", d.LookupISO,
		)
	}
	appLog.Info("dates resolved", "civil", d.CivilISO, "lookup", d.LookupISO)

	return d
}
