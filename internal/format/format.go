// Package format derives display strings from an entry and the civil date.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// BoreDate is the bore date text split into display parts.
type BoreDate struct {
	Day   string
	Month string
	Year  string
}

// MonthYear is the secondary label, "{month} {year}".
func (b BoreDate) MonthYear() string {
	return b.Month + " " + b.Year
}

// ParseBoreDate splits "D Month Y" on single spaces. The first token is the
// day, the last the year, and everything between is the month, so month
// names may contain spaces. Missing parts are empty strings.
func ParseBoreDate(text string) BoreDate {
	if text == "" {
		return BoreDate{}
	}
	parts := strings.Split(text, " ")
	out := BoreDate{
		Day:  parts[0],
		Year: parts[len(parts)-1],
	}
	if len(parts) > 2 {
		out.Month = strings.Join(parts[1:len(parts)-1], " ")
	}
	return out
}

// names holds abbreviated weekday and month names for one language.
type names struct {
	weekdays [7]string
	months   [12]string
	// layout receives weekday, day, month, year.
	layout func(wd string, d int, mon string, y int) string
}

var spanish = names{
	weekdays: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	months:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	layout: func(wd string, d int, mon string, y int) string {
		return fmt.Sprintf("%s, %d %s %d", wd, d, mon, y)
	},
}

var english = names{
	weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	months:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	layout: func(wd string, d int, mon string, y int) string {
		return fmt.Sprintf("%s, %s %d, %d", wd, mon, d, y)
	},
}

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
	tables    = []names{spanish, english}
)

// Gregorian formats t as a short weekday, day, month and year in the
// language that best matches locale (a BCP 47 tag such as "es-CO").
// Unknown or invalid tags fall back to Spanish.
func Gregorian(t time.Time, locale string) string {
	n := namesFor(locale)
	y, m, d := t.Date()
	return n.layout(n.weekdays[t.Weekday()], d, n.months[m-1], y)
}

func namesFor(locale string) names {
	tag, err := language.Parse(locale)
	if err != nil {
		return spanish
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return spanish
	}
	return tables[idx]
}
