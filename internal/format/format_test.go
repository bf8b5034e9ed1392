package format

import (
	"testing"
	"time"
)

func TestParseBoreDate(t *testing.T) {
	cases := []struct {
		in   string
		want BoreDate
	}{
		{"15 Tevet 5786", BoreDate{Day: "15", Month: "Tevet", Year: "5786"}},
		{"1 Rosh Hashaná 5786", BoreDate{Day: "1", Month: "Rosh Hashaná", Year: "5786"}},
		{"3 3rd month 6025", BoreDate{Day: "3", Month: "3rd month", Year: "6025"}},
		{"", BoreDate{}},
		{"Unknown", BoreDate{Day: "Unknown", Year: "Unknown"}},
		{"15 5786", BoreDate{Day: "15", Year: "5786"}},
	}
	for _, tc := range cases {
		if got := ParseBoreDate(tc.in); got != tc.want {
			t.Errorf("ParseBoreDate(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseBoreDateMalformedDoesNotPanic(t *testing.T) {
	for _, in := range []string{" ", "  ", " 15 Tevet ", "\t"} {
		_ = ParseBoreDate(in)
	}
	got := ParseBoreDate(" ")
	if got.Day != "" || got.Month != "" || got.Year != "" {
		t.Fatalf("ParseBoreDate(\" \") = %+v", got)
	}
}

func TestMonthYear(t *testing.T) {
	if got := ParseBoreDate("1 Rosh Hashaná 5786").MonthYear(); got != "Rosh Hashaná 5786" {
		t.Fatalf("MonthYear = %q", got)
	}
}

func TestGregorian(t *testing.T) {
	day := time.Date(2026, time.October, 17, 20, 0, 0, 0, time.UTC)
	cases := []struct {
		locale string
		want   string
	}{
		{"es-CO", "sáb, 17 oct 2026"},
		{"es", "sáb, 17 oct 2026"},
		{"en-US", "Sat, Oct 17, 2026"},
		{"", "sáb, 17 oct 2026"},
		{"not a tag!", "sáb, 17 oct 2026"},
	}
	for _, tc := range cases {
		if got := Gregorian(day, tc.locale); got != tc.want {
			t.Errorf("Gregorian(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestGregorianSpanishSeptember(t *testing.T) {
	day := time.Date(2026, time.September, 17, 9, 0, 0, 0, time.UTC)
	if got := Gregorian(day, "es-CO"); got != "jue, 17 sept 2026" {
		t.Fatalf("Gregorian = %q, want %q", got, "jue, 17 sept 2026")
	}
}
