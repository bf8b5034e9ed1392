// Package widget builds the declarative widget layout: an ordered list of
// styled text runs and spacers that a host renderer draws.
package widget

import (
	"time"

	"borecal/internal/config"
	"borecal/internal/format"
	"borecal/internal/model"
)

// Role names the visual style of a text run.
type Role string

const (
	RoleDay       Role = "day"
	RoleMonthYear Role = "month_year"
	RoleBody      Role = "body"
	RoleNote      Role = "note"
	RoleEvent     Role = "event"
)

// Kind distinguishes text runs from spacers.
type Kind string

const (
	KindText   Kind = "text"
	KindSpacer Kind = "spacer"
)

// Align is the horizontal alignment of a text run.
type Align string

const (
	AlignCenter Align = "center"
	AlignLeft   Align = "left"
)

// Style is the resolved look of one text run.
type Style struct {
	Size  int    `json:"size"`
	Bold  bool   `json:"bold"`
	Color string `json:"color"`
	Align Align  `json:"align"`
}

// Item is one element of the vertical layout.
type Item struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Role  Role   `json:"role,omitempty"`
	Style Style  `json:"style"`
	// Size is the spacer height.
	Size int `json:"size,omitempty"`
}

// Layout is the complete formatting request handed to a renderer.
type Layout struct {
	Padding    int    `json:"padding"`
	Background string `json:"background"`
	Items      []Item `json:"items"`
}

// Texts returns the text runs in order, skipping spacers.
func (l Layout) Texts() []Item {
	out := make([]Item, 0, len(l.Items))
	for _, it := range l.Items {
		if it.Kind == KindText {
			out = append(out, it)
		}
	}
	return out
}

// Theme maps roles to styles and holds spacing.
type Theme struct {
	Colors  config.Colors
	Fonts   config.Fonts
	Spacing config.Spacing
}

// ThemeFromConfig extracts the presentation settings from cfg.
func ThemeFromConfig(cfg config.Config) Theme {
	return Theme{Colors: cfg.Colors, Fonts: cfg.Fonts, Spacing: cfg.Spacing}
}

// Style resolves role to a concrete style.
func (t Theme) Style(role Role) Style {
	switch role {
	case RoleDay:
		return Style{Size: t.Fonts.Day, Bold: true, Color: t.Colors.Black, Align: AlignCenter}
	case RoleMonthYear:
		return Style{Size: t.Fonts.MonthYear, Color: t.Colors.Gray, Align: AlignCenter}
	case RoleNote:
		return Style{Size: t.Fonts.Body, Color: t.Colors.DarkGray, Align: AlignCenter}
	case RoleEvent:
		return Style{Size: t.Fonts.Event, Bold: true, Color: t.Colors.Accent, Align: AlignCenter}
	default:
		return Style{Size: t.Fonts.Body, Color: t.Colors.LightGray, Align: AlignCenter}
	}
}

// Build assembles the fixed layout for entry on the civil date:
//
//  1. bore day (large, bold)
//  2. "{month} {year}"
//  3. medium spacer
//  4. Gregorian date in locale
//  5. secondary calendar label, if any
//  6. small spacer
//  7. note, if any
//  8. event, if any (accent)
func Build(entry model.Entry, civil time.Time, theme Theme, locale string) Layout {
	bd := format.ParseBoreDate(entry.Bore)

	l := Layout{
		Padding:    theme.Spacing.Padding,
		Background: theme.Colors.Background,
	}

	text := func(s string, role Role) {
		l.Items = append(l.Items, Item{Kind: KindText, Text: s, Role: role, Style: theme.Style(role)})
	}
	spacer := func(size int) {
		l.Items = append(l.Items, Item{Kind: KindSpacer, Size: size})
	}

	text(bd.Day, RoleDay)
	text(bd.MonthYear(), RoleMonthYear)
	spacer(theme.Spacing.Medium)
	text(format.Gregorian(civil, locale), RoleBody)
	if entry.Yehudim != "" {
		text(entry.Yehudim, RoleBody)
	}
	spacer(theme.Spacing.Small)
	if entry.Note != "" {
		text(entry.Note, RoleNote)
	}
	if entry.Event != "" {
		text(entry.Event, RoleEvent)
	}

	return l
}
