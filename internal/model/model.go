package model

import "encoding/json"

// Entry is the per-date record of display fields as published in the
// remote calendar table. Entries are values and are never mutated after
// decoding.
type Entry struct {
	// Bore is the bore date as free text, "D Month Y" (e.g. "15 Tevet 5786").
	Bore string `json:"bore"`
	// Yehudim is the secondary (rabbinic) calendar label.
	Yehudim string `json:"yehudim"`

	Note  string `json:"note"`
	Moon  string `json:"moon"`
	Aviv  string `json:"aviv"`
	Event string `json:"event"`
}

// DefaultEntry is shown when no table row matches either date key or the
// table could not be obtained at all.
var DefaultEntry = Entry{
	Bore:    "Unknown",
	Yehudim: "Unknown",
}

// UnmarshalJSON accepts the older "hebrew" field name for the secondary
// label when "yehudim" is absent.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var aux struct {
		plain
		Hebrew string `json:"hebrew"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)
	if e.Yehudim == "" {
		e.Yehudim = aux.Hebrew
	}
	return nil
}

// Table maps an ISO date ("yyyy-mm-dd") to its entry. Keys are civil dates
// as chosen by the table's author.
type Table map[string]Entry

// Get returns the entry for key and whether it exists.
func (t Table) Get(key string) (Entry, bool) {
	if t == nil || key == "" {
		return Entry{}, false
	}
	e, ok := t[key]
	return e, ok
}
