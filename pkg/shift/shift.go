// Package shift defines the duty records exchanged with the schedule store.
package shift

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire and cache key format for calendar dates.
const DateLayout = "2006-01-02"

// Type names a kind of shift, e.g. "day8".
type Type string

const (
	// Day8 is an eight hour day shift.
	Day8 Type = "day8"
	// Day12 is a twelve hour day shift.
	Day12 Type = "day12"
	// Night12 is a twelve hour night shift.
	Night12 Type = "night12"
)

// Shift is one day's assigned duty.
type Shift struct {
	Date  string `json:"date"`
	Type  Type   `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Hours renders the "start–end" span, or an empty string when unknown.
func (s Shift) Hours() string {
	if s.Start == "" && s.End == "" {
		return ""
	}
	return s.Start + "–" + s.End
}

// HistoryEntry is a single audit record of a change made on the store.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Change    string `json:"change,omitempty"`
}

// UndoResult is the store's answer to an undo request.
type UndoResult struct {
	Message      string `json:"message"`
	RestoredDate string `json:"restored_date,omitempty"`
}

// NextShift describes the next upcoming shift relative to now.
type NextShift struct {
	Date     string `json:"date"`
	DateTime string `json:"datetime"`
	Type     Type   `json:"type"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// Definition holds the default hours the store assigns to a type.
type Definition struct {
	Type  Type   `json:"-"`
	Label string `json:"-"`
	Start string `json:"start"`
	End   string `json:"end"`
}

var defaults = []Definition{
	{Type: Day8, Label: "Day 8h", Start: "07:00", End: "15:00"},
	{Type: Day12, Label: "Day 12h", Start: "07:00", End: "19:00"},
	{Type: Night12, Label: "Night 12h", Start: "19:00", End: "07:00"},
}

// DefaultDefinitions returns the built-in catalogue in display order.
func DefaultDefinitions() []Definition {
	return append([]Definition(nil), defaults...)
}

// Catalog is an ordered set of known shift types.
type Catalog struct {
	defs []Definition
}

// DefaultCatalog returns a catalogue of the built-in types.
func DefaultCatalog() *Catalog {
	return &Catalog{defs: DefaultDefinitions()}
}

// CatalogFrom builds a catalogue from a store response keyed by type. Built-in
// types keep their position; unknown types are appended alphabetically.
func CatalogFrom(remote map[string]Definition) *Catalog {
	c := &Catalog{}
	seen := make(map[Type]bool, len(remote))
	for _, d := range defaults {
		if r, ok := remote[string(d.Type)]; ok {
			d.Start, d.End = r.Start, r.End
			c.defs = append(c.defs, d)
			seen[d.Type] = true
		}
	}
	extra := make([]string, 0, len(remote))
	for name := range remote {
		if !seen[Type(name)] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		r := remote[name]
		c.defs = append(c.defs, Definition{Type: Type(name), Label: name, Start: r.Start, End: r.End})
	}
	return c
}

// Definitions returns the catalogue entries in order.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return DefaultDefinitions()
	}
	return append([]Definition(nil), c.defs...)
}

// Lookup finds the definition for t.
func (c *Catalog) Lookup(t Type) (Definition, bool) {
	for _, d := range c.Definitions() {
		if d.Type == t {
			return d, true
		}
	}
	return Definition{}, false
}

// Valid reports whether t is a known type.
func (c *Catalog) Valid(t Type) bool {
	_, ok := c.Lookup(t)
	return ok
}

// Names lists the known type names.
func (c *Catalog) Names() []string {
	defs := c.Definitions()
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, string(d.Type))
	}
	return out
}

// ParseType normalizes user input into a Type.
func ParseType(s string) Type {
	return Type(strings.ToLower(strings.TrimSpace(s)))
}

// FormatDate renders t as a cache key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a cache key into a midnight time in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
