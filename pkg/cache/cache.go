// Package cache holds the shifts for the window a view is displaying.
package cache

import (
	"sort"
	"sync"

	"tableflip.dev/rota/pkg/quarter"
	"tableflip.dev/rota/pkg/shift"
)

// ShiftCache maps dates to shifts for exactly one quarter window. It is only
// ever replaced wholesale from a range fetch; mutations never patch it.
type ShiftCache struct {
	mu     sync.RWMutex
	window quarter.Window
	loaded bool
	byDate map[string]shift.Shift
}

// New returns an empty cache with no window.
func New() *ShiftCache {
	return &ShiftCache{byDate: make(map[string]shift.Shift)}
}

// Replace swaps the contents for the result of a fetch over w. Records outside
// w are dropped; later duplicates for a date win. It returns the number of
// records kept.
func (c *ShiftCache) Replace(w quarter.Window, shifts []shift.Shift) int {
	next := make(map[string]shift.Shift, len(shifts))
	for _, s := range shifts {
		if !w.Contains(s.Date) {
			continue
		}
		next[s.Date] = s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	c.loaded = true
	c.byDate = next
	return len(next)
}

// Window returns the window of the last completed fetch.
func (c *ShiftCache) Window() (quarter.Window, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.window, c.loaded
}

// Get returns the cached shift for date.
func (c *ShiftCache) Get(date string) (shift.Shift, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byDate[date]
	return s, ok
}

// Len reports the number of cached shifts.
func (c *ShiftCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byDate)
}

// Shifts returns the cached shifts ordered by date.
func (c *ShiftCache) Shifts() []shift.Shift {
	c.mu.RLock()
	out := make([]shift.Shift, 0, len(c.byDate))
	for _, s := range c.byDate {
		out = append(out, s)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Lookup is the read side renderers depend on.
type Lookup interface {
	Get(date string) (shift.Shift, bool)
}

var _ Lookup = (*ShiftCache)(nil)
