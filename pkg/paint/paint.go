// Package paint models the toolbar of direct-edit tools.
package paint

import (
	"fmt"
	"strings"

	"tableflip.dev/rota/pkg/shift"
)

// Tool is the active direct-edit mode.
type Tool int

const (
	// None means cell activation opens the editor.
	None Tool = iota
	// Day8 paints day8 shifts.
	Day8
	// Day12 paints day12 shifts.
	Day12
	// Night12 paints night12 shifts.
	Night12
	// Eraser removes shifts.
	Eraser
)

// Tools lists the selectable tools in toolbar order.
func Tools() []Tool {
	return []Tool{Day8, Day12, Night12, Eraser}
}

// Select is the transition function: choosing the active tool turns it off,
// any other choice switches to it directly.
func Select(current, chosen Tool) Tool {
	if chosen == current {
		return None
	}
	return chosen
}

// ShiftType returns the type a painting tool writes. Eraser and None report
// false.
func (t Tool) ShiftType() (shift.Type, bool) {
	switch t {
	case Day8:
		return shift.Day8, true
	case Day12:
		return shift.Day12, true
	case Night12:
		return shift.Night12, true
	default:
		return "", false
	}
}

// Key is the keyboard binding for the tool.
func (t Tool) Key() string {
	switch t {
	case Day8:
		return "1"
	case Day12:
		return "2"
	case Night12:
		return "3"
	case Eraser:
		return "0"
	default:
		return ""
	}
}

func (t Tool) String() string {
	switch t {
	case None:
		return "none"
	case Day8:
		return string(shift.Day8)
	case Day12:
		return string(shift.Day12)
	case Night12:
		return string(shift.Night12)
	case Eraser:
		return "eraser"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// ForKey resolves a keyboard binding. "x" is an alias for the eraser.
func ForKey(key string) (Tool, bool) {
	if key == "x" {
		return Eraser, true
	}
	for _, t := range Tools() {
		if t.Key() == key {
			return t, true
		}
	}
	return None, false
}

// Parse resolves a tool by name.
func Parse(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range append([]Tool{None}, Tools()...) {
		if t.String() == n {
			return t, nil
		}
	}
	return None, fmt.Errorf("paint: unknown tool %q", name)
}

// State holds the process-wide tool selection. The zero value is None.
type State struct {
	active Tool
}

// Active returns the selected tool.
func (s *State) Active() Tool { return s.active }

// Select applies the toggle transition and returns the new tool.
func (s *State) Select(t Tool) Tool {
	s.active = Select(s.active, t)
	return s.active
}

// Painting reports whether a tool other than None is active.
func (s *State) Painting() bool { return s.active != None }
