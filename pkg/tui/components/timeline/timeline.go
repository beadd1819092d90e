// Package timeline renders the horizontal day strips of the schedule and
// animates their scrolling.
package timeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/rota/pkg/tui/theme"
	"tableflip.dev/rota/pkg/viewmodel"
)

const (
	// ColumnWidth is the width of one day column including its gap.
	ColumnWidth = 3
	// LabelWidth is the width of the month label in front of each strip.
	LabelWidth = 10

	fps = 60
)

// Visible returns how many day columns fit in width.
func Visible(width int) int {
	if width <= 0 {
		return 31
	}
	n := (width - LabelWidth) / ColumnWidth
	if n < 1 {
		n = 1
	}
	return n
}

// Target returns the first column to show so that focus is centered, clamped
// to the strip. A negative focus keeps the strip at its start.
func Target(columns, visible, focus int) int {
	if focus < 0 || columns <= visible {
		return 0
	}
	start := focus - visible/2
	if start < 0 {
		start = 0
	}
	if start > columns-visible {
		start = columns - visible
	}
	return start
}

// Scroller springs each strip's offset toward its target.
type Scroller struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	target []float64
}

// NewScroller returns a scroller for n strips.
func NewScroller(n int) *Scroller {
	return &Scroller{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
		target: make([]float64, n),
	}
}

// FrameRate is the animation tick rate.
func FrameRate() int { return fps }

func (s *Scroller) ensure(n int) {
	for len(s.pos) < n {
		s.pos = append(s.pos, 0)
		s.vel = append(s.vel, 0)
		s.target = append(s.target, 0)
	}
}

// SetTarget aims strip i at column start.
func (s *Scroller) SetTarget(i, start int) {
	s.ensure(i + 1)
	s.target[i] = float64(start)
}

// TargetOf is the column strip i is heading to.
func (s *Scroller) TargetOf(i int) int {
	if i < 0 || i >= len(s.target) {
		return 0
	}
	return int(s.target[i])
}

// Jump moves strip i to start without animating.
func (s *Scroller) Jump(i, start int) {
	s.ensure(i + 1)
	s.target[i] = float64(start)
	s.pos[i] = float64(start)
	s.vel[i] = 0
}

// Step advances one frame. It reports whether any strip is still moving.
func (s *Scroller) Step() bool {
	moving := false
	for i := range s.pos {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], s.target[i])
		if math.Abs(s.pos[i]-s.target[i]) < 0.01 && math.Abs(s.vel[i]) < 0.01 {
			s.pos[i] = s.target[i]
			s.vel[i] = 0
			continue
		}
		moving = true
	}
	return moving
}

// Settle finishes every animation at once.
func (s *Scroller) Settle() {
	for i := range s.pos {
		s.pos[i] = s.target[i]
		s.vel[i] = 0
	}
}

// Offset is the first visible column of strip i.
func (s *Scroller) Offset(i int) int {
	if i < 0 || i >= len(s.pos) {
		return 0
	}
	return int(math.Round(s.pos[i]))
}

// Options controls strip rendering.
type Options struct {
	Styles theme.ScheduleTheme
	Width  int
	Cursor string
}

// Render draws every strip of view starting at the scroller's offsets.
func Render(view viewmodel.TimelineView, scroll *Scroller, opts Options) string {
	visible := Visible(opts.Width)
	blocks := make([]string, 0, len(view.Strips))
	for i, strip := range view.Strips {
		start := 0
		if scroll != nil {
			start = scroll.Offset(i)
		}
		blocks = append(blocks, renderStrip(strip, start, visible, opts))
	}
	return strings.Join(blocks, "\n\n")
}

func renderStrip(strip viewmodel.Strip, start, visible int, opts Options) string {
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(strip.Columns) {
		end = len(strip.Columns)
	}
	if start > end {
		start = end
	}

	label := truncate.StringWithTail(strip.Title, LabelWidth-1, "…")
	pad := strings.Repeat(" ", LabelWidth)
	bars := []string{opts.Styles.Title.Render(fmt.Sprintf("%-*s", LabelWidth, label))}
	nums := []string{pad}
	dows := []string{pad}
	if start > 0 {
		bars[0] = opts.Styles.Title.Render(fmt.Sprintf("%-*s", LabelWidth-1, label)) + "‹"
	}

	for _, col := range strip.Columns[start:end] {
		bar, num, dow := renderColumn(col, opts)
		bars = append(bars, bar)
		nums = append(nums, num)
		dows = append(dows, dow)
	}
	if end < len(strip.Columns) {
		bars = append(bars, "›")
	}
	return strings.Join([]string{
		strings.Join(bars, ""),
		strings.Join(nums, ""),
		strings.Join(dows, ""),
	}, "\n")
}

func renderColumn(col viewmodel.Column, opts Options) (bar, num, dow string) {
	s := opts.Styles
	text := s.Empty
	if col.Weekend {
		text = s.Weekend
	}
	if col.Today {
		text = text.Inherit(s.Today)
	}
	if opts.Cursor != "" && col.Date == opts.Cursor {
		text = text.Inherit(s.Cursor)
	}

	if col.HasShift {
		st := s.ShiftStyle(col.Shift.Type)
		if col.Weekend {
			st = s.WeekendShift(col.Shift.Type)
		}
		bar = st.Render("  ") + " "
	} else {
		bar = text.Render(" ·") + " "
	}
	num = text.Render(fmt.Sprintf("%2d", col.Day)) + " "
	dow = text.Render(col.WeekdayLabel) + " "
	return bar, num, dow
}
