// Package key prints the legend of the schedule views.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/rota/pkg/paint"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/shift"
)

// Key prints the paint tools with their bindings and the day markers.
type Key struct {
	Out io.Writer
}

type marker struct {
	Symbol  string
	Meaning string
}

var markers = []marker{
	{Symbol: "15", Meaning: "today, bold and underlined"},
	{Symbol: "15", Meaning: "cursor, reversed"},
	{Symbol: "‹ ›", Meaning: "more timeline days that way"},
	{Symbol: "·", Meaning: "timeline day without a shift"},
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}

func (k *Key) Do(ctx context.Context) error {
	_, _ = fmt.Fprintln(k.out(), "")
	k.Tools(ctx, paint.Tools())
	_, _ = fmt.Fprintln(k.out(), "")
	k.Markers(ctx)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Tools renders a table of tool bindings.
func (k *Key) Tools(_ context.Context, tools []paint.Tool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Tool"))
	for _, t := range tools {
		name := t.String()
		if typ, ok := t.ShiftType(); ok {
			name = printers.TypeColor(typ).Sprint(string(typ))
		}
		keys := t.Key()
		if t == paint.Eraser {
			keys += ", x"
		}
		tbl.AddRow(keys, name)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Markers renders what the day cells can show.
func (k *Key) Markers(_ context.Context) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Meaning"))
	for i, m := range markers {
		sym := m.Symbol
		switch i {
		case 0:
			sym = color.New(color.Bold, color.Underline).Sprint(sym)
		case 1:
			sym = color.New(color.ReverseVideo).Sprint(sym)
		}
		tbl.AddRow(sym, m.Meaning)
	}
	for _, d := range shift.DefaultDefinitions() {
		tbl.AddRow(printers.TypeColor(d.Type).Sprint("██"), d.Label)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
