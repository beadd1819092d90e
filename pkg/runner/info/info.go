// Package info prints what rota knows about its configuration and store.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/rota/pkg/config"
	"tableflip.dev/rota/pkg/printers"
	"tableflip.dev/rota/pkg/shift"
)

// Store answers the read-only catalogue queries.
type Store interface {
	ShiftTypes(ctx context.Context) (*shift.Catalog, error)
	NextShift(ctx context.Context) (*shift.NextShift, error)
}

// Info prints the resolved configuration and the store's shift types.
type Info struct {
	Config *config.Config
	Store  Store
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintln(out, config.PathEnv+" found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.PathEnv+" env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load(config.Options{})
		if err != nil {
			return err
		}
	}
	file := n.Config.File
	if file == "" {
		file = "(defaults)"
	}
	_, _ = fmt.Fprintln(out, "Config.file:  ", file)
	_, _ = fmt.Fprintln(out, "Config.server:", n.Config.Server)

	if n.Store == nil {
		return errors.New("failed to create store client")
	}
	t := &Types{Store: n.Store, Out: out}
	return t.Do(ctx)
}

// Types prints the shift type catalogue. The built-in catalogue is shown when
// the store does not answer.
type Types struct {
	Store Store
	JSON  bool
	Out   io.Writer
}

type typeJSON struct {
	Type  shift.Type `json:"type"`
	Label string     `json:"label"`
	Start string     `json:"start"`
	End   string     `json:"end"`
}

func (t *Types) Do(ctx context.Context) error {
	var cat *shift.Catalog
	if t.Store != nil {
		cat, _ = t.Store.ShiftTypes(ctx)
	}
	if cat == nil || len(cat.Definitions()) == 0 {
		cat = shift.DefaultCatalog()
	}
	defs := cat.Definitions()
	if t.JSON {
		out := make([]typeJSON, 0, len(defs))
		for _, d := range defs {
			out = append(out, typeJSON{Type: d.Type, Label: d.Label, Start: d.Start, End: d.End})
		}
		return printers.JSON(t.Out, out)
	}
	pp := printers.PrettyPrint{Out: t.Out}
	pp.NewLine()
	pp.TitleWithCount("Shift types", len(defs), "type")
	pp.Types(defs)
	return nil
}

// Next prints the next upcoming shift.
type Next struct {
	Store Store
	JSON  bool
	Out   io.Writer
}

func (n *Next) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not look up the next shift, no store")
	}
	next, err := n.Store.NextShift(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, next)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Next(next)
	return nil
}
