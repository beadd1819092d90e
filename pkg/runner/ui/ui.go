// Package ui wires the store client, live updates and the terminal UI.
package ui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/rota/pkg/app"
	"tableflip.dev/rota/pkg/config"
	"tableflip.dev/rota/pkg/live"
	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/remote"
	teaui "tableflip.dev/rota/pkg/tui/app"
)

// UI runs the interactive schedule editor against Config.Server.
type UI struct {
	Config *config.Config
	Log    logx.Logger
	// View is the tab to open on: calendar, timeline or history.
	View string
	// Live disables push updates when false.
	Live bool
}

func (u *UI) Do(ctx context.Context) error {
	if u.Config == nil {
		return errors.New("ui: no configuration")
	}
	client := remote.NewClient(u.Config.Server,
		remote.WithTimeout(u.Config.Timeout),
		remote.WithLogger(u.Log),
	)
	svc := &app.Service{
		Remote:       client,
		HistoryLimit: u.Config.HistoryLimit,
		Log:          u.Log,
	}
	if u.Live {
		svc.Live = live.NewChannel(live.NewSSESource(client.BaseURL(), u.Log), u.Config.Debounce, u.Log)
	}

	state := app.NewState(time.Now)
	switch u.View {
	case "", "calendar":
	case "timeline":
		state.View = app.ViewTimeline
	case "history":
		state.View = app.ViewHistory
	default:
		return errors.New("ui: view must be calendar, timeline or history")
	}

	u.Log.Info("starting ui", logx.String("server", u.Config.Server), logx.Bool("live", u.Live))
	return teaui.Run(ctx, svc, state, teaui.Options{Log: u.Log})
}
