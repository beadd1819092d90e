// Package live turns the store's push stream into debounced refresh signals.
package live

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/rota/pkg/logx"
)

// State is the push connection state.
type State int

const (
	// StateConnecting means the first connection attempt is in flight.
	StateConnecting State = iota
	// StateConnected means notifications are flowing.
	StateConnected
	// StateReconnecting means the connection dropped and the transport is
	// retrying.
	StateReconnecting
	// StateClosed means the channel stopped.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Handlers receive transport callbacks from a Source.
type Handlers struct {
	// OnMessage is called once per inbound notification. Content is not
	// interpreted.
	OnMessage func()
	// OnState reports connection changes.
	OnState func(State)
}

// Source is a push transport. Subscribe blocks until ctx is done or the
// transport gives up, reconnecting on its own in between.
type Source interface {
	Subscribe(ctx context.Context, h Handlers) error
}

// EventType distinguishes Channel events.
type EventType int

const (
	// EventRefresh asks the consumer to refresh the active view.
	EventRefresh EventType = iota
	// EventState reports a connection state change.
	EventState
)

// Event is emitted by Channel.Watch.
type Event struct {
	Type  EventType
	State State
}

// Channel debounces notifications from a Source.
type Channel struct {
	source Source
	delay  time.Duration
	log    logx.Logger
}

// NewChannel wraps source. A non-positive delay uses DefaultDelay.
func NewChannel(source Source, delay time.Duration, log logx.Logger) *Channel {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Channel{source: source, delay: delay, log: log}
}

// Watch streams events until ctx is cancelled or the source gives up; the
// channel is closed afterwards. Refresh events never queue more than one deep:
// a refresh already waiting to be read covers any later one.
func (c *Channel) Watch(ctx context.Context) (<-chan Event, error) {
	if c.source == nil {
		return nil, errors.New("live: no source configured")
	}
	events := make(chan Event, 8)
	refresh := make(chan struct{}, 1)

	deb := NewDebouncer(c.delay, func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	})

	state := make(chan State, 8)
	handlers := Handlers{
		OnMessage: deb.Trigger,
		OnState: func(s State) {
			select {
			case state <- s:
			default:
			}
		},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.source.Subscribe(ctx, handlers); err != nil && ctx.Err() == nil {
			c.log.Warn("live updates stopped", logx.Err(err))
		}
	}()

	go func() {
		defer close(events)
		defer deb.Stop()
		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !send(Event{Type: EventState, State: StateConnecting}) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				send(Event{Type: EventState, State: StateClosed})
				return
			case s := <-state:
				if s == StateReconnecting {
					c.log.Warn("live connection lost, transport is reconnecting")
				}
				if !send(Event{Type: EventState, State: s}) {
					return
				}
			case <-refresh:
				c.log.Debug("live refresh")
				if !send(Event{Type: EventRefresh}) {
					return
				}
			}
		}
	}()

	return events, nil
}
