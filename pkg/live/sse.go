package live

import (
	"context"
	"net/http"
	"strings"

	"github.com/r3labs/sse/v2"

	"tableflip.dev/rota/pkg/logx"
)

// EventsPath is the store's server-sent events endpoint.
const EventsPath = "/api/events"

// SSESource subscribes to the store's event stream. Reconnection is left to
// the SSE client's own backoff.
type SSESource struct {
	URL        string
	HTTPClient *http.Client
	Log        logx.Logger
}

// NewSSESource returns a source for the store at baseURL.
func NewSSESource(baseURL string, log logx.Logger) *SSESource {
	return &SSESource{
		URL: strings.TrimRight(baseURL, "/") + EventsPath,
		// Streams stay open; no overall timeout.
		HTTPClient: &http.Client{},
		Log:        log,
	}
}

// Subscribe implements Source. Keepalive comments carry no data and are not
// reported as notifications.
func (s *SSESource) Subscribe(ctx context.Context, h Handlers) error {
	client := sse.NewClient(s.URL)
	if s.HTTPClient != nil {
		client.Connection = s.HTTPClient
	}
	client.OnConnect(func(*sse.Client) {
		s.Log.Info("live updates connected", logx.String("url", s.URL))
		if h.OnState != nil {
			h.OnState(StateConnected)
		}
	})
	client.OnDisconnect(func(*sse.Client) {
		if ctx.Err() != nil {
			return
		}
		if h.OnState != nil {
			h.OnState(StateReconnecting)
		}
	})

	errc := make(chan error, 1)
	go func() {
		errc <- client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			if msg == nil || len(msg.Data) == 0 {
				return
			}
			if h.OnMessage != nil {
				h.OnMessage()
			}
		})
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		return err
	}
}

var _ Source = (*SSESource)(nil)
