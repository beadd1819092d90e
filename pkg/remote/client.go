// Package remote talks to the schedule store's REST API.
//
// Read failures in transport are logged and answered with empty results so
// callers keep rendering. Writes that never reached the store fail with
// ErrUnreachable. Non-success answers come back as *APIError values. Every
// call is attempted exactly once.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/rota/pkg/logx"
	"tableflip.dev/rota/pkg/shift"
)

const (
	// DefaultHistoryLimit is the page size the history view requests.
	DefaultHistoryLimit = 100
	// MaxHistoryLimit is the largest page the store accepts.
	MaxHistoryLimit = 500
)

// ErrUnreachable is returned by writes that never reached the store. Reads
// answer empty results instead.
var ErrUnreachable = errors.New("remote: store unreachable")

// Client is the RemoteSync implementation over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logx.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(l logx.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient returns a client for the store at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: logx.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the store address.
func (c *Client) BaseURL() string { return c.baseURL }

// Shifts reads the shifts in [from, to]. A body that is not a list of shifts
// yields an empty result.
func (c *Client) Shifts(ctx context.Context, from, to string) ([]shift.Shift, error) {
	if err := checkDate(from); err != nil {
		return nil, err
	}
	if err := checkDate(to); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/shifts?"+q.Encode(), nil, &raw); err != nil {
		if errors.Is(err, ErrUnreachable) {
			return []shift.Shift{}, nil
		}
		return []shift.Shift{}, err
	}
	var shifts []shift.Shift
	if err := json.Unmarshal(raw, &shifts); err != nil {
		c.log.Warn("shift range response is not a list", logx.String("from", from), logx.String("to", to), logx.Err(err))
		return []shift.Shift{}, nil
	}
	if shifts == nil {
		shifts = []shift.Shift{}
	}
	return shifts, nil
}

// SetShift creates or replaces the shift on date.
func (c *Client) SetShift(ctx context.Context, date string, typ shift.Type) (*shift.Shift, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	body := struct {
		Type shift.Type `json:"type"`
	}{Type: typ}
	out := &shift.Shift{}
	if err := c.do(ctx, http.MethodPut, "/api/shifts/"+url.PathEscape(date), body, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteShift removes the shift on date. A missing shift answers 404.
func (c *Client) DeleteShift(ctx context.Context, date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/shifts/"+url.PathEscape(date), nil, nil)
}

// History reads up to limit change entries, newest first. The limit is
// clamped to what the store accepts.
func (c *Client) History(ctx context.Context, limit int) ([]shift.HistoryEntry, error) {
	limit = ClampHistoryLimit(limit)
	var entries []shift.HistoryEntry
	if err := c.do(ctx, http.MethodGet, "/api/history?limit="+strconv.Itoa(limit), nil, &entries); err != nil {
		if errors.Is(err, ErrUnreachable) {
			return []shift.HistoryEntry{}, nil
		}
		return []shift.HistoryEntry{}, err
	}
	if entries == nil {
		entries = []shift.HistoryEntry{}
	}
	return entries, nil
}

// Undo reverts the most recent change on the store. With nothing to undo the
// store answers 404, returned as an *APIError.
func (c *Client) Undo(ctx context.Context) (*shift.UndoResult, error) {
	out := &shift.UndoResult{}
	if err := c.do(ctx, http.MethodPost, "/api/undo", nil, out); err != nil {
		return &shift.UndoResult{}, err
	}
	return out, nil
}

// ShiftTypes reads the store's type catalogue.
func (c *Client) ShiftTypes(ctx context.Context) (*shift.Catalog, error) {
	var defs map[string]shift.Definition
	if err := c.do(ctx, http.MethodGet, "/api/shift_types", nil, &defs); err != nil {
		if errors.Is(err, ErrUnreachable) {
			return shift.DefaultCatalog(), nil
		}
		return shift.DefaultCatalog(), err
	}
	if len(defs) == 0 {
		return shift.DefaultCatalog(), nil
	}
	return shift.CatalogFrom(defs), nil
}

// NextShift reads the next upcoming shift. A nil result with a nil error
// means the store was unreachable.
func (c *Client) NextShift(ctx context.Context) (*shift.NextShift, error) {
	out := &shift.NextShift{}
	if err := c.do(ctx, http.MethodGet, "/api/next_shift", nil, out); err != nil {
		if errors.Is(err, ErrUnreachable) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(logx.String("method", method), logx.String("path", path), logx.String("request_id", reqID))
	started := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", logx.Err(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		log.Warn("read response failed", logx.Err(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	log.Debug("request done", logx.Int("status", res.StatusCode), logx.Duration("took", time.Since(started)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := parseAPIError(res.StatusCode, payload)
		log.Warn("store returned an error", logx.Int("status", apiErr.Status), logx.String("detail", apiErr.Detail))
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], payload...)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
	}
	return nil
}

// ClampHistoryLimit bounds limit to 1..MaxHistoryLimit, mapping non-positive
// values to the default page size.
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

func checkDate(date string) error {
	if _, err := time.Parse(shift.DateLayout, date); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDate, date)
	}
	return nil
}
