package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidDate is returned before any request when a date key is malformed.
var ErrInvalidDate = errors.New("remote: invalid date")

// APIError is a non-success answer from the store, parsed best-effort from
// its JSON body.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("remote: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote: %d %s", e.Status, e.Detail)
}

// NotFound reports whether the store answered 404, e.g. deleting an empty day
// or undoing with no history.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

// IsNotFound unwraps err looking for a 404 APIError.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// parseAPIError never fails: whatever the body holds becomes the detail.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return e
	}
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		e.Detail = trimmed
		return e
	}
	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			e.Detail = s
		} else {
			e.Detail = string(envelope.Detail)
		}
		return e
	}
	e.Detail = envelope.Message
	return e
}
