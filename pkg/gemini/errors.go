package gemini

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrEmptyResponse indicates the API returned no usable transcription text.
var ErrEmptyResponse = errors.New("gemini returned an empty response")

// APIError is a non-200 response from the Gemini API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, body)
}

// IsTransient reports whether an error is worth retrying: rate limiting,
// server-side failures, and transport problems. Client errors other than 429
// are permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 || apiErr.StatusCode >= 500 {
			return true
		}
		// Quota exhaustion sometimes surfaces as a 403 with RESOURCE_EXHAUSTED
		// in the body.
		if strings.Contains(apiErr.Body, "RESOURCE_EXHAUSTED") || strings.Contains(apiErr.Body, "quota") {
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF")
}
