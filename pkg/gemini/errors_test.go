package gemini

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &APIError{StatusCode: 429}, true},
		{"server error", &APIError{StatusCode: 500}, true},
		{"bad gateway", &APIError{StatusCode: 502}, true},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"quota as 403", &APIError{StatusCode: 403, Body: `{"error": {"status": "RESOURCE_EXHAUSTED"}}`}, true},
		{"plain 403", &APIError{StatusCode: 403, Body: "forbidden"}, false},
		{"wrapped api error", fmt.Errorf("calling gemini: %w", &APIError{StatusCode: 503}), true},
		{"url error", &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("dial tcp: connection refused")}, true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"parse failure", errors.New("decoding response: invalid character"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
