package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sashabaranov/go-openai"
)

const maxDetailLength = 300

// ErrNoCredential is returned without any network I/O when no API token is
// configured.
var ErrNoCredential = errors.New("openrouter token is not configured")

// UpstreamError is a non-2xx answer from the completion endpoint.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openrouter returned status %d: %s", e.Status, e.Detail)
}

// TransportError is a request that never produced a usable response:
// timeout, connection failure or a malformed body.
type TransportError struct {
	Reason string
}

func (e *TransportError) Error() string {
	return "openrouter request failed: " + e.Reason
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Status: apiErr.HTTPStatusCode,
			Detail: truncate(apiErr.Message, maxDetailLength),
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := string(reqErr.Body)
		if detail == "" && reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}

		return &UpstreamError{
			Status: reqErr.HTTPStatusCode,
			Detail: truncate(detail, maxDetailLength),
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Reason: "request timed out"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Reason: "request timed out"}
	}

	return &TransportError{Reason: truncate(err.Error(), maxDetailLength)}
}

// FailureText renders a completion error as a reply that is safe to send
// to the user verbatim.
func FailureText(err error) string {
	if errors.Is(err, ErrNoCredential) {
		return "OpenRouter is unavailable: no API token is configured."
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return fmt.Sprintf("Could not get a reply from the AI (OpenRouter %d). %s",
			upstreamErr.Status, upstreamErr.Detail)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "Error talking to OpenRouter: " + transportErr.Reason
	}

	return "Error talking to OpenRouter: " + truncate(err.Error(), maxDetailLength)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
