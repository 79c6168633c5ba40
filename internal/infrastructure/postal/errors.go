package postal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/infrastructure/resilience"
)

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "postal status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("postal lookup status: %s", e.Status)
	}
	return fmt.Sprintf("postal lookup status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed postal response: " + e.Reason
	}
	return fmt.Sprintf("malformed postal response: %s: %v", e.Reason, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// classifyPostalError never asks for a retry; a lookup gets one attempt.
// Caller cancellation and client-side rejections do not count against the
// upstream.
func classifyPostalError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	if errors.Is(err, context.Canceled) {
		return resilience.Classification{}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return resilience.Classification{CountsAsFailure: isUpstreamFault(statusErr.StatusCode)}
	}
	return resilience.Classification{CountsAsFailure: true}
}

func failureOf(err error) domain.PostalFailure {
	if resilience.IsCircuitOpen(err) {
		return domain.PostalFailureUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.PostalFailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.PostalFailureTimeout
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return domain.PostalFailureMalformed
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusRequestTimeout || statusErr.StatusCode == http.StatusGatewayTimeout {
			return domain.PostalFailureTimeout
		}
		if !isUpstreamFault(statusErr.StatusCode) {
			return domain.PostalFailureRejected
		}
	}
	return domain.PostalFailureUnavailable
}

func isUpstreamFault(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout
}
