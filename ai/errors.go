package ai

import (
	"errors"
	"fmt"
)

// ErrRequestTimeout is delivered to pending callers whose in-flight request
// was swept by the janitor before completing.
var ErrRequestTimeout = errors.New("recommendation request timed out")

// ValidationError reports a malformed payload rejected before any network
// call was attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid AI payload: %s: %s", e.Field, e.Reason)
}

// UpstreamError reports a non-2xx response from the AI service. The body is
// kept verbatim for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai service request failed: status %d", e.StatusCode)
}

// ContractError reports a 2xx response whose body does not match the
// expected shape. Malformed data is never returned to callers.
type ContractError struct {
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("ai service contract violation: %s", e.Detail)
}
