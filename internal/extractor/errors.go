package extractor

import "fmt"

// UpstreamError reports a network or API level failure talking to the
// model. Status is the upstream HTTP status when the API answered with an
// error response, zero for transport faults. The original error stays
// reachable through Unwrap.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream model call failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream model call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// RefusalError means the model explicitly declined to answer. The message
// is the model's own explanation and is safe to surface to the caller.
type RefusalError struct {
	Message string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("model refused the request: %s", e.Message)
}

// SchemaMismatchError means the model's output did not conform to the
// requested schema. This is an upstream contract violation, not a caller
// mistake.
type SchemaMismatchError struct {
	Reason string
	Err    error
}

func (e *SchemaMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model output does not match schema: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("model output does not match schema: %s", e.Reason)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }
