package engine

import "fmt"

// ResourceExhaustedError indicates the engine ran out of accelerator
// memory while parsing. It is distinct from a generic engine failure
// so callers can tell transient capacity conditions from genuine
// parse errors.
type ResourceExhaustedError struct {
	Engine string
	Err    error
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("%s accelerator memory exhausted: %v", e.Engine, e.Err)
}

func (e *ResourceExhaustedError) Unwrap() error {
	return e.Err
}
