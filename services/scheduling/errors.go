package scheduling

import (
	"fmt"

	"studioflow/models"
)

// ValidationError reports malformed input: a bad recurrence spec, an
// inverted time window, or an expansion that exceeds the occurrence cap.
// Validation always fails before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Message)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that a proposed window overlaps an existing busy
// interval. For a single booking it aborts creation; during series
// creation it is recorded on the skipped list instead.
type ConflictError struct {
	Reason        string
	Window        models.TimeWindow
	ConflictingID string
	Kind          models.BlockKind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s (blocked by %s %s)", e.Reason, e.Kind, e.ConflictingID)
}

// InvalidTransitionError reports an illegal lifecycle move. The engine
// never coerces a disallowed transition; the caller decides what to do.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// InfrastructureError wraps a store, lock or queue failure. The engine
// performs no retries; retry policy belongs to the caller.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("infrastructure: %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func infraErr(op string, err error) error {
	return &InfrastructureError{Op: op, Err: err}
}
