package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. Callers branch with errors.Is rather
// than inspecting message text.
var (
	// ErrInvalidCredentials indicates the Canvas verification probe rejected
	// the supplied domain/token pair during connect.
	ErrInvalidCredentials = errors.New("invalid canvas credentials")

	// ErrCredentialsNotFound indicates an operation required a Canvas
	// connection but the user has none.
	ErrCredentialsNotFound = errors.New("canvas credentials not found")

	// ErrCourseNotFound indicates the requested course does not exist or is
	// not owned by the caller.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseCodeExists indicates a (user, code) uniqueness violation.
	ErrCourseCodeExists = errors.New("course code already exists for this user")

	// ErrNotImplemented marks the assignment import stub.
	ErrNotImplemented = errors.New("not implemented")
)

// CanvasAPIError is a non-2xx response or transport failure from the Canvas
// API, including failures mid-pagination. It aborts the whole call that
// triggered it; partially fetched pages are discarded.
type CanvasAPIError struct {
	StatusCode int    // Zero when the request never produced a response.
	URL        string
	Body       string // Truncated response body, empty when unavailable.
	Err        error  // Underlying transport error, nil on HTTP-level failures.
}

func (e *CanvasAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("canvas api: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("canvas api: %s returned %d", e.URL, e.StatusCode)
}

func (e *CanvasAPIError) Unwrap() error { return e.Err }

// ImportFailedError is raised when an import attempt produced zero imported
// courses but at least one skip or failure, so callers can tell "nothing to
// do" apart from "nothing worked".
type ImportFailedError struct {
	Skipped int
	Failed  int
}

func (e *ImportFailedError) Error() string {
	return fmt.Sprintf("Imported 0. Skipped %d already imported. Failed %d.", e.Skipped, e.Failed)
}
