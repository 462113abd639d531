package domain

import "errors"

// Sentinel errors for the portal's error taxonomy - match with errors.Is().
// Services wrap these with context: fmt.Errorf("%w: folder %s", ErrNotFound, id).
var (
	// ErrNotFound indicates the referenced id does not resolve to an active record.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or invalid input at submission/creation time.
	// Recoverable: the caller corrects the input and retries.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a name collision (folder sibling uniqueness).
	ErrConflict = errors.New("already exists")

	// ErrInvalidState indicates an operation that is not legal from the record's
	// current lifecycle state (e.g. approving a non-pending document, purging a
	// live one). Callers must not blindly retry.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidParent indicates a folder hierarchy violation, including
	// attempts to reparent a folder under its own descendant.
	ErrInvalidParent = errors.New("invalid parent folder")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError carries the id of the already-existing resource so the
// handler layer can return it alongside the 409.
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
