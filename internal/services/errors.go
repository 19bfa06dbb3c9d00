package services

import (
	"errors"
	"fmt"
)

// ErrInternal is returned for any persistence failure that is neither a
// missing record nor a constraint violation. The underlying cause is logged
// server-side and never exposed to the caller.
var ErrInternal = errors.New("unexpected error, check server logs")

// NotFoundError indicates that no product matched the given term or ID.
type NotFoundError struct {
	Term string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with %s not found", e.Term)
}

// DuplicateError indicates that a create or update violated a uniqueness
// constraint (title or slug). Detail carries the conflicting value so the
// caller can report it.
type DuplicateError struct {
	Detail string
}

func (e *DuplicateError) Error() string {
	return e.Detail
}
