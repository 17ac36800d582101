package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// FieldErrors collects every failed field of one request so callers see all
// problems at once.
type FieldErrors []ValidationError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Add appends a field failure.
func (e *FieldErrors) Add(field, msg string) {
	*e = append(*e, ValidationError{Field: field, Msg: msg})
}

// Fields returns field -> message, the shape handlers put in "details".
func (e FieldErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, exists := out[fe.Field]; !exists {
			out[fe.Field] = fe.Msg
		}
	}
	return out
}

// OrNil returns nil when nothing was collected.
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var single ValidationError
	if errors.As(err, &single) {
		return true
	}
	var many FieldErrors
	return errors.As(err, &many)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// ValidationDetails extracts field messages from a validation error, if any.
func ValidationDetails(err error) map[string]string {
	var many FieldErrors
	if errors.As(err, &many) {
		return many.Fields()
	}
	var single ValidationError
	if errors.As(err, &single) && single.Field != "" {
		return map[string]string{single.Field: single.Msg}
	}
	return nil
}
