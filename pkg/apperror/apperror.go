package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to surface it
// without knowing which collaborator produced it.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindPrerequisiteMissing Kind = "prerequisite_missing"
	KindServerRejected      Kind = "server_rejected"
	KindUnreachable         Kind = "unreachable"
	KindConflict            Kind = "conflict"
	KindInternal            Kind = "internal"
)

// Error is the structured error shared by the workflow core and the
// collaborator services it calls.
type Error struct {
	Kind    Kind              `json:"kind"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Cause   error             `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on kind and code, so copies made by WithFields or WithCause
// still compare equal to the sentinel they were derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithFields returns a copy of e carrying field-scoped messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	cp := *e
	cp.Fields = fields
	return &cp
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NewValidation(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func NewNotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func NewForbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}

func NewPrerequisiteMissing(code, message string) *Error {
	return New(KindPrerequisiteMissing, code, message)
}

func NewServerRejected(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindServerRejected, Code: code, Message: message, Fields: fields}
}

func NewConflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func NewUnreachable(message string, cause error) *Error {
	return &Error{Kind: KindUnreachable, Code: "unreachable", Message: message, Cause: cause}
}

func NewInternal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: message, Cause: cause}
}

// KindOf reports the kind of err, or KindInternal when err carries no *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldsOf returns the field-scoped messages carried by err, if any.
func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
