// Package apperr carries the HTTP-facing error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authorized")
	ErrConflict     = errors.New("conflict")
)

// Error pairs a response status with the underlying cause. Fields, when set,
// maps request fields to the reason they were rejected.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation reports a client error (400) with a human-readable message.
func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "validation_failed", fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation))
}

// ValidationFields is Validation with a per-field breakdown.
func ValidationFields(msg string, fields map[string]string) *Error {
	e := Validation("%s", msg)
	e.Fields = fields
	return e
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound))
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthorized))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict))
}

// Message returns the client-facing text of err without the sentinel suffix.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Err != nil {
		if inner := errors.Unwrap(ae.Err); inner != nil {
			msg := ae.Err.Error()
			suffix := ": " + inner.Error()
			if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
				return msg[:len(msg)-len(suffix)]
			}
			return msg
		}
	}
	return err.Error()
}

// StatusOf maps err onto an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
