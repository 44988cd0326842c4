package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes by the
// serving edge. Core components only return plain errors; the handler layer
// matches against this interface.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a single record was not found. List operations
	// never produce it: an empty result is an empty slice, not an error.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates a rejected precondition or invalid input.
	// It is raised before any network round-trip is made.
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates the operation requires an active session.
	UnauthorizedError struct {
		Message string
	}

	// FetchError indicates a failed data load. The cache exposes it as a
	// persistent error state, distinct from an empty result.
	FetchError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *FetchError) Error() string        { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *FetchError) StatusCode() int        { return http.StatusBadGateway }

// Sentinel errors for matching with errors.Is().
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
