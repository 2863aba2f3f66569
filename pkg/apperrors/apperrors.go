// Package apperrors maps the transport-agnostic domain.Error taxonomy
// onto HTTP status codes, and gives the HTTP layer a uniform wrapper to
// carry a code/status/message for any other error it encounters.
package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/varsity-sched/engine/internal/domain"
)

// Error is an HTTP-aware error: a machine-readable code, a status, and a
// human-readable message, optionally wrapping a cause.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds an Error with no wrapped cause.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches an HTTP code/status to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// statusByKind is the §7 error-class -> HTTP status mapping.
var statusByKind = map[domain.Kind]int{
	domain.EmptyDomain:       http.StatusUnprocessableEntity,
	domain.OrphanTeachable:   http.StatusUnprocessableEntity,
	domain.UnteachableCourse: http.StatusUnprocessableEntity,
	domain.UnhousableCourse:  http.StatusUnprocessableEntity,
	domain.PrereqCycle:       http.StatusUnprocessableEntity,
	domain.OutOfRange:        http.StatusBadRequest,
	domain.InfeasibleHard:    http.StatusConflict,
	domain.SolverTimeout:     http.StatusGatewayTimeout,
	domain.BestEffort:        http.StatusOK,
	domain.Internal:          http.StatusInternalServerError,
}

// ErrValidation is returned when HTTP-layer DTO validation fails before
// the request ever reaches the domain.
var ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")

// ErrInternal is the fallback for any error not recognized as a
// domain.Error.
var ErrInternal = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

// FromError normalizes any error into an *Error, mapping a domain.Error's
// Kind to an HTTP status and falling back to ErrInternal otherwise.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var domainErr *domain.Error
	if stderrors.As(err, &domainErr) {
		status, ok := statusByKind[domainErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		return Wrap(err, string(domainErr.Kind), status, domainErr.Message)
	}

	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}
