// Package errors classifies dashboard failures so handlers map them to a
// status code and a message that is safe to show.
package errors

import (
	"context"
	stderrors "errors"
	"net/http"
)

// Kind classifies an application failure.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindUnavailable  Kind = "unavailable"
)

var statusByKind = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindValidation:   http.StatusUnprocessableEntity,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindUnavailable:  http.StatusServiceUnavailable,
}

// Error is a classified failure. Message is shown to users; Err is kept for
// logs and errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e Error) Unwrap() error { return e.Err }

// E returns an Error without a cause.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// Wrap returns an Error carrying cause.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Err: cause}
}

func as(err error) (Error, bool) {
	var appErr Error
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	if appErr, ok := as(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

// PublicMessage returns the classified message, or the status text for
// unclassified errors so causes never leak into pages.
func PublicMessage(err error) string {
	if appErr, ok := as(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return http.StatusText(HTTPStatus(err))
}

// HTTPStatus maps err to a response status. Unclassified context
// cancellation and deadlines map to 503, anything else to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if appErr, ok := as(err); ok {
		if status, found := statusByKind[appErr.Kind]; found {
			return status
		}
		return http.StatusInternalServerError
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
