// internal/pkg/apiclient/errors.go
package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	xerrors "msm-console/internal/pkg/errors"
)

// Kind classifies a failed upstream call.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindApplication  Kind = "application"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
)

// Error is the normalized rejection of every call made through Client.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	// Body is the raw upstream body, kept for callers that need more than
	// the message.
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error (%d)", e.Kind, e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError rejects a request before it leaves the console.
func NewValidationError(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// MessageOf returns the server-provided message of err when there is one,
// otherwise fallback.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindUnauthorized
}

// HTTPStatus maps err to the status code the console answers with.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			return http.StatusNotFound
		case errors.Is(err, xerrors.ErrConflict):
			return http.StatusConflict
		case errors.Is(err, xerrors.ErrInvalidInput):
			return http.StatusBadRequest
		case errors.Is(err, xerrors.ErrNoToken), errors.Is(err, xerrors.ErrSessionExpired):
			return http.StatusUnauthorized
		}
		return http.StatusInternalServerError
	}

	switch ae.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindTransport:
		return http.StatusBadGateway
	}
	if ae.StatusCode >= 400 && ae.StatusCode < 600 {
		return ae.StatusCode
	}
	// isError inside a 2xx envelope
	return http.StatusUnprocessableEntity
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return xerrors.ErrSessionExpired
	case http.StatusNotFound:
		return xerrors.ErrNotFound
	case http.StatusConflict:
		return xerrors.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return xerrors.ErrInvalidInput
	}
	return nil
}
