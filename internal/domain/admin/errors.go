package admin

import (
	"errors"
	"net/http"

	"github.com/persona/persona-api/internal/pkg/logger"
	"github.com/persona/persona-api/internal/pkg/response"
)

// ErrResolutionFailed wraps storage failures while resolving a principal
var ErrResolutionFailed = errors.New("principal resolution failed")

// Kind classifies authorization and moderation failures
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInvalidAction
)

// Error is a typed failure carrying a client-safe message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same Kind
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons
var (
	ErrUnauthorized  = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden     = &Error{Kind: KindForbidden, Message: "Insufficient permissions"}
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrInvalidAction = &Error{Kind: KindInvalidAction, Message: "Invalid action"}
)

func Unauthorized() *Error { return &Error{Kind: KindUnauthorized, Message: "Unauthorized"} }

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InvalidAction(message string) *Error {
	return &Error{Kind: KindInvalidAction, Message: message}
}

// Internal wraps an unclassified failure; its message never reaches clients
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the Kind of err; unknown errors are internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// WriteError maps err onto the response envelope
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	switch e.Kind {
	case KindUnauthorized:
		response.Unauthorized(w, e.Message)
	case KindForbidden:
		response.Forbidden(w, e.Message)
	case KindNotFound:
		response.NotFound(w, e.Message)
	case KindInvalidAction:
		response.Error(w, http.StatusBadRequest, "INVALID_ACTION", e.Message)
	default:
		logger.FromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Admin request failed")
		response.InternalError(w)
	}
}
