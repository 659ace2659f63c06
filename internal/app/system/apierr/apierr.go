// internal/app/system/apierr/apierr.go
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an API failure. The kind decides the transport status at
// the boundary and nowhere else: handlers and stores raise kinds, only
// Logger.Write maps them to HTTP codes.
type Kind int

const (
	// Authorization covers invalid tokens, bad credentials and missing
	// role/standing. Reported as 403.
	Authorization Kind = iota
	// Validation covers malformed or missing fields and illegal enum
	// values. Reported as 400.
	Validation
	// Scope covers cross-realm references. Reported as 400.
	Scope
	// NotFound covers unknown referenced ids. Reported as 400 like the
	// other client errors; there are no per-entity GETs that would
	// warrant a 404.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Authorization:
		return "authorization"
	case Validation:
		return "validation"
	case Scope:
		return "scope"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is a classified API failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Status maps an error to its transport status code. Unclassified errors
// are server-side failures.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Kind == Authorization {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Logger writes classified errors at the HTTP boundary, logging each failure
// exactly once with the operation and offending detail.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// Write logs err and sends its JSON error body with the mapped status code.
func (l *Logger) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)

	kind := "internal"
	var e *Error
	if errors.As(err, &e) {
		kind = e.Kind.String()
	}

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		l.log.Error("api call failed", fields...)
	} else {
		l.log.Info("api call rejected", fields...)
	}

	msg := "internal error"
	if e != nil {
		msg = e.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, Kind: kind})
}
