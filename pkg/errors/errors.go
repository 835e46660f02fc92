package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors. User-facing messages are German, matching the
// portal frontend; localization happens here and nowhere else.
var (
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Authentifizierung erforderlich")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "Ungültige Anmeldedaten")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "Konto ist deaktiviert")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "Keine Berechtigung")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "Nicht gefunden")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "Ungültige Eingabe")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "Interner Serverfehler")

	// Booking conflicts surface as 400 with a specific description, the
	// contract the frontend relies on.
	ErrSlotBlocked    = New("SLOT_BLOCKED", http.StatusBadRequest, "Dieser Slot ist blockiert")
	ErrDoubleBooking  = New("DOUBLE_BOOKING", http.StatusBadRequest, "Schüler ist bereits gebucht")
	ErrAlreadyBlocked = New("ALREADY_BLOCKED", http.StatusBadRequest, "Slot ist bereits blockiert")
	ErrNotBlocked     = New("NOT_BLOCKED", http.StatusNotFound, "Slot ist nicht blockiert")

	// ErrCacheMiss is an internal marker, never returned to clients.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
