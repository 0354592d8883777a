package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Repository sentinels.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Error is a user-facing failure carrying an HTTP status and a machine-readable name.
// Two Errors match under errors.Is when their names are equal, so callers can compare
// against the sentinels below regardless of the message.
type Error struct {
	Name    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same Name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Name == e.Name
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	return &Error{Name: e.Name, Status: e.Status, Message: fmt.Sprintf(format, args...)}
}

// Error taxonomy. Handlers translate these into {error, message} bodies.
var (
	ErrEventNotFound          = &Error{Name: "EventNotFoundError", Status: http.StatusNotFound, Message: "event not found"}
	ErrRegistrationClosed     = &Error{Name: "RegistrationClosedError", Status: http.StatusForbidden, Message: "registration for this event is closed"}
	ErrSlotFull               = &Error{Name: "SlotFullError", Status: http.StatusConflict, Message: "no slots available for this event"}
	ErrInvalidGender          = &Error{Name: "InvalidGenderError", Status: http.StatusBadRequest, Message: "a male or female gender is required for this event"}
	ErrDuplicateRegistration  = &Error{Name: "DuplicateRegistrationError", Status: http.StatusConflict, Message: "already registered for this event"}
	ErrContingentLimit        = &Error{Name: "ContingentLimitError", Status: http.StatusTooManyRequests, Message: "official registration limit reached for this college"}
	ErrTeamSize               = &Error{Name: "TeamSizeError", Status: http.StatusBadRequest, Message: "invalid team size"}
	ErrValidation             = &Error{Name: "ValidationError", Status: http.StatusBadRequest, Message: "invalid request"}
	ErrInvalidContingentKey   = &Error{Name: "InvalidContingentKeyError", Status: http.StatusBadRequest, Message: "invalid contingent key"}
	ErrUserNotFound           = &Error{Name: "UserNotFoundError", Status: http.StatusNotFound, Message: "user not found"}
	ErrRegistrationNotFound   = &Error{Name: "RegistrationNotFoundError", Status: http.StatusNotFound, Message: "registration not found"}
	ErrUnauthorized           = &Error{Name: "UnauthorizedError", Status: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden              = &Error{Name: "ForbiddenError", Status: http.StatusForbidden, Message: "forbidden"}
	ErrPaymentAlreadyConsumed = &Error{Name: "PaymentReplayError", Status: http.StatusBadRequest, Message: "payment has already been used for a registration"}
)

// Validationf builds a ValidationError with the given message.
func Validationf(format string, args ...any) *Error {
	return ErrValidation.WithMessage(format, args...)
}
