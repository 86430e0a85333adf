package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// FieldError reports one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single structured error type carried through services and
// middleware and rendered once at the boundary.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error     { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error   { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error      { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error       { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error       { return New(http.StatusConflict, message) }
func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

// Unprocessable wraps field-level validation failures as a 422.
func Unprocessable(fields []FieldError) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// FromBinding converts a gin binding error into a 422 with per-field
// messages, falling back to a plain 400 for malformed bodies.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return Unprocessable(fields)
	}
	return BadRequest("Malformed request body")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}

// Remap translates storage-layer errors into the nearest taxonomy entry so
// driver error shapes never leak to the client. Unrecognized errors pass
// through for the boundary to render as 500.
func Remap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return Conflict("Duplicate value for a unique field")
		case "23503":
			return BadRequest("Referenced entity does not exist")
		}
	}
	return err
}
