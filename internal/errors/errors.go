package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned when a route requires a session and none is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrDuplicateAccount is returned when an email or username is already in use.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrEmailTaken is the email flavour of ErrDuplicateAccount.
	ErrEmailTaken = &duplicateError{msg: "Email already registered"}
	// ErrUsernameTaken is the username flavour of ErrDuplicateAccount.
	ErrUsernameTaken = &duplicateError{msg: "Username already taken"}
	// ErrNotFound is returned when a product or order does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

type duplicateError struct {
	msg string
}

func (e *duplicateError) Error() string { return e.msg }

func (e *duplicateError) Unwrap() error { return ErrDuplicateAccount }

// ValidationError is a user-correctable input problem. Message is safe to show.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for a form field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// GenericMessage is shown for failures the user cannot correct.
const GenericMessage = "Something went wrong. Please try again later."

// MapErrorToHTTP maps domain errors to HTTP errors with user-facing messages.
func MapErrorToHTTP(err error) *HTTPError {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		return NewHTTPError(http.StatusBadRequest, validation.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Please login first!", "UNAUTHENTICATED")
	case errors.Is(err, ErrDuplicateAccount):
		return NewHTTPError(http.StatusConflict, duplicateMessage(err), "DUPLICATE_ACCOUNT")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found", "NOT_FOUND")
	case errors.Is(err, ErrEmptyCart):
		return NewHTTPError(http.StatusBadRequest, "Your cart is empty", "EMPTY_CART")
	default:
		return NewHTTPError(http.StatusInternalServerError, GenericMessage, "INTERNAL_ERROR")
	}
}

func duplicateMessage(err error) string {
	var dup *duplicateError
	if errors.As(err, &dup) {
		return dup.msg
	}
	return "Account already exists"
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
