package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrOfferNotFound is returned when an offer is not found.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidStatus is returned when a review targets a status value the
	// operation does not permit.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidTransition is reserved for a stricter workflow that also
	// validates the current status before a review. The engine does not raise
	// it today; re-reviewing an already reviewed application is allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrOfferNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "OFFER_NOT_FOUND")
	case errors.Is(err, ErrApplicationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPLICATION_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
