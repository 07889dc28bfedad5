package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when an entity does not exist or is not
	// owned by the requester. The two cases are deliberately not
	// distinguished so other users' data is never confirmed to exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a payload fails validation.
	ErrValidation = errors.New("invalid payload")
	// ErrInvalidPrice is returned when a price is negative or malformed.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrEmptyName is returned when a required name field is blank.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrDuplicateName is returned when a rename collides with another
	// entity the requester already owns.
	ErrDuplicateName = errors.New("name already in use")
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
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PAYLOAD")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrEmptyName):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_NAME")
	case errors.Is(err, ErrDuplicateName):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_NAME")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
