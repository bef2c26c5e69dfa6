package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrCategoryExists is returned when creating a category with a duplicate name.
	ErrCategoryExists = errors.New("category already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a bearer token is missing, malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNotOwner is returned when the caller is neither the item owner nor an admin.
	ErrNotOwner = errors.New("not the item owner")
	// ErrInvalidPrice is returned when an item price is not positive.
	ErrInvalidPrice = errors.New("price must be greater than zero")
	// ErrInvalidLimit is returned when the page limit is outside [1,100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
	// ErrInvalidOffset is returned when the page offset is negative.
	ErrInvalidOffset = errors.New("offset must not be negative")
	// ErrInvalidSortField is returned when the sort field is not allow-listed.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidSortOrder is returned when the sort order is not asc or desc.
	ErrInvalidSortOrder = errors.New("invalid sort order")
	// ErrUnsupportedFileType is returned when an uploaded image has a disallowed extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors map to
// a generic 500 so internal detail never leaks to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidPrice:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case ErrInvalidLimit:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LIMIT")
	case ErrInvalidOffset:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OFFSET")
	case ErrInvalidSortField:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SORT_FIELD")
	case ErrInvalidSortOrder:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SORT_ORDER")
	case ErrUnsupportedFileType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FILE_TYPE")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case ErrNotOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case ErrCategoryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case ErrCategoryExists:
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_EXISTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
