package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid session resolves to a user.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrMovieNotFound is returned when a movie is absent or not owned by the caller.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrMovieExists is returned on a duplicate (title, release year).
	ErrMovieExists = errors.New("movie already exists")
	// ErrInvalidOwner is returned when the owning user of a new record does not exist.
	ErrInvalidOwner = errors.New("user not found")
	// ErrWatchlistItemExists is returned when the movie is already on the caller's watchlist.
	ErrWatchlistItemExists = errors.New("movie already added to watchlist")
	// ErrWatchlistItemNotFound is returned when no watchlist item has the given id.
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")
	// ErrWatchlistForbidden is returned when the item belongs to another user.
	ErrWatchlistForbidden = errors.New("you are not authorized to modify this item")
	// ErrInvalidStatus is returned for a status outside the watchlist vocabulary.
	ErrInvalidStatus = errors.New("status must be one of: PLANNED, WATCHING, COMPLETED, DROPPED")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Debug string `json:"debug,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Internal   error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// NewValidationError creates a 400 error carrying the joined field messages.
func NewValidationError(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

type mapping struct {
	target error
	status int
	code   string
}

var mappings = []mapping{
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrInvalidToken, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrUserAlreadyExists, http.StatusBadRequest, "USER_ALREADY_EXISTS"},
	{ErrMovieNotFound, http.StatusNotFound, "MOVIE_NOT_FOUND"},
	{ErrMovieExists, http.StatusConflict, "MOVIE_ALREADY_EXISTS"},
	{ErrInvalidOwner, http.StatusBadRequest, "INVALID_OWNER"},
	{ErrWatchlistItemExists, http.StatusConflict, "WATCHLIST_ITEM_EXISTS"},
	{ErrWatchlistItemNotFound, http.StatusNotFound, "WATCHLIST_ITEM_NOT_FOUND"},
	{ErrWatchlistForbidden, http.StatusForbidden, "WATCHLIST_FORBIDDEN"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// 500 that keeps the cause in Internal for logging.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return NewHTTPError(m.status, m.target.Error(), m.code)
		}
	}
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		Code:       "INTERNAL_ERROR",
		Internal:   err,
	}
}
