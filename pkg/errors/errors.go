// Package errors provides standardized error definitions for the music backend.
package errors

import (
	"fmt"
	"net/http"
)

// Error represents a structured application error.
type Error struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	HTTPStatus int         `json:"-"`
	Details    interface{} `json:"details,omitempty"`
	Err        error       `json:"-"` // Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error with details attached.
func (e *Error) WithDetails(details interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy of the error wrapping another error.
func (e *Error) WithError(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New creates a new Error.
func New(code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an existing error with error code and message.
func Wrap(err error, code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Common error codes
const (
	// General errors
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeUnauthorized   = "UNAUTHORIZED"

	// Authentication errors
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"

	// Catalog errors
	ErrCodeSongNotFound     = "SONG_NOT_FOUND"
	ErrCodePlaylistNotFound = "PLAYLIST_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeRatingNotFound   = "RATING_NOT_FOUND"

	// Playlist mutation errors
	ErrCodeDuplicateMember  = "DUPLICATE_MEMBER"
	ErrCodeInvalidPosition  = "INVALID_POSITION"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeInvalidState     = "INVALID_STATE"

	// Infrastructure errors
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeCacheError    = "CACHE_ERROR"
)

// Predefined errors
var (
	ErrInternal       = New(ErrCodeInternal, "Internal server error", http.StatusInternalServerError)
	ErrInvalidRequest = New(ErrCodeInvalidRequest, "Invalid request", http.StatusBadRequest)
	ErrNotFound       = New(ErrCodeNotFound, "Resource not found", http.StatusNotFound)
	ErrConflict       = New(ErrCodeConflict, "Resource conflict", http.StatusConflict)
	ErrForbidden      = New(ErrCodeForbidden, "Access forbidden", http.StatusForbidden)
	ErrUnauthorized   = New(ErrCodeUnauthorized, "Unauthorized", http.StatusUnauthorized)

	ErrTokenExpired = New(ErrCodeTokenExpired, "Token has expired", http.StatusUnauthorized)
	ErrTokenInvalid = New(ErrCodeTokenInvalid, "Invalid token", http.StatusUnauthorized)

	ErrSongNotFound     = New(ErrCodeSongNotFound, "Song not found", http.StatusNotFound)
	ErrPlaylistNotFound = New(ErrCodePlaylistNotFound, "Playlist not found", http.StatusNotFound)
	ErrUserNotFound     = New(ErrCodeUserNotFound, "User not found", http.StatusNotFound)
	ErrRatingNotFound   = New(ErrCodeRatingNotFound, "Rating not found", http.StatusNotFound)

	ErrDuplicateMember  = New(ErrCodeDuplicateMember, "Song is already in the playlist", http.StatusBadRequest)
	ErrInvalidPosition  = New(ErrCodeInvalidPosition, "Position is out of range", http.StatusBadRequest)
	ErrPermissionDenied = New(ErrCodePermissionDenied, "Permission denied", http.StatusForbidden)
	ErrInvalidOperation = New(ErrCodeInvalidOperation, "Operation not allowed", http.StatusBadRequest)
	ErrInvalidState     = New(ErrCodeInvalidState, "Entity is in an inconsistent state", http.StatusConflict)

	ErrDatabase = New(ErrCodeDatabaseError, "Database error", http.StatusInternalServerError)
	ErrCache    = New(ErrCodeCacheError, "Cache error", http.StatusInternalServerError)
)
