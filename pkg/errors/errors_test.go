package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := New("TEST_CODE", "something failed", http.StatusBadRequest)
	assert.Equal(t, "TEST_CODE: something failed", err.Error())

	wrapped := err.WithError(errors.New("root cause"))
	assert.Equal(t, "TEST_CODE: something failed: root cause", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, "TEST_CODE", "something failed", http.StatusBadRequest)

	assert.True(t, errors.Is(err, cause))
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	base := New("TEST_CODE", "base", http.StatusBadRequest)
	detailed := base.WithDetails("field x is invalid")

	require.NotSame(t, base, detailed)
	assert.Nil(t, base.Details)
	assert.Equal(t, "field x is invalid", detailed.Details)
}

func TestPredefinedStatuses(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrSongNotFound.HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrDuplicateMember.HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidPosition.HTTPStatus)
	assert.Equal(t, http.StatusForbidden, ErrPermissionDenied.HTTPStatus)
	assert.Equal(t, http.StatusConflict, ErrInvalidState.HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, ErrTokenExpired.HTTPStatus)
}
