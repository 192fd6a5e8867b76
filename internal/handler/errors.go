package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kartik0209/music-backend/internal/domain"
	apierrors "github.com/kartik0209/music-backend/pkg/errors"
	"github.com/kartik0209/music-backend/pkg/httputil"
)

// handleError maps domain errors onto API errors. Anything unmapped is
// masked as an internal error by httputil.ErrorResponse.
func handleError(c *gin.Context, err error) {
	switch {
	// 404 Not Found
	case errors.Is(err, domain.ErrSongNotFound):
		httputil.ErrorResponse(c, apierrors.ErrSongNotFound)
	case errors.Is(err, domain.ErrPlaylistNotFound):
		httputil.ErrorResponse(c, apierrors.ErrPlaylistNotFound)
	case errors.Is(err, domain.ErrUserNotFound):
		httputil.ErrorResponse(c, apierrors.ErrUserNotFound)
	case errors.Is(err, domain.ErrRatingNotFound):
		httputil.ErrorResponse(c, apierrors.ErrRatingNotFound)
	case errors.Is(err, domain.ErrSongNotInPlaylist),
		errors.Is(err, domain.ErrCollaboratorNotFound):
		httputil.ErrorResponse(c, apierrors.ErrNotFound.WithError(err))

	// 400 Bad Request
	case errors.Is(err, domain.ErrSongAlreadyInPlaylist):
		httputil.ErrorResponse(c, apierrors.ErrDuplicateMember)
	case errors.Is(err, domain.ErrInvalidPosition):
		httputil.ErrorResponse(c, apierrors.ErrInvalidPosition)
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrSongNotActive):
		httputil.ErrorResponse(c, apierrors.ErrInvalidOperation.WithDetails(err.Error()))
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidSongID),
		errors.Is(err, domain.ErrInvalidPrivacy),
		errors.Is(err, domain.ErrInvalidPermLevel),
		errors.Is(err, domain.ErrInvalidPlaylistName),
		errors.Is(err, domain.ErrPlaylistNameTooLong),
		errors.Is(err, domain.ErrPlaylistDescriptionTooLong):
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))

	// 403 Forbidden
	case errors.Is(err, domain.ErrPermissionDenied):
		httputil.ErrorResponse(c, apierrors.ErrPermissionDenied)

	// 409 Conflict
	case errors.Is(err, domain.ErrInvalidState):
		httputil.ErrorResponse(c, apierrors.ErrInvalidState)

	default:
		httputil.ErrorResponse(c, err)
	}
}
