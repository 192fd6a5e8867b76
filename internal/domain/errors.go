package domain

import "errors"

var (
	// Validation errors
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidSongID    = errors.New("invalid song id")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidPrivacy   = errors.New("invalid privacy setting")
	ErrInvalidPermLevel = errors.New("invalid permission level")

	// Playlist validation errors
	ErrInvalidPlaylistName        = errors.New("invalid playlist name")
	ErrPlaylistNameTooLong        = errors.New("playlist name too long")
	ErrPlaylistDescriptionTooLong = errors.New("playlist description too long")

	// Lookup errors
	ErrSongNotFound         = errors.New("song not found")
	ErrPlaylistNotFound     = errors.New("playlist not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrRatingNotFound       = errors.New("rating not found")
	ErrCollaboratorNotFound = errors.New("collaborator not found")

	// Membership errors
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
	ErrSongNotInPlaylist     = errors.New("song not in playlist")
	ErrInvalidPosition       = errors.New("invalid position")
	ErrSongNotActive         = errors.New("song is not active")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")

	// Invalid operations (self-follow, owner as collaborator, ...)
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidState signals aggregate corruption, e.g. a rating bucket
	// underflow. It should never occur in correct operation.
	ErrInvalidState = errors.New("invalid aggregate state")
)
