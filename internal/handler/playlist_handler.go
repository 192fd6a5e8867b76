package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kartik0209/music-backend/internal/service"
	apierrors "github.com/kartik0209/music-backend/pkg/errors"
	"github.com/kartik0209/music-backend/pkg/httputil"
)

// PlaylistHandler serves the playlist endpoints.
type PlaylistHandler struct {
	service *service.PlaylistService
}

// NewPlaylistHandler creates a playlist handler.
func NewPlaylistHandler(service *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// CreatePlaylist handles POST /playlists.
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Privacy     string `json:"privacy"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	playlist, err := h.service.CreatePlaylist(c.Request.Context(), userID, service.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		Privacy:     req.Privacy,
		Category:    req.Category,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// GetPlaylist handles GET /playlists/:id. Works for anonymous callers on
// public playlists.
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	playlist, err := h.service.GetPlaylist(c.Request.Context(), playlistID, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// ListPlaylists handles GET /playlists, returning the caller's playlists.
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	playlists, total, err := h.service.ListUserPlaylists(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.PaginatedResponse(c, playlists, page, pageSize, total)
}

// UpdatePlaylist handles PUT /playlists/:id.
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Privacy     string `json:"privacy"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	playlist, err := h.service.UpdatePlaylist(c.Request.Context(), playlistID, userID, service.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		Privacy:     req.Privacy,
		Category:    req.Category,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// DeletePlaylist handles DELETE /playlists/:id.
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	if err := h.service.DeletePlaylist(c.Request.Context(), playlistID, userID); err != nil {
		handleError(c, err)
		return
	}

	httputil.MessageResponse(c, "playlist deleted", nil)
}

// AddSong handles POST /playlists/:id/songs.
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	var req struct {
		SongID string `json:"song_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	playlist, err := h.service.AddSong(c.Request.Context(), playlistID, userID, req.SongID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// RemoveSong handles DELETE /playlists/:id/songs/:songId.
func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")
	songID := c.Param("songId")

	playlist, err := h.service.RemoveSong(c.Request.Context(), playlistID, userID, songID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// ReorderSong handles PUT /playlists/:id/songs/:songId/position.
func (h *PlaylistHandler) ReorderSong(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")
	songID := c.Param("songId")

	// No required tag: position 0 must bind and fall through to the
	// domain's range check, not fail as a malformed request.
	var req struct {
		Position int `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	playlist, err := h.service.ReorderSong(c.Request.Context(), playlistID, userID, songID, req.Position)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, playlist)
}

// ToggleFollow handles POST /playlists/:id/follow.
func (h *PlaylistHandler) ToggleFollow(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	followed, err := h.service.ToggleFollow(c.Request.Context(), playlistID, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, gin.H{"following": followed})
}

// SetCollaborator handles POST /playlists/:id/collaborators.
func (h *PlaylistHandler) SetCollaborator(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")

	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Level  string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	if err := h.service.SetCollaborator(c.Request.Context(), playlistID, userID, req.UserID, req.Level); err != nil {
		handleError(c, err)
		return
	}

	httputil.MessageResponse(c, "collaborator saved", nil)
}

// RemoveCollaborator handles DELETE /playlists/:id/collaborators/:userId.
func (h *PlaylistHandler) RemoveCollaborator(c *gin.Context) {
	userID := c.GetString("user_id")
	playlistID := c.Param("id")
	target := c.Param("userId")

	if err := h.service.RemoveCollaborator(c.Request.Context(), playlistID, userID, target); err != nil {
		handleError(c, err)
		return
	}

	httputil.MessageResponse(c, "collaborator removed", nil)
}
