package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kartik0209/music-backend/internal/service"
	"github.com/kartik0209/music-backend/pkg/httputil"
)

// SongHandler serves the song catalog endpoints.
type SongHandler struct {
	service *service.SongService
}

// NewSongHandler creates a song handler.
func NewSongHandler(service *service.SongService) *SongHandler {
	return &SongHandler{service: service}
}

// GetSong handles GET /songs/:id.
func (h *SongHandler) GetSong(c *gin.Context) {
	song, err := h.service.GetSong(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, song)
}

// ToggleLike handles POST /songs/:id/like.
func (h *SongHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	songID := c.Param("id")

	liked, err := h.service.ToggleLike(c.Request.Context(), songID, userID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, gin.H{"liked": liked})
}
