package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/service"
	apierrors "github.com/kartik0209/music-backend/pkg/errors"
	"github.com/kartik0209/music-backend/pkg/httputil"
)

// RatingHandler serves the rating endpoints.
type RatingHandler struct {
	service *service.RatingService
}

// NewRatingHandler creates a rating handler.
func NewRatingHandler(service *service.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type ratingSummaryView struct {
	Average      float64             `json:"average"`
	Count        int                 `json:"count"`
	Distribution domain.Distribution `json:"distribution"`
}

func summaryView(s *domain.RatingSummary) ratingSummaryView {
	return ratingSummaryView{
		Average:      s.Average,
		Count:        s.Count,
		Distribution: s.Distribution,
	}
}

// RateSong handles POST /ratings/:songId.
func (h *RatingHandler) RateSong(c *gin.Context) {
	userID := c.GetString("user_id")
	songID := c.Param("songId")

	var req struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ErrorResponse(c, apierrors.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	summary, err := h.service.RateSong(c.Request.Context(), userID, songID, req.Rating)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, summaryView(summary))
}

// RemoveRating handles DELETE /ratings/:songId.
func (h *RatingHandler) RemoveRating(c *gin.Context) {
	userID := c.GetString("user_id")
	songID := c.Param("songId")

	summary, err := h.service.RemoveRating(c.Request.Context(), userID, songID)
	if err != nil {
		handleError(c, err)
		return
	}

	httputil.SuccessResponse(c, summaryView(summary))
}
