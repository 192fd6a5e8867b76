package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/service"
)

func songRouter(userID string, songs *MockSongRepository) *gin.Engine {
	svc := service.NewSongService(songs, nil, testLogger())
	h := NewSongHandler(svc)
	return testRouter(userID, func(api *gin.RouterGroup) {
		api.GET("/songs/:id", h.GetSong)
		api.POST("/songs/:id/like", h.ToggleLike)
	})
}

func TestGetSong_HTTP(t *testing.T) {
	songs := new(MockSongRepository)
	song := &domain.Song{ID: "s1", Title: "First Light", Status: domain.SongStatusActive}
	require.NoError(t, song.Ratings.Add(4))
	songs.On("GetByID", mock.Anything, "s1").Return(song, nil)

	router := songRouter("", songs)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/s1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)

	var data struct {
		Title   string `json:"title"`
		Ratings struct {
			Average float64 `json:"average"`
			Count   int     `json:"count"`
		} `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &data))
	assert.Equal(t, "First Light", data.Title)
	assert.Equal(t, 4.0, data.Ratings.Average)
	assert.Equal(t, 1, data.Ratings.Count)
}

func TestGetSong_HTTP_InactiveHidden(t *testing.T) {
	songs := new(MockSongRepository)
	songs.On("GetByID", mock.Anything, "s1").Return(&domain.Song{ID: "s1", Status: domain.SongStatusPending}, nil)

	router := songRouter("", songs)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/s1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLike_HTTP(t *testing.T) {
	songs := new(MockSongRepository)
	song := &domain.Song{ID: "s1", Status: domain.SongStatusActive}
	songs.On("GetByID", mock.Anything, "s1").Return(song, nil)
	songs.On("Update", mock.Anything, song).Return(nil)

	router := songRouter("u1", songs)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/songs/s1/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)

	var data struct {
		Liked bool `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &data))
	assert.True(t, data.Liked)
}
