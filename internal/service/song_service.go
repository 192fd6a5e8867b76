package service

import (
	"context"
	"errors"
	"time"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/repository"
	"github.com/kartik0209/music-backend/pkg/logger"
)

// SongService serves catalog reads and the like toggle.
type SongService struct {
	songs repository.SongRepository
	cache SongCache
	log   logger.Logger
}

// NewSongService creates a song service. cache may be nil.
func NewSongService(songs repository.SongRepository, cache SongCache, log logger.Logger) *SongService {
	return &SongService{songs: songs, cache: cache, log: log}
}

// GetSong returns an active song.
func (s *SongService) GetSong(ctx context.Context, songID string) (*domain.Song, error) {
	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song == nil || !song.IsActive() {
		return nil, domain.ErrSongNotFound
	}
	return song, nil
}

// ToggleLike flips the caller's like on a song and reports whether the
// like now exists.
func (s *SongService) ToggleLike(ctx context.Context, songID, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrInvalidUserID
	}

	for attempt := 0; ; attempt++ {
		song, err := s.songs.GetByID(ctx, songID)
		if err != nil {
			return false, err
		}
		if song == nil || !song.IsActive() {
			return false, domain.ErrSongNotFound
		}

		liked := song.ToggleLike(userID, time.Now())

		err = s.songs.Update(ctx, song)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return false, err
		}

		if s.cache != nil {
			s.cache.Invalidate(ctx, songID)
		}
		return liked, nil
	}
}
