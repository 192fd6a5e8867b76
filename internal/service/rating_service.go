// Package service orchestrates domain operations against the store:
// read current state, apply the domain mutation, write back. Writes are
// version-checked; on conflict the whole cycle is retried so concurrent
// mutations of the same document never lose updates.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/repository"
	"github.com/kartik0209/music-backend/pkg/logger"
)

// maxConflictRetries bounds optimistic-concurrency retries per request.
const maxConflictRetries = 3

// SongCache invalidates cached song documents after writes.
type SongCache interface {
	Invalidate(ctx context.Context, songID string)
}

// RatingService keeps song rating aggregates consistent with per-user
// ratings. The user document is written first: its version check
// serializes one user's operations on a song, so a concurrent duplicate
// submit surfaces as a user-doc conflict and the retry observes the
// winner's entry instead of contributing a second one. The song write
// then commits the aggregate; if it fails the user entry is reverted
// best-effort, and a revert failure is logged (the next rating operation
// for the pair overwrites the entry either way).
type RatingService struct {
	songs repository.SongRepository
	users repository.UserRepository
	cache SongCache
	log   logger.Logger
}

// NewRatingService creates a rating service. cache may be nil.
func NewRatingService(songs repository.SongRepository, users repository.UserRepository, cache SongCache, log logger.Logger) *RatingService {
	return &RatingService{songs: songs, users: users, cache: cache, log: log}
}

// RateSong records or replaces the caller's rating of a song and returns
// the updated aggregate. A repeat rating by the same user moves the
// distribution bucket and leaves the count unchanged.
func (s *RatingService) RateSong(ctx context.Context, userID, songID string, stars int) (*domain.RatingSummary, error) {
	if err := domain.ValidateStars(stars); err != nil {
		return nil, err
	}

	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song == nil || !song.IsActive() {
		return nil, domain.ErrSongNotFound
	}

	prev, existed, err := s.claimUserRating(ctx, userID, songID, stars)
	if err != nil {
		return nil, err
	}
	if existed && prev == stars {
		return &song.Ratings, nil // nothing to change
	}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			song, err = s.songs.GetByID(ctx, songID)
			if err != nil {
				s.revertUserRating(ctx, userID, songID, prev, existed)
				return nil, err
			}
			if song == nil || !song.IsActive() {
				s.revertUserRating(ctx, userID, songID, prev, existed)
				return nil, domain.ErrSongNotFound
			}
		}

		if existed {
			err = song.Ratings.Update(prev, stars)
		} else {
			err = song.Ratings.Add(stars)
		}
		if errors.Is(err, domain.ErrInvalidState) && attempt < maxConflictRetries {
			// A concurrent writer's aggregate change has not landed yet.
			continue
		}
		if err != nil {
			s.revertUserRating(ctx, userID, songID, prev, existed)
			return nil, err
		}

		err = s.songs.Update(ctx, song)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			s.revertUserRating(ctx, userID, songID, prev, existed)
			return nil, err
		}

		s.invalidate(ctx, songID)
		return &song.Ratings, nil
	}
}

// RemoveRating deletes the caller's rating and returns the updated
// aggregate.
func (s *RatingService) RemoveRating(ctx context.Context, userID, songID string) (*domain.RatingSummary, error) {
	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, domain.ErrSongNotFound
	}

	stars, err := s.releaseUserRating(ctx, userID, songID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			song, err = s.songs.GetByID(ctx, songID)
			if err != nil {
				s.revertUserRating(ctx, userID, songID, stars, true)
				return nil, err
			}
			if song == nil {
				s.revertUserRating(ctx, userID, songID, stars, true)
				return nil, domain.ErrSongNotFound
			}
		}

		err = song.Ratings.Remove(stars)
		if errors.Is(err, domain.ErrInvalidState) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			s.revertUserRating(ctx, userID, songID, stars, true)
			return nil, err
		}

		err = s.songs.Update(ctx, song)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			s.revertUserRating(ctx, userID, songID, stars, true)
			return nil, err
		}

		s.invalidate(ctx, songID)
		return &song.Ratings, nil
	}
}

// claimUserRating writes the caller's rating entry before the song
// aggregate is touched. The version-checked write is what serializes a
// user's concurrent submits for the same song: the loser retries, sees
// the winner's entry, and reports it as the previous rating.
func (s *RatingService) claimUserRating(ctx context.Context, userID, songID string, stars int) (prev int, existed bool, err error) {
	for attempt := 0; ; attempt++ {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return 0, false, err
		}
		if user == nil {
			return 0, false, domain.ErrUserNotFound
		}

		prev, existed = user.RatingFor(songID)
		if existed && prev == stars {
			return prev, true, nil // already recorded
		}

		user.SetRating(songID, stars, time.Now())

		err = s.users.Update(ctx, user)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		return prev, existed, nil
	}
}

// releaseUserRating removes the caller's rating entry and returns the
// star value it held.
func (s *RatingService) releaseUserRating(ctx context.Context, userID, songID string) (int, error) {
	for attempt := 0; ; attempt++ {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return 0, err
		}
		if user == nil {
			return 0, domain.ErrUserNotFound
		}

		stars, existed := user.RemoveRating(songID, time.Now())
		if !existed {
			return 0, domain.ErrRatingNotFound
		}

		err = s.users.Update(ctx, user)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return 0, err
		}
		return stars, nil
	}
}

// revertUserRating restores the user entry after a failed song commit.
// Best effort: a failure here is logged, and the entry converges when
// the user rates the song again.
func (s *RatingService) revertUserRating(ctx context.Context, userID, songID string, prev int, existed bool) {
	for attempt := 0; ; attempt++ {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil || user == nil {
			s.log.Error("user rating revert read failed",
				logger.String("user_id", userID),
				logger.String("song_id", songID),
				logger.Error(err))
			return
		}

		if existed {
			user.SetRating(songID, prev, time.Now())
		} else if _, had := user.RemoveRating(songID, time.Now()); !had {
			return
		}

		err = s.users.Update(ctx, user)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			s.log.Error("user rating revert write failed",
				logger.String("user_id", userID),
				logger.String("song_id", songID),
				logger.Error(err))
		}
		return
	}
}

func (s *RatingService) invalidate(ctx context.Context, songID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, songID)
	}
}
