package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/repository"
	"github.com/kartik0209/music-backend/pkg/logger"
)

// PlaylistService owns every playlist mutation. All mutating operations
// run the same sequence: authorize, apply the domain mutation, re-derive
// metadata from the resulting membership, persist in one version-checked
// write. Metadata therefore can never be observed out of sync with the
// membership that produced it.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	songs     repository.SongReader
	log       logger.Logger
}

// NewPlaylistService creates a playlist service.
func NewPlaylistService(playlists repository.PlaylistRepository, songs repository.SongReader, log logger.Logger) *PlaylistService {
	return &PlaylistService{playlists: playlists, songs: songs, log: log}
}

// CreatePlaylistInput carries the user-settable fields at creation.
type CreatePlaylistInput struct {
	Name        string
	Description string
	Privacy     string
	Category    string
	Cover       *domain.MediaReference
}

// CreatePlaylist creates an empty playlist owned by the caller.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerID string, in CreatePlaylistInput) (*domain.Playlist, error) {
	privacy := domain.PrivacyPublic
	if in.Privacy != "" {
		var err error
		privacy, err = domain.ParsePrivacy(in.Privacy)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
		Privacy:     privacy,
		Category:    in.Category,
		Status:      domain.PlaylistStatusActive,
		Cover:       in.Cover,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := playlist.Validate(); err != nil {
		return nil, err
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// GetPlaylist returns a playlist the caller may view. Membership entries
// whose songs are gone or inactive are filtered from the returned view;
// the stored membership is left untouched.
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID, actingUserID string) (*domain.Playlist, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := playlist.Authorize(actingUserID, domain.PermissionView); err != nil {
		return nil, err
	}

	resolved, err := s.resolveMembers(ctx, playlist)
	if err != nil {
		return nil, err
	}

	live := make([]domain.MembershipEntry, 0, len(playlist.Songs))
	for i, entry := range playlist.Songs {
		if resolved[i] != nil && resolved[i].IsActive() {
			live = append(live, entry)
		}
	}
	playlist.Songs = live
	return playlist, nil
}

// ListUserPlaylists returns the caller's playlists, paginated.
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID string, page, pageSize int) ([]*domain.Playlist, int64, error) {
	offset := (page - 1) * pageSize
	playlists, err := s.playlists.ListByOwner(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.playlists.CountByOwner(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// UpdatePlaylistInput carries optional settings updates; zero values
// leave the field unchanged.
type UpdatePlaylistInput struct {
	Name        string
	Description string
	Privacy     string
	Category    string
}

// UpdatePlaylist changes playlist settings. Requires admin level.
func (s *PlaylistService) UpdatePlaylist(ctx context.Context, playlistID, actingUserID string, in UpdatePlaylistInput) (*domain.Playlist, error) {
	var result *domain.Playlist
	err := s.mutate(ctx, playlistID, actingUserID, domain.PermissionAdmin, false, func(p *domain.Playlist) error {
		if in.Name != "" {
			if err := domain.ValidatePlaylistName(in.Name); err != nil {
				return err
			}
			p.Name = in.Name
		}
		if in.Description != "" {
			if len(in.Description) > 500 {
				return domain.ErrPlaylistDescriptionTooLong
			}
			p.Description = in.Description
		}
		if in.Privacy != "" {
			privacy, err := domain.ParsePrivacy(in.Privacy)
			if err != nil {
				return err
			}
			p.Privacy = privacy
		}
		if in.Category != "" {
			p.Category = in.Category
		}
		result = p
		return nil
	})
	return result, err
}

// DeletePlaylist soft-deletes a playlist. Owner only.
func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID, actingUserID string) error {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != actingUserID {
		return domain.ErrPermissionDenied
	}
	return s.playlists.SoftDelete(ctx, playlistID)
}

// AddSong appends a song to the playlist. Requires edit level; the song
// must exist and be active.
func (s *PlaylistService) AddSong(ctx context.Context, playlistID, actingUserID, songID string) (*domain.Playlist, error) {
	song, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, domain.ErrSongNotFound
	}
	if !song.IsActive() {
		return nil, domain.ErrSongNotActive
	}

	var result *domain.Playlist
	err = s.mutate(ctx, playlistID, actingUserID, domain.PermissionEdit, true, func(p *domain.Playlist) error {
		if err := p.AddSong(songID, actingUserID, time.Now()); err != nil {
			return err
		}
		result = p
		return nil
	})
	return result, err
}

// RemoveSong removes a member song and renumbers positions.
func (s *PlaylistService) RemoveSong(ctx context.Context, playlistID, actingUserID, songID string) (*domain.Playlist, error) {
	var result *domain.Playlist
	err := s.mutate(ctx, playlistID, actingUserID, domain.PermissionEdit, true, func(p *domain.Playlist) error {
		if err := p.RemoveSong(songID, time.Now()); err != nil {
			return err
		}
		result = p
		return nil
	})
	return result, err
}

// ReorderSong moves a member song to a new 1-based position.
func (s *PlaylistService) ReorderSong(ctx context.Context, playlistID, actingUserID, songID string, position int) (*domain.Playlist, error) {
	var result *domain.Playlist
	err := s.mutate(ctx, playlistID, actingUserID, domain.PermissionEdit, true, func(p *domain.Playlist) error {
		if err := p.ReorderSong(songID, position, time.Now()); err != nil {
			return err
		}
		result = p
		return nil
	})
	return result, err
}

// ToggleFollow flips the caller's follow on the playlist and reports
// whether the follow now exists. Gated at view level.
func (s *PlaylistService) ToggleFollow(ctx context.Context, playlistID, actingUserID string) (bool, error) {
	var followed bool
	err := s.mutate(ctx, playlistID, actingUserID, domain.PermissionView, false, func(p *domain.Playlist) error {
		f, err := p.ToggleFollow(actingUserID, time.Now())
		if err != nil {
			return err
		}
		followed = f
		return nil
	})
	return followed, err
}

// SetCollaborator grants or updates a collaborator. Requires admin level.
func (s *PlaylistService) SetCollaborator(ctx context.Context, playlistID, actingUserID, userID string, level string) error {
	parsed, err := domain.ParsePermissionLevel(level)
	if err != nil {
		return err
	}
	return s.mutate(ctx, playlistID, actingUserID, domain.PermissionAdmin, false, func(p *domain.Playlist) error {
		return p.SetCollaborator(userID, parsed, time.Now())
	})
}

// RemoveCollaborator revokes a collaborator. Requires admin level.
func (s *PlaylistService) RemoveCollaborator(ctx context.Context, playlistID, actingUserID, userID string) error {
	return s.mutate(ctx, playlistID, actingUserID, domain.PermissionAdmin, false, func(p *domain.Playlist) error {
		return p.RemoveCollaborator(userID, time.Now())
	})
}

// mutate runs the authorize -> apply -> derive -> persist cycle with
// bounded retries on version conflicts. deriveMetadata is true for
// membership mutations, which must recompute metadata before the write.
func (s *PlaylistService) mutate(ctx context.Context, playlistID, actingUserID string, required domain.PermissionLevel, deriveMetadata bool, apply func(*domain.Playlist) error) error {
	for attempt := 0; ; attempt++ {
		playlist, err := s.getPlaylist(ctx, playlistID)
		if err != nil {
			return err
		}
		if err := playlist.Authorize(actingUserID, required); err != nil {
			return err
		}

		if err := apply(playlist); err != nil {
			return err
		}

		if deriveMetadata {
			resolved, err := s.resolveMembers(ctx, playlist)
			if err != nil {
				// Membership has not been written yet, so failing here
				// leaves the stored document fully consistent.
				return err
			}
			playlist.Metadata = domain.DeriveMetadata(resolved)
		}

		err = s.playlists.Update(ctx, playlist)
		if errors.Is(err, repository.ErrVersionConflict) && attempt < maxConflictRetries {
			s.log.Debug("playlist update conflict, retrying",
				logger.String("playlist_id", playlistID),
				logger.Int("attempt", attempt+1))
			continue
		}
		return err
	}
}

func (s *PlaylistService) getPlaylist(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, domain.ErrPlaylistNotFound
	}
	return playlist, nil
}

// resolveMembers resolves the playlist's membership to songs, preserving
// membership order. Unresolvable references yield nil entries.
func (s *PlaylistService) resolveMembers(ctx context.Context, p *domain.Playlist) ([]*domain.Song, error) {
	if len(p.Songs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(p.Songs))
	for i, e := range p.Songs {
		ids[i] = e.SongID
	}
	found, err := s.songs.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	resolved := make([]*domain.Song, len(ids))
	for i, id := range ids {
		resolved[i] = found[id]
	}
	return resolved, nil
}
