package service

import (
	"context"
	"errors"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/repository"
	"github.com/kartik0209/music-backend/pkg/logger"
)

// MaintenanceService re-derives playlist metadata in the background. A
// membership write and its metadata land in one document write, but a
// song's duration, genres or rating can change after it joined a
// playlist; the resync walk picks those drifts up so stale metadata
// heals without manual repair.
type MaintenanceService struct {
	playlists repository.PlaylistRepository
	songs     repository.SongReader
	log       logger.Logger
}

// NewMaintenanceService creates a maintenance service.
func NewMaintenanceService(playlists repository.PlaylistRepository, songs repository.SongReader, log logger.Logger) *MaintenanceService {
	return &MaintenanceService{playlists: playlists, songs: songs, log: log}
}

// ResyncAllMetadata re-derives metadata for every active playlist.
// Individual failures are logged and skipped; the next run retries them.
func (m *MaintenanceService) ResyncAllMetadata(ctx context.Context) error {
	ids, err := m.playlists.ListActiveIDs(ctx)
	if err != nil {
		return err
	}

	resynced := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		changed, err := m.resyncOne(ctx, id)
		if err != nil {
			m.log.Warn("metadata resync failed for playlist",
				logger.String("playlist_id", id),
				logger.Error(err))
			continue
		}
		if changed {
			resynced++
		}
	}

	m.log.Info("metadata resync finished",
		logger.Int("playlists", len(ids)),
		logger.Int("updated", resynced))
	return nil
}

func (m *MaintenanceService) resyncOne(ctx context.Context, playlistID string) (bool, error) {
	playlist, err := m.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return false, err
	}
	if playlist == nil {
		return false, nil
	}

	ids := make([]string, len(playlist.Songs))
	for i, e := range playlist.Songs {
		ids[i] = e.SongID
	}
	found, err := m.songs.GetMany(ctx, ids)
	if err != nil {
		return false, err
	}
	resolved := make([]*domain.Song, len(ids))
	for i, id := range ids {
		resolved[i] = found[id]
	}

	derived := domain.DeriveMetadata(resolved)
	if metadataEqual(playlist.Metadata, derived) {
		return false, nil
	}

	playlist.Metadata = derived
	err = m.playlists.Update(ctx, playlist)
	if errors.Is(err, repository.ErrVersionConflict) {
		// A concurrent mutation re-derived metadata itself; nothing to do.
		return false, nil
	}
	return err == nil, err
}

func metadataEqual(a, b domain.PlaylistMetadata) bool {
	if a.TotalDuration != b.TotalDuration || a.AverageRating != b.AverageRating {
		return false
	}
	return stringSlicesEqual(a.Genres, b.Genres) && stringSlicesEqual(a.Languages, b.Languages)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
