package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kartik0209/music-backend/internal/domain"
	"github.com/kartik0209/music-backend/internal/repository"
)

func TestResyncAllMetadata_UpdatesDriftedPlaylists(t *testing.T) {
	playlists := new(MockPlaylistRepository)
	songs := new(MockSongRepository)

	// pl-stale has metadata derived before s1's duration changed.
	stale := testPlaylist("s1")
	stale.ID = "pl-stale"
	stale.Metadata = domain.PlaylistMetadata{TotalDuration: 90}

	s1 := &domain.Song{ID: "s1", Duration: 120, Status: domain.SongStatusActive}

	// pl-fresh already matches what derivation produces.
	fresh := testPlaylist("s1")
	fresh.ID = "pl-fresh"
	fresh.Metadata = domain.DeriveMetadata([]*domain.Song{s1})

	playlists.On("ListActiveIDs", mock.Anything).Return([]string{"pl-stale", "pl-fresh"}, nil)
	playlists.On("GetByID", mock.Anything, "pl-stale").Return(stale, nil)
	playlists.On("GetByID", mock.Anything, "pl-fresh").Return(fresh, nil)
	songs.On("GetMany", mock.Anything, []string{"s1"}).Return(songMap(s1), nil)
	playlists.On("Update", mock.Anything, stale).Return(nil).Once()

	svc := NewMaintenanceService(playlists, songs, testLogger())
	require.NoError(t, svc.ResyncAllMetadata(context.Background()))

	assert.Equal(t, 120, stale.Metadata.TotalDuration)
	playlists.AssertExpectations(t)
	playlists.AssertNumberOfCalls(t, "Update", 1)
}

func TestResyncAllMetadata_SkipsConflictsAndFailures(t *testing.T) {
	playlists := new(MockPlaylistRepository)
	songs := new(MockSongRepository)

	drifted := testPlaylist("s1")
	drifted.ID = "pl-1"
	drifted.Metadata = domain.PlaylistMetadata{TotalDuration: 1}

	s1 := &domain.Song{ID: "s1", Duration: 60, Status: domain.SongStatusActive}

	playlists.On("ListActiveIDs", mock.Anything).Return([]string{"pl-gone", "pl-1"}, nil)
	playlists.On("GetByID", mock.Anything, "pl-gone").Return(nil, nil)
	playlists.On("GetByID", mock.Anything, "pl-1").Return(drifted, nil)
	songs.On("GetMany", mock.Anything, []string{"s1"}).Return(songMap(s1), nil)
	playlists.On("Update", mock.Anything, drifted).Return(repository.ErrVersionConflict)

	svc := NewMaintenanceService(playlists, songs, testLogger())

	// A lost race means a concurrent mutation already re-derived; the walk
	// carries on without error.
	assert.NoError(t, svc.ResyncAllMetadata(context.Background()))
}
