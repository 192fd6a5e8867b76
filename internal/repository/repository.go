// Package repository persists catalog entities in MongoDB.
//
// Every document carries a version counter. Update implementations
// replace the document only when the stored version still matches the
// one that was read, and return ErrVersionConflict otherwise; services
// retry the whole read-apply-write cycle. This is what keeps concurrent
// rating and membership mutations from losing updates.
package repository

import (
	"context"
	"errors"

	"github.com/kartik0209/music-backend/internal/domain"
)

// ErrVersionConflict is returned when a version-checked update matched no
// document, meaning another writer got there first.
var ErrVersionConflict = errors.New("document version conflict")

// SongReader resolves songs by ID. Lookups return (nil, nil) when the
// song does not exist; callers treat missing songs as dangling
// references, not failures.
type SongReader interface {
	GetByID(ctx context.Context, id string) (*domain.Song, error)
	GetMany(ctx context.Context, ids []string) (map[string]*domain.Song, error)
}

// SongRepository persists songs.
type SongRepository interface {
	SongReader
	Create(ctx context.Context, song *domain.Song) error
	Update(ctx context.Context, song *domain.Song) error
	SetStatus(ctx context.Context, id string, status domain.SongStatus) error
}

// PlaylistRepository persists playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	SoftDelete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Playlist, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

// UserRepository persists the catalog-side user documents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
