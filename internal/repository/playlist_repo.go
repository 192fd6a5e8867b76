package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartik0209/music-backend/internal/domain"
)

// MongoPlaylistRepository is the MongoDB-backed playlist store.
type MongoPlaylistRepository struct {
	col *mongo.Collection
}

// NewPlaylistRepository creates a playlist repository.
func NewPlaylistRepository(db *mongo.Database) *MongoPlaylistRepository {
	return &MongoPlaylistRepository{col: db.Collection(playlistsCollection)}
}

// Create inserts a new playlist document.
func (r *MongoPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	_, err := r.col.InsertOne(ctx, playlist)
	return err
}

// GetByID fetches a playlist. Soft-deleted playlists are treated as
// missing. Returns (nil, nil) when not found.
func (r *MongoPlaylistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$ne": domain.PlaylistStatusDeleted}}

	var playlist domain.Playlist
	err := r.col.FindOne(ctx, filter).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Update replaces the playlist document if its version is unchanged.
// Membership and derived metadata always land in the same write, so a
// reader can never observe one without the other.
func (r *MongoPlaylistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	readVersion := playlist.Version
	playlist.Version++
	playlist.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": playlist.ID, "version": readVersion}, playlist)
	if err != nil {
		playlist.Version = readVersion
		return err
	}
	if res.MatchedCount == 0 {
		playlist.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

// SoftDelete flips the playlist status to deleted.
func (r *MongoPlaylistRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": domain.PlaylistStatusDeleted, "updated_at": time.Now()},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

// ListByOwner returns the owner's live playlists, newest first.
func (r *MongoPlaylistRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Playlist, error) {
	filter := bson.M{"owner_id": ownerID, "status": bson.M{"$ne": domain.PlaylistStatusDeleted}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var playlists []*domain.Playlist
	for cursor.Next(ctx) {
		var p domain.Playlist
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		playlists = append(playlists, &p)
	}
	return playlists, cursor.Err()
}

// CountByOwner counts the owner's live playlists.
func (r *MongoPlaylistRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	filter := bson.M{"owner_id": ownerID, "status": bson.M{"$ne": domain.PlaylistStatusDeleted}}
	return r.col.CountDocuments(ctx, filter)
}

// ListActiveIDs returns the IDs of all active playlists. Used by the
// metadata resync job.
func (r *MongoPlaylistRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	filter := bson.M{"status": domain.PlaylistStatusActive}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
