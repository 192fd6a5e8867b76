package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kartik0209/music-backend/internal/domain"
)

// MongoSongRepository is the MongoDB-backed song store.
type MongoSongRepository struct {
	col *mongo.Collection
}

// NewSongRepository creates a song repository.
func NewSongRepository(db *mongo.Database) *MongoSongRepository {
	return &MongoSongRepository{col: db.Collection(songsCollection)}
}

// Create inserts a new song document.
func (r *MongoSongRepository) Create(ctx context.Context, song *domain.Song) error {
	_, err := r.col.InsertOne(ctx, song)
	return err
}

// GetByID fetches a song. Returns (nil, nil) when it does not exist.
func (r *MongoSongRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	var song domain.Song
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// GetMany fetches songs by ID. IDs without a document are simply absent
// from the result map.
func (r *MongoSongRepository) GetMany(ctx context.Context, ids []string) (map[string]*domain.Song, error) {
	result := make(map[string]*domain.Song, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var song domain.Song
		if err := cursor.Decode(&song); err != nil {
			return nil, err
		}
		result[song.ID] = &song
	}
	return result, cursor.Err()
}

// Update replaces the song document if its version is unchanged since it
// was read. On success the in-memory version is advanced to match the
// stored document.
func (r *MongoSongRepository) Update(ctx context.Context, song *domain.Song) error {
	readVersion := song.Version
	song.Version++
	song.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": song.ID, "version": readVersion}, song)
	if err != nil {
		song.Version = readVersion
		return err
	}
	if res.MatchedCount == 0 {
		song.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

// SetStatus flips a song's lifecycle status as a single atomic field
// update.
func (r *MongoSongRepository) SetStatus(ctx context.Context, id string, status domain.SongStatus) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}
