package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kartik0209/music-backend/internal/domain"
)

// MongoUserRepository is the MongoDB-backed user store.
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(usersCollection)}
}

// Create inserts a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

// GetByID fetches a user. Returns (nil, nil) when not found.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update replaces the user document if its version is unchanged.
func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	readVersion := user.Version
	user.Version++
	user.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID, "version": readVersion}, user)
	if err != nil {
		user.Version = readVersion
		return err
	}
	if res.MatchedCount == 0 {
		user.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}
