package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type UserRepository struct {
	collection *mongo.Collection
	log        *zap.Logger
}

func NewUserRepository(db *mongo.Database, log *zap.Logger) *UserRepository {
	return &UserRepository{
		collection: OpenCollection(UsersCollection, db),
		log:        log.With(zap.String("repository", "user")),
	}
}

// Create inserts user. A taken username yields an error wrapping ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicateKey)
		}
		r.log.Error("Failed to create user", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername returns nil, nil when no user has that name.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByID returns nil, nil when the user does not exist.
func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
