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

type ReviewRepository struct {
	collection *mongo.Collection
	log        *zap.Logger
}

func NewReviewRepository(db *mongo.Database, log *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		collection: OpenCollection(ReviewsCollection, db),
		log:        log.With(zap.String("repository", "review")),
	}
}

// Insert stores review, generating its ID when unset.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = bson.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		r.log.Error("Failed to insert review", zap.Error(err))
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when the review does not exist.
func (r *ReviewRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}
