package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type SessionRepository struct {
	collection *mongo.Collection
	log        *zap.Logger
}

func NewSessionRepository(db *mongo.Database, log *zap.Logger) *SessionRepository {
	return &SessionRepository{
		collection: OpenCollection(SessionsCollection, db),
		log:        log.With(zap.String("repository", "session")),
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.Hex()),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID returns nil, nil when the session does not exist. Expired sessions are returned as
// stored; the caller decides on expiry since the TTL monitor runs only periodically.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session", zap.Error(err))
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// Touch records activity on a session and moves its expiry.
func (r *SessionRepository) Touch(ctx context.Context, id string, lastSeen, expiresAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"lastSeenAt": lastSeen,
		"expiresAt":  expiresAt,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
