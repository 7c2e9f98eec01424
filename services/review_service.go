package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Review, error)
}

// MovieLinker appends a review reference to a movie.
type MovieLinker interface {
	AppendReview(ctx context.Context, imdbID string, reviewID bson.ObjectID) (bool, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReviewService struct {
	reviews ReviewRepository
	movies  MovieLinker
	tx      Transactor
	log     *zap.Logger

	now func() time.Time
}

func NewReviewService(reviews ReviewRepository, movies MovieLinker, tx Transactor, log *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		movies:  movies,
		tx:      tx,
		log:     log.With(zap.String("service", "review")),
		now:     time.Now,
	}
}

// CreateReview stores a review and appends its id to the movie with the given IMDb id.
//
// The movie is not checked up front: with no matching movie the review is still created and
// nothing is linked. Without transactions the two writes are independent, so a failed link
// leaves the inserted review orphaned and the error is returned.
func (s *ReviewService) CreateReview(ctx context.Context, body, imdbID string) (*models.Review, error) {
	now := s.now()
	review := &models.Review{
		ID:      bson.NewObjectID(),
		Body:    body,
		Created: now,
		Updated: now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reviews.Insert(ctx, review); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}

		matched, err := s.movies.AppendReview(ctx, imdbID, review.ID)
		if err != nil {
			s.log.Error("Review stored but not linked to movie",
				zap.Error(err),
				zap.String("review_id", review.ID.Hex()),
				zap.String("imdb_id", imdbID),
			)
			return fmt.Errorf("failed to link review %s to movie %s: %w", review.ID.Hex(), imdbID, err)
		}
		if !matched {
			s.log.Warn("No movie matched review reference",
				zap.String("review_id", review.ID.Hex()),
				zap.String("imdb_id", imdbID),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) FindByID(ctx context.Context, id bson.ObjectID) (*models.Review, error) {
	return s.reviews.FindByID(ctx, id)
}
