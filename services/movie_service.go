package services

import (
	"context"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MovieRepository interface {
	FindAll(ctx context.Context) ([]models.Movie, error)
	FindByImdbID(ctx context.Context, imdbID string) (*models.MovieDetail, error)
	AppendReview(ctx context.Context, imdbID string, reviewID bson.ObjectID) (bool, error)
}

type MovieService struct {
	movies MovieRepository
}

func NewMovieService(movies MovieRepository) *MovieService {
	return &MovieService{movies: movies}
}

// FindAll never returns a nil slice on success.
func (s *MovieService) FindAll(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.movies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// FindByImdbID returns nil, nil when no movie has that code.
func (s *MovieService) FindByImdbID(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	return s.movies.FindByImdbID(ctx, imdbID)
}
