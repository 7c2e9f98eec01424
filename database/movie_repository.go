package database

import (
	"context"
	"fmt"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

type MovieRepository struct {
	collection *mongo.Collection
	log        *zap.Logger
}

func NewMovieRepository(db *mongo.Database, log *zap.Logger) *MovieRepository {
	return &MovieRepository{
		collection: OpenCollection(MoviesCollection, db),
		log:        log.With(zap.String("repository", "movie")),
	}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]models.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.log.Error("Failed to fetch movies", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}
	for i := range movies {
		fillEmptyLists(&movies[i])
	}
	return movies, nil
}

// FindByImdbID returns the movie with its reviews resolved, or nil, nil when no movie matches.
func (r *MovieRepository) FindByImdbID(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"imdbId": imdbID}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ReviewsCollection,
			"localField":   "reviewIds",
			"foreignField": "_id",
			"as":           "reviews",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.log.Error("Failed to fetch movie", zap.Error(err), zap.String("imdb_id", imdbID))
		return nil, fmt.Errorf("failed to fetch movie: %w", err)
	}
	defer cursor.Close(ctx)

	var movies []models.MovieDetail
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movie: %w", err)
	}
	if len(movies) == 0 {
		return nil, nil
	}

	movie := &movies[0]
	fillEmptyLists(&movie.Movie)
	movie.Reviews = orderReviews(movie.ReviewIDs, movie.Reviews)
	return movie, nil
}

// AppendReview pushes reviewID onto the first movie matching imdbID.
// It reports whether a movie matched; zero matches is not an error.
func (r *MovieRepository) AppendReview(ctx context.Context, imdbID string, reviewID bson.ObjectID) (bool, error) {
	filter := bson.M{"imdbId": imdbID}
	update := bson.M{"$push": bson.M{"reviewIds": reviewID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.log.Error("Failed to link review to movie",
			zap.Error(err),
			zap.String("imdb_id", imdbID),
			zap.String("review_id", reviewID.Hex()),
		)
		return false, fmt.Errorf("failed to link review to movie: %w", err)
	}
	return result.MatchedCount > 0, nil
}

// fillEmptyLists replaces missing or null array fields with empty slices so they encode as [].
func fillEmptyLists(movie *models.Movie) {
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	if movie.Backdrops == nil {
		movie.Backdrops = []string{}
	}
	if movie.ReviewIDs == nil {
		movie.ReviewIDs = []bson.ObjectID{}
	}
}

// orderReviews returns reviews in the order of ids. $lookup does not preserve array order, and
// ids whose review is missing are skipped.
func orderReviews(ids []bson.ObjectID, reviews []models.Review) []models.Review {
	byID := make(map[bson.ObjectID]models.Review, len(reviews))
	for _, review := range reviews {
		byID[review.ID] = review
	}

	ordered := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		if review, ok := byID[id]; ok {
			ordered = append(ordered, review)
		}
	}
	return ordered
}
