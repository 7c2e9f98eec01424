// Package controllers holds the gin handlers for the auth, movie and review endpoints.
package controllers

import (
	"context"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/services"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator adds notblank, which rejects strings made only of whitespace.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string, meta services.SessionMeta) (*models.Session, *models.User, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type MovieService interface {
	FindAll(ctx context.Context) ([]models.Movie, error)
	FindByImdbID(ctx context.Context, imdbID string) (*models.MovieDetail, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, body, imdbID string) (*models.Review, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Review, error)
}

// Controller carries the dependencies shared by all handlers.
// Timeout bounds the store calls of a single request.
type Controller struct {
	Auth    AuthService
	Movies  MovieService
	Reviews ReviewService
	Cookies utils.CookieConfig
	Timeout time.Duration
	Log     *zap.Logger
}

func (ctl *Controller) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, ctl.Timeout)
}
