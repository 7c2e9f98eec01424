package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/services"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const testSecret = "controller-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthService implements AuthService; each method delegates to its func field.
type mockAuthService struct {
	registerFn    func(ctx context.Context, username, password string) (*models.User, error)
	loginFn       func(ctx context.Context, username, password string, meta services.SessionMeta) (*models.Session, *models.User, error)
	logoutFn      func(ctx context.Context, sessionID string) error
	currentUserFn func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string, meta services.SessionMeta) (*models.Session, *models.User, error) {
	return m.loginFn(ctx, username, password, meta)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFn(ctx, sessionID)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return m.currentUserFn(ctx, userID)
}

type mockMovieService struct {
	findAllFn      func(ctx context.Context) ([]models.Movie, error)
	findByImdbIDFn func(ctx context.Context, imdbID string) (*models.MovieDetail, error)
}

func (m *mockMovieService) FindAll(ctx context.Context) ([]models.Movie, error) {
	return m.findAllFn(ctx)
}

func (m *mockMovieService) FindByImdbID(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	return m.findByImdbIDFn(ctx, imdbID)
}

type mockReviewService struct {
	createFn   func(ctx context.Context, body, imdbID string) (*models.Review, error)
	findByIDFn func(ctx context.Context, id bson.ObjectID) (*models.Review, error)
}

func (m *mockReviewService) CreateReview(ctx context.Context, body, imdbID string) (*models.Review, error) {
	return m.createFn(ctx, body, imdbID)
}

func (m *mockReviewService) FindByID(ctx context.Context, id bson.ObjectID) (*models.Review, error) {
	return m.findByIDFn(ctx, id)
}

func newTestController() *Controller {
	return &Controller{
		Auth:    &mockAuthService{},
		Movies:  &mockMovieService{},
		Reviews: &mockReviewService{},
		Cookies: utils.NewCookieConfig("SESSION", "", testSecret, false),
		Timeout: 5 * time.Second,
		Log:     zap.NewNop(),
	}
}

// serve runs handler for one request, optionally with values preset in the gin context.
func serve(t *testing.T, handler gin.HandlerFunc, req *http.Request, preset map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Any("/*path", func(c *gin.Context) {
		for k, v := range preset {
			c.Set(k, v)
		}
		c.Next()
	}, handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}
