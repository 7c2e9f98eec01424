package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/database"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeUsers is an in-memory UserRepository; createErr, when set, fails Create.
type fakeUsers struct {
	mu        sync.Mutex
	byName    map[string]*models.User
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byName[user.Username]; ok {
		return fmt.Errorf("username %q: %w", user.Username, database.ErrDuplicateKey)
	}
	stored := *user
	f.byName[user.Username] = &stored
	return nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.byName[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.byName {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	byID     map[string]*models.Session
	touchErr error
	deleted  []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]*models.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *session
	f.byID[session.ID] = &stored
	return nil
}

func (f *fakeSessions) FindByID(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.byID[id]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSessions) Touch(_ context.Context, id string, lastSeen, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.touchErr != nil {
		return f.touchErr
	}
	if session, ok := f.byID[id]; ok {
		session.LastSeenAt = lastSeen
		session.ExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReviews struct {
	mu        sync.Mutex
	byID      map[bson.ObjectID]models.Review
	insertErr error
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[bson.ObjectID]models.Review{}}
}

func (f *fakeReviews) Insert(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.byID[review.ID] = *review
	return nil
}

func (f *fakeReviews) FindByID(_ context.Context, id bson.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if review, ok := f.byID[id]; ok {
		return &review, nil
	}
	return nil, nil
}

type fakeMovies struct {
	mu        sync.Mutex
	movies    []models.Movie
	findErr   error
	appendErr error
}

func (f *fakeMovies) FindAll(_ context.Context) ([]models.Movie, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.movies, nil
}

func (f *fakeMovies) FindByImdbID(_ context.Context, imdbID string) (*models.MovieDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, movie := range f.movies {
		if movie.ImdbID == imdbID {
			return &models.MovieDetail{Movie: movie}, nil
		}
	}
	return nil, nil
}

func (f *fakeMovies) AppendReview(_ context.Context, imdbID string, reviewID bson.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return false, f.appendErr
	}
	for i := range f.movies {
		if f.movies[i].ImdbID == imdbID {
			f.movies[i].ReviewIDs = append(f.movies[i].ReviewIDs, reviewID)
			return true, nil
		}
	}
	return false, nil
}

// directTx runs the unit of work without a transaction, counting invocations.
type directTx struct {
	calls int
}

func (d *directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	d.calls++
	return fn(ctx)
}
