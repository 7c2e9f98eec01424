package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/database"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Touch(ctx context.Context, id string, lastSeen, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// SessionMeta describes the client a session is opened for.
// PreviousSessionID, if set, is revoked so that a login always yields a fresh session id.
type SessionMeta struct {
	UserAgent         string
	IP                string
	PreviousSessionID string
}

// AuthService registers users, checks credentials and manages server-side sessions.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	ttl      time.Duration
	log      *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewAuthService(users UserRepository, sessions SessionRepository, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Register stores a new user with a bcrypt-hashed password.
// It returns ErrUsernameTaken if the username exists, whether found up front or rejected by the
// unique index during a concurrent registration.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:        bson.NewObjectID(),
		Username:  username,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("User registered", zap.String("user_id", user.ID.Hex()), zap.String("username", username))
	return user, nil
}

// Login checks the credentials and opens a new session for the user.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string, meta SessionMeta) (*models.Session, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := utils.VerifyPassword(user.Password, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if meta.PreviousSessionID != "" {
		if err := s.sessions.Delete(ctx, meta.PreviousSessionID); err != nil {
			s.log.Warn("Failed to revoke previous session", zap.Error(err))
		}
	}

	now := s.now()
	session := &models.Session{
		ID:         s.newID(),
		UserID:     user.ID,
		Username:   user.Username,
		UserAgent:  meta.UserAgent,
		IP:         meta.IP,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	return session, user, nil
}

// Authenticate resolves a live session and slides its expiry forward.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.log.Warn("Failed to delete expired session", zap.Error(err))
		}
		return nil, ErrSessionExpired
	}

	expiresAt := now.Add(s.ttl)
	if err := s.sessions.Touch(ctx, sessionID, now, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	session.LastSeenAt = now
	session.ExpiresAt = expiresAt

	return session, nil
}

// CurrentUser returns the user behind an authenticated session.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Logout revokes the session. An empty id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
