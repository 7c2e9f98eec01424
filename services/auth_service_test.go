package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(users *fakeUsers, sessions *fakeSessions, now *time.Time) *AuthService {
	svc := NewAuthService(users, sessions, 30*time.Minute, zap.NewNop())
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("session-%d", ids)
	}
	if now != nil {
		svc.now = func() time.Time { return *now }
	}
	return svc
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	users := newFakeUsers()
	svc := newTestAuthService(users, newFakeSessions(), nil)

	user, err := svc.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())

	stored, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NotEmpty(t, stored.Password)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := newFakeUsers()
	svc := newTestAuthService(users, newFakeSessions(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "first-password")
	require.NoError(t, err)
	original, _ := users.FindByUsername(ctx, "alice")

	_, err = svc.Register(ctx, "alice", "second-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	after, _ := users.FindByUsername(ctx, "alice")
	assert.Equal(t, original.Password, after.Password)
}

func TestRegister_DuplicateKeyFromRace(t *testing.T) {
	users := newFakeUsers()
	svc := newTestAuthService(users, newFakeSessions(), nil)

	// Another registration for the same name lands between the lookup and the insert.
	racing := &racingUsers{fakeUsers: users}
	svc.users = racing

	_, err := svc.Register(context.Background(), "alice", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

type racingUsers struct {
	*fakeUsers
}

func (r *racingUsers) Create(ctx context.Context, user *models.User) error {
	winner := *user
	winner.Password = "winner-hash"
	_ = r.fakeUsers.Create(ctx, &winner)
	return r.fakeUsers.Create(ctx, user)
}

func TestRegister_StoreFailure(t *testing.T) {
	users := newFakeUsers()
	users.createErr = errors.New("connection refused")
	svc := newTestAuthService(users, newFakeSessions(), nil)

	_, err := svc.Register(context.Background(), "alice", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := newFakeSessions()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := newTestAuthService(users, sessions, &now)

	registered, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "nope", SessionMeta{})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "bob", "password123", SessionMeta{})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success opens session", func(t *testing.T) {
		session, user, err := svc.Login(ctx, "alice", "password123", SessionMeta{UserAgent: "test", IP: "127.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, registered.ID, session.UserID)
		assert.Equal(t, now.Add(30*time.Minute), session.ExpiresAt)

		stored, _ := sessions.FindByID(ctx, session.ID)
		require.NotNil(t, stored)
		assert.Equal(t, "test", stored.UserAgent)
	})

	t.Run("rotates previous session", func(t *testing.T) {
		first, _, err := svc.Login(ctx, "alice", "password123", SessionMeta{})
		require.NoError(t, err)

		second, _, err := svc.Login(ctx, "alice", "password123", SessionMeta{PreviousSessionID: first.ID})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		gone, _ := sessions.FindByID(ctx, first.ID)
		assert.Nil(t, gone)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := newFakeSessions()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := newTestAuthService(users, sessions, &now)

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	session, _, err := svc.Login(ctx, "alice", "password123", SessionMeta{})
	require.NoError(t, err)

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("sliding expiry", func(t *testing.T) {
		now = now.Add(20 * time.Minute)
		got, err := svc.Authenticate(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, now.Add(30*time.Minute), got.ExpiresAt)

		stored, _ := sessions.FindByID(ctx, session.ID)
		assert.Equal(t, now.Add(30*time.Minute), stored.ExpiresAt)
	})

	t.Run("expired", func(t *testing.T) {
		now = now.Add(31 * time.Minute)
		_, err := svc.Authenticate(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionExpired)

		stored, _ := sessions.FindByID(ctx, session.ID)
		assert.Nil(t, stored)
	})
}

func TestAuthenticate_TouchFailure(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestAuthService(users, sessions, nil)

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	session, _, err := svc.Login(ctx, "alice", "password123", SessionMeta{})
	require.NoError(t, err)

	sessions.touchErr = errors.New("write failed")
	_, err = svc.Authenticate(ctx, session.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	svc := newTestAuthService(users, newFakeSessions(), nil)

	registered, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, registered.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.CurrentUser(ctx, "not-hex")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.CurrentUser(ctx, "0123456789abcdef01234567")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestAuthService(users, sessions, nil)

	require.NoError(t, svc.Logout(ctx, ""))
	assert.Empty(t, sessions.deleted)

	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	session, _, err := svc.Login(ctx, "alice", "password123", SessionMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))
	_, err = svc.Authenticate(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
