package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/services"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionResolver interface {
	Authenticate(ctx context.Context, sessionID string) (*models.Session, error)
}

// SessionAuth admits only requests carrying a signed cookie for a live server-side session.
// On success the caller identity is stored in the gin context under the utils key constants.
func SessionAuth(sessions SessionResolver, cookies utils.CookieConfig, timeout time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read and verify the signed cookie
		sessionID, err := utils.SessionIDFromRequest(c, cookies)
		if err != nil {
			// A cookie that is present but unreadable is removed
			if !errors.Is(err, utils.ErrNoSessionCookie) {
				log.Debug("Rejected session cookie", zap.Error(err))
				utils.ClearSessionCookie(c, cookies)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		// Look the session up; a live one has its expiry slid forward
		session, err := sessions.Authenticate(ctx, sessionID)
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrSessionExpired) {
			utils.ClearSessionCookie(c, cookies)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
			return
		}
		if err != nil {
			log.Error("Failed to validate session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// Expose the caller to the handlers
		c.Set(utils.UserIDKey, session.UserID.Hex())
		c.Set(utils.UsernameKey, session.Username)
		c.Set(utils.SessionIDKey, session.ID)

		c.Next()
	}
}
