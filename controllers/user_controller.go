package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/services"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (ctl *Controller) RegisterUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.UserRegister
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}

		// Length rules apply to the name as it will be stored.
		user.Username = strings.TrimSpace(user.Username)
		if err := validate.Struct(user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		// The service hashes the password; the unique index catches a concurrent duplicate.
		created, err := ctl.Auth.Register(ctx, user.Username, user.Password)
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		if err != nil {
			ctl.Log.Error("Failed to register user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "User registered successfully!",
			"id":       created.ID.Hex(),
			"username": created.Username,
		})
	}
}

// LoginUser accepts JSON or a urlencoded form. A session referenced by an incoming cookie is
// replaced, never reused.
func (ctl *Controller) LoginUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var userLogin models.UserLogin
		// ShouldBind picks JSON or form binding from the Content-Type.
		if err := c.ShouldBind(&userLogin); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}

		userLogin.Username = strings.TrimSpace(userLogin.Username)
		if err := validate.Struct(userLogin); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		// A session the client already holds is revoked by the service and replaced.
		previous, _ := utils.SessionIDFromRequest(c, ctl.Cookies)
		session, user, err := ctl.Auth.Login(ctx, userLogin.Username, userLogin.Password, services.SessionMeta{
			UserAgent:         c.Request.UserAgent(),
			IP:                c.ClientIP(),
			PreviousSessionID: previous,
		})
		// Unknown user and wrong password share one answer.
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		if err != nil {
			ctl.Log.Error("Failed to log in user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		// The cookie only names the server-side session.
		token, err := utils.SignSessionToken(session.ID, user.ID.Hex(), user.Username, ctl.Cookies.Secret)
		if err != nil {
			ctl.Log.Error("Failed to sign session token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}
		// HttpOnly; Secure and SameSite follow ENV.
		utils.SetSessionCookie(c, ctl.Cookies, token)

		c.JSON(http.StatusOK, gin.H{
			"message":  "Login successful!",
			"id":       user.ID.Hex(),
			"username": user.Username,
		})
	}
}

// LogoutHandler revokes the caller's session, if any, and expires the cookie.
func (ctl *Controller) LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		// A missing or forged cookie has no session to revoke.
		if sessionID, err := utils.SessionIDFromRequest(c, ctl.Cookies); err == nil {
			if err := ctl.Auth.Logout(ctx, sessionID); err != nil {
				ctl.Log.Error("Failed to revoke session", zap.Error(err))
				utils.ClearSessionCookie(c, ctl.Cookies)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
				return
			}
		}

		// Expire the cookie in the browser
		utils.ClearSessionCookie(c, ctl.Cookies)
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

// GetCurrentUser returns the id and username of the authenticated caller.
func (ctl *Controller) GetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity set by SessionAuth
		userID, err := utils.GetUserIdFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		username, _ := utils.GetUsernameFromContext(c)
		sessionID, _ := utils.GetSessionIdFromContext(c)

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		user, err := ctl.Auth.CurrentUser(ctx, userID)
		// The session outlived its user.
		if errors.Is(err, services.ErrUserNotFound) {
			ctl.Log.Warn("Session user no longer exists",
				zap.String("user_id", userID),
				zap.String("username", username),
				zap.String("session_id", sessionID),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			ctl.Log.Error("Failed to load current user", zap.Error(err), zap.String("username", username))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		c.JSON(http.StatusOK, models.UserResponse{
			UserID:   user.ID.Hex(),
			Username: user.Username,
		})
	}
}
