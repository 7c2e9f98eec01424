package routes

import (
	"net/http"
	"time"

	controller "github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/controllers"
	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig is everything the router needs besides the handlers themselves.
type RouterConfig struct {
	AllowedOrigins []string
	Sessions       middleware.SessionResolver
	Logger         *zap.Logger
}

// CORSConfig allows credentialed requests from the given frontend origins.
func CORSConfig(origins []string) cors.Config {
	return cors.Config{
		// Frontend origins from ALLOWED_ORIGINS, e.g. http://localhost:5173
		AllowOrigins: origins,
		// OPTIONS covers the browser's preflight request
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		// Headers the frontend may send
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		// Response headers readable from JavaScript
		ExposeHeaders: []string{"Content-Length"},
		// Lets the browser send the session cookie cross-origin
		AllowCredentials: true,
		// Preflight results are cached for an hour
		MaxAge: time.Hour,
	}
}

func NewRouter(ctl *controller.Controller, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	// CORS runs first so preflight requests never reach the session check
	router.Use(cors.New(CORSConfig(cfg.AllowedOrigins)))
	router.Use(middleware.RequestLogger(cfg.Logger))

	// Health check, no session required
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	// Auth endpoints are public; everything else needs a live session
	SetupUnprotectedRoutes(router, ctl)
	SetupProtectedRoutes(router, ctl, middleware.SessionAuth(cfg.Sessions, ctl.Cookies, ctl.Timeout, cfg.Logger))

	return router
}
