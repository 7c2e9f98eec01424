package routes

import (
	controller "github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/controllers"
	"github.com/gin-gonic/gin"
)

func SetupProtectedRoutes(router *gin.Engine, ctl *controller.Controller, authMiddleware gin.HandlerFunc) {
	router.GET("/api/auth/user", authMiddleware, ctl.GetCurrentUser())

	v1 := router.Group("/api/v1", authMiddleware)
	v1.GET("/movies", ctl.GetMovies())
	v1.GET("/movies/:imdbId", ctl.GetMovie())
	v1.POST("/reviews", ctl.CreateReview())
	v1.GET("/reviews/:id", ctl.GetReview())
}
