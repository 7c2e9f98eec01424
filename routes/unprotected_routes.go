package routes

import (
	controller "github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/controllers"
	"github.com/gin-gonic/gin"
)

func SetupUnprotectedRoutes(router *gin.Engine, ctl *controller.Controller) {
	auth := router.Group("/api/auth")
	auth.POST("/register", ctl.RegisterUser())
	auth.POST("/login", ctl.LoginUser())
	auth.POST("/logout", ctl.LogoutHandler())
}
