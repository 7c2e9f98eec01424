package controllers

import (
	"net/http"
	"strings"

	"github.com/KamisAyaka/MovieReviews/Server/MovieReviewsServer/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func (ctl *Controller) CreateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data"})
			return
		}
		// Blank bodies and codes are rejected; the body itself is stored as sent.
		if err := validate.Struct(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		// Insert the review, then push its id onto the movie
		review, err := ctl.Reviews.CreateReview(ctx, req.ReviewBody, strings.TrimSpace(req.ImdbID))
		if err != nil {
			ctl.Log.Error("Failed to create review", zap.Error(err), zap.String("imdb_id", req.ImdbID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

func (ctl *Controller) GetReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Review ids are ObjectID hex strings
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		review, err := ctl.Reviews.FindByID(ctx, id)
		if err != nil {
			ctl.Log.Error("Failed to fetch review", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching review"})
			return
		}
		if review == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, review)
	}
}
