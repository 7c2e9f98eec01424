package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetMovies returns every movie in the store.
func (ctl *Controller) GetMovies() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		movies, err := ctl.Movies.FindAll(ctx)
		if err != nil {
			ctl.Log.Error("Failed to fetch movies", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching movies"})
			return
		}
		c.JSON(http.StatusOK, movies)
	}
}

// GetMovie looks a movie up by IMDb id. An unknown id is answered with 200 and a null body.
func (ctl *Controller) GetMovie() gin.HandlerFunc {
	return func(c *gin.Context) {
		imdbID := c.Param("imdbId")
		if imdbID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID is required"})
			return
		}

		ctx, cancel := ctl.requestContext(c.Request.Context())
		defer cancel()

		// The detail carries the referenced reviews, resolved in reviewIds order
		movie, err := ctl.Movies.FindByImdbID(ctx, imdbID)
		if err != nil {
			ctl.Log.Error("Failed to fetch movie", zap.Error(err), zap.String("imdb_id", imdbID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching movie"})
			return
		}
		// nil encodes as null: an unknown code is an empty result
		c.JSON(http.StatusOK, movie)
	}
}
