package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Movie struct {
	ID          bson.ObjectID   `json:"id" bson:"_id,omitempty"`
	ImdbID      string          `json:"imdbId" bson:"imdbId"`
	Title       string          `json:"title" bson:"title"`
	ReleaseDate string          `json:"releaseDate" bson:"releaseDate"`
	TrailerLink string          `json:"trailerLink" bson:"trailerLink"`
	Poster      string          `json:"poster" bson:"poster"`
	Genres      []string        `json:"genres" bson:"genres"`
	Backdrops   []string        `json:"backdrops" bson:"backdrops"`
	ReviewIDs   []bson.ObjectID `json:"reviewIds" bson:"reviewIds,omitempty"`
}

// MovieDetail is a Movie with its referenced reviews resolved, in ReviewIDs order.
type MovieDetail struct {
	Movie   `bson:",inline"`
	Reviews []Review `json:"reviews" bson:"reviews"`
}
