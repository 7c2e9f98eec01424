package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Review struct {
	ID      bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Body    string        `json:"body" bson:"body"`
	Created time.Time     `json:"created" bson:"created"`
	Updated time.Time     `json:"updated" bson:"updated"`
}

type ReviewRequest struct {
	ReviewBody string `json:"reviewBody" validate:"required,notblank"`
	ImdbID     string `json:"imdbId" validate:"required,notblank"`
}
