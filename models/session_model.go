package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session is the server-side record behind a session cookie.
// ExpiresAt carries a TTL index, so MongoDB removes stale sessions on its own.
type Session struct {
	ID         string        `bson:"_id"`
	UserID     bson.ObjectID `bson:"userId"`
	Username   string        `bson:"username"`
	UserAgent  string        `bson:"userAgent,omitempty"`
	IP         string        `bson:"ip,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt"`
	LastSeenAt time.Time     `bson:"lastSeenAt"`
	ExpiresAt  time.Time     `bson:"expiresAt"`
}
