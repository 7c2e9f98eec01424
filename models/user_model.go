package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a registered account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string        `json:"username" bson:"username"`
	Password  string        `json:"-" bson:"password"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type UserRegister struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UserLogin is bound from either a JSON body or a urlencoded form.
type UserLogin struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UserResponse struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}
