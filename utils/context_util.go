package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Keys under which the session middleware stores the caller identity.
const (
	UserIDKey    = "userID"
	UsernameKey  = "username"
	SessionIDKey = "sessionID"
)

func GetUserIdFromContext(c *gin.Context) (string, error) {
	return stringFromContext(c, UserIDKey)
}

func GetUsernameFromContext(c *gin.Context) (string, error) {
	return stringFromContext(c, UsernameKey)
}

func GetSessionIdFromContext(c *gin.Context) (string, error) {
	return stringFromContext(c, SessionIDKey)
}

func stringFromContext(c *gin.Context, key string) (string, error) {
	value, exists := c.Get(key)
	if !exists {
		return "", errors.New(key + " not found in context")
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.New(key + " is not a string")
	}
	return s, nil
}
