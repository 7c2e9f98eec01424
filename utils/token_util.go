package utils

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "MovieReviews"

var ErrMissingSessionID = errors.New("session token carries no session id")

// SessionClaims is the payload of the signed session cookie.
// The token only names a server-side session (ID/jti); expiry is enforced by the session store,
// so no exp claim is issued.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SignSessionToken signs an HS256 token that points at the given session.
func SignSessionToken(sessionID, userID, username, secret string) (string, error) {
	claims := &SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Subject:  userID,
			Issuer:   sessionIssuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signedToken, nil
}

// ParseSessionToken verifies the signature and issuer of a session token and returns its claims.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithIssuedAt())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.ID == "" {
		return nil, ErrMissingSessionID
	}

	return claims, nil
}
