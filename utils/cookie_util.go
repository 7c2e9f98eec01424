package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var ErrNoSessionCookie = errors.New("no session cookie")

// CookieConfig describes the session cookie and the key its value is signed with.
type CookieConfig struct {
	Name     string
	Domain   string
	Secret   string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieConfig picks cookie attributes for the environment.
// Development (HTTP): Secure=false, SameSite=Lax.
// Production (HTTPS, cross-site frontend): Secure=true, SameSite=None.
func NewCookieConfig(name, domain, secret string, production bool) CookieConfig {
	cfg := CookieConfig{
		Name:     name,
		Domain:   domain,
		Secret:   secret,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cfg.Secure = true
		cfg.SameSite = http.SameSiteNoneMode
	}
	return cfg
}

// SetSessionCookie writes a browser-session cookie holding the signed token.
func SetSessionCookie(c *gin.Context, cfg CookieConfig, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// SessionIDFromRequest reads the session cookie and returns the session id it was signed for.
func SessionIDFromRequest(c *gin.Context, cfg CookieConfig) (string, error) {
	value, err := c.Cookie(cfg.Name)
	if err != nil || value == "" {
		return "", ErrNoSessionCookie
	}

	claims, err := ParseSessionToken(value, cfg.Secret)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}
