package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PlayerCookieName carries the player token for browser clients
const PlayerCookieName = "sg_player"

// GeneratePlayerID creates a new anonymous player id
func GeneratePlayerID() string {
	return uuid.New().String()
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// CreatePlayerCookie wraps a player token in a cookie with proper security flags.
// The Secure flag is set automatically when the request arrived over HTTPS.
func CreatePlayerCookie(r *http.Request, token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     PlayerCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
