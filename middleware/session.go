package middleware

import (
	"fmt"

	"quizhub/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "quiz_session"

// Session resolves the caller's identity from the session cookie. The cookie
// value is a signed JWT wrapping the opaque Redis session token; both the
// signature and the Redis lookup must succeed before any identity is set.
// Requests without a valid session pass through anonymously — enforcement
// for protected actions happens in the dispatcher.
func Session(store *services.SessionStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err == nil {
			if token, ok := ParseSessionCookie(cookie, jwtSecret); ok {
				if session, err := store.Get(c.Request.Context(), token); err == nil {
					c.Set("session_token", token)
					c.Set("user_id", session.UserID)
					c.Set("username", session.Username)
				}
			}
		}

		c.Next()
	}
}

// SignSessionCookie wraps a session token in an HMAC-signed JWT for use as
// the cookie value.
func SignSessionCookie(token string, userID uint, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sid": token,
		"sub": fmt.Sprintf("%d", userID),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionCookie verifies the cookie signature and extracts the session
// token. It reports false for anything malformed, unsigned, or signed with
// the wrong method.
func ParseSessionCookie(cookie, secret string) (string, bool) {
	parsed, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
