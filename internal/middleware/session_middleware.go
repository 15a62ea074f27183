package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionIDKey is the context key holding the cart session id.
	SessionIDKey = "session_id"

	sessionCookieName = "cart_session"

	// Cookie lifetime in seconds. The cart itself expires earlier via
	// its storage TTL; the cookie just keeps the id stable.
	sessionCookieMaxAge = 60 * 60 * 24 * 30
)

// CartSession assigns an anonymous session id to every storefront
// visitor. The id is carried in a cookie and minted on first contact.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the cart session id from context.
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(SessionIDKey)
	if !exists {
		return "", false
	}
	id, ok := sessionID.(string)
	return id, ok && id != ""
}
