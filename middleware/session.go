package middleware

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionKey is the gin context key holding the resolved session id.
const SessionKey = "session_id"

const sessionCookie = "session_token"
const sessionTTL = 30 * 24 * time.Hour

// EnsureSession guarantees every request carries a session id: a valid token
// from the cookie or X-Session-Token header is reused, anything else gets a
// fresh session and a new cookie.
func EnsureSession(c *gin.Context) {
	sessionID, ok := sessionFromRequest(c)
	if !ok {
		sessionID = uuid.NewString()
		token, err := issueSessionToken(sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Failed to start session"})
			c.Abort()
			return
		}
		c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	}
	c.Set(SessionKey, sessionID)
	c.Next()
}

func sessionFromRequest(c *gin.Context) (string, bool) {
	tokenString, err := c.Cookie(sessionCookie)
	if err != nil || tokenString == "" {
		tokenString = c.GetHeader("X-Session-Token")
	}
	if tokenString == "" {
		return "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sessionID, _ := claims["session_id"].(string)
	return sessionID, sessionID != ""
}

func issueSessionToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
