package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards catalog mutations. The check is active only when
// ADMIN_API_KEY is configured; without it the routes stay open.
func ValidateAPIKey(c *gin.Context) {
	required := os.Getenv("ADMIN_API_KEY")
	if required == "" {
		c.Next()
		return
	}
	if c.GetHeader("X-API-KEY") != required {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}
