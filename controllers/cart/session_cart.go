package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/middleware"
	"storefront-api/services"
)

// GET /api/carts/current
//
// Resolves the caller's session to its cart, lazily creating one. Requires
// middleware.EnsureSession on the route.
func GetCurrentCart(sessions *services.Sessions, carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionVal, exists := c.Get(middleware.SessionKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "No session on request"})
			return
		}
		sessionID := sessionVal.(string)

		cartID, err := sessions.ResolveCart(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, err)
			return
		}
		cart, err := carts.Get(c.Request.Context(), cartID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
