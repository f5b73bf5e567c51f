package routes

import (
	"github.com/gin-gonic/gin"

	liveControllers "storefront-api/controllers/live"
	"storefront-api/live"
	"storefront-api/services"
)

// SetupRoutes is the single entry-point that wires up the product, cart, and
// realtime route groups.
func SetupRoutes(r *gin.Engine, catalog *services.Catalog, carts *services.Carts, sessions *services.Sessions, hub *live.Hub) {
	SetupProductRoutes(r, catalog)
	SetupCartRoutes(r, carts, sessions)

	r.GET("/ws/products", liveControllers.ProductsWebSocket(hub, catalog))
}
