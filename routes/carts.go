package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "storefront-api/controllers/cart"
	"storefront-api/middleware"
	"storefront-api/services"
)

// SetupCartRoutes registers all "/api/carts" endpoints.
func SetupCartRoutes(r *gin.Engine, carts *services.Carts, sessions *services.Sessions) {
	group := r.Group("/api/carts")
	{
		group.POST("", cartControllers.CreateCart(carts))                              // POST /api/carts
		group.GET("/current", middleware.EnsureSession, cartControllers.GetCurrentCart(sessions, carts)) // GET /api/carts/current
		group.GET("/:cid", cartControllers.GetCart(carts))                             // GET /api/carts/:cid
		group.PUT("/:cid", cartControllers.ReplaceCartProducts(carts))                 // PUT /api/carts/:cid
		group.DELETE("/:cid", cartControllers.ClearCart(carts))                        // DELETE /api/carts/:cid
		group.POST("/:cid/product/:pid", cartControllers.AddProductToCart(carts))      // POST /api/carts/:cid/product/:pid
		group.PUT("/:cid/product/:pid", cartControllers.SetProductQuantity(carts))     // PUT /api/carts/:cid/product/:pid
		group.DELETE("/:cid/product/:pid", cartControllers.RemoveProductFromCart(carts)) // DELETE /api/carts/:cid/product/:pid
	}
}
