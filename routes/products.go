package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "storefront-api/controllers/product"
	"storefront-api/middleware"
	"storefront-api/services"
)

// SetupProductRoutes registers all "/api/products" endpoints. Mutations go
// through the API-key gate (a no-op unless ADMIN_API_KEY is set).
func SetupProductRoutes(r *gin.Engine, catalog *services.Catalog) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(catalog))         // GET /api/products
		products.GET("/:pid", productcontroller.GetProductByID(catalog)) // GET /api/products/:pid

		admin := products.Group("")
		admin.Use(middleware.ValidateAPIKey)
		{
			admin.POST("", productcontroller.CreateProduct(catalog))        // POST /api/products
			admin.PUT("/:pid", productcontroller.UpdateProduct(catalog))    // PUT /api/products/:pid
			admin.DELETE("/:pid", productcontroller.DeleteProduct(catalog)) // DELETE /api/products/:pid
		}
	}
}
