package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/services"
)

// GET /api/products/:pid
func GetProductByID(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("pid")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Product ID is required"})
			return
		}

		product, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
