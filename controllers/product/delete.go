package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/services"
)

// DELETE /api/products/:pid
func DeleteProduct(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("pid")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Product ID is required"})
			return
		}

		if err := catalog.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Product deleted"})
	}
}
