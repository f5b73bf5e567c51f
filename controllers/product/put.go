package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/services"
)

// PUT /api/products/:pid
func UpdateProduct(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("pid")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Product ID is required"})
			return
		}

		var patch services.ProductPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid input: " + err.Error()})
			return
		}

		product, err := catalog.Update(c.Request.Context(), id, patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
