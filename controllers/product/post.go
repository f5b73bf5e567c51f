package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/services"
)

// POST /api/products
func CreateProduct(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid input: " + err.Error()})
			return
		}

		product, err := catalog.Create(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
