package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/services"
	"storefront-api/store"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Product not found"})
	case errors.Is(err, store.ErrDuplicateCode):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "A product with that code already exists"})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
	default:
		zap.S().Errorw("product request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Something went wrong"})
	}
}
