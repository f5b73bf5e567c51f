package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/services"
	"storefront-api/store"
)

type quantityInput struct {
	Quantity *int `json:"quantity"`
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Cart not found"})
	case errors.Is(err, store.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Product does not exist"})
	case errors.Is(err, store.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Product not in cart"})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
	default:
		zap.S().Errorw("cart request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Something went wrong"})
	}
}

// POST /api/carts
func CreateCart(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Create(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "success", "cart": cart})
	}
}

// GET /api/carts/:cid
func GetCart(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), c.Param("cid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/carts/:cid/product/:pid
//
// The body is optional; without one the quantity defaults to 1, matching the
// add-one-at-a-time behavior of the storefront.
func AddProductToCart(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		qty := 1
		if c.Request.ContentLength > 0 {
			var input quantityInput
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid input: " + err.Error()})
				return
			}
			if input.Quantity != nil {
				qty = *input.Quantity
			}
		}

		cart, err := carts.AddProduct(c.Request.Context(), c.Param("cid"), c.Param("pid"), qty)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "cart": cart})
	}
}

// PUT /api/carts/:cid
func ReplaceCartProducts(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []services.ItemInput
		if err := c.ShouldBindJSON(&items); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := carts.ReplaceAll(c.Request.Context(), c.Param("cid"), items)
		if err != nil {
			// A missing product reference in the replacement payload is a
			// client error, not a lookup miss.
			if errors.Is(err, store.ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "cart": cart})
	}
}

// PUT /api/carts/:cid/product/:pid
func SetProductQuantity(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input quantityInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "quantity is required"})
			return
		}

		cart, err := carts.SetQuantity(c.Request.Context(), c.Param("cid"), c.Param("pid"), *input.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "cart": cart})
	}
}

// DELETE /api/carts/:cid/product/:pid
func RemoveProductFromCart(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.RemoveProduct(c.Request.Context(), c.Param("cid"), c.Param("pid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "cart": cart})
	}
}

// DELETE /api/carts/:cid
func ClearCart(carts *services.Carts) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Clear(c.Request.Context(), c.Param("cid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "cart": cart})
	}
}
