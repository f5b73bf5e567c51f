package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-api/services"
)

// GET /api/products
func GetProducts(catalog *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := services.ListQuery{
			Category: c.Query("category"),
			Search:   c.Query("query"),
			Sort:     c.Query("sort"),
		}

		if v := c.Query("page"); v != "" {
			page, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid page"})
				return
			}
			query.Page = page
		}
		if v := c.Query("limit"); v != "" {
			limit, err := strconv.Atoi(v)
			if err != nil || limit == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid limit"})
				return
			}
			query.Limit = limit
		}
		if v := c.Query("available"); v != "" {
			available, err := strconv.ParseBool(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid available flag"})
				return
			}
			query.Available = &available
		}
		if v := c.Query("minPrice"); v != "" {
			min, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid minPrice"})
				return
			}
			query.MinPrice = &min
		}
		if v := c.Query("maxPrice"); v != "" {
			max, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid maxPrice"})
				return
			}
			query.MaxPrice = &max
		}

		page, err := catalog.List(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}

		// Navigation links keep every other active query parameter.
		var prevLink, nextLink *string
		if page.PrevPage != nil {
			link := services.PageURL(c.Request.URL.Path, c.Request.URL.Query(), *page.PrevPage)
			prevLink = &link
		}
		if page.NextPage != nil {
			link := services.PageURL(c.Request.URL.Path, c.Request.URL.Query(), *page.NextPage)
			nextLink = &link
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "success",
			"payload":     page.Items,
			"totalPages":  page.TotalPages,
			"page":        page.Page,
			"prevPage":    page.PrevPage,
			"nextPage":    page.NextPage,
			"hasPrevPage": page.HasPrevPage,
			"hasNextPage": page.HasNextPage,
			"prevLink":    prevLink,
			"nextLink":    nextLink,
		})
	}
}
