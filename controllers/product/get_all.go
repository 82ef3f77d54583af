package productcontroller

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-api/apierror"
	"storefront-api/models"
)

// GET /api/products?page=1&limit=10
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}

		var products []models.Product
		if err := db.Limit(limit).Offset((page - 1) * limit).Find(&products).Error; err != nil {
			apierror.Write(c, err)
			return
		}
		if len(products) == 0 {
			apierror.Write(c, apierror.New(apierror.NotFound, "No products found"))
			return
		}

		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			apierror.Write(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Products retrieved successfully",
			"pagination": gin.H{
				"total": total,
				"page":  page,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
			"count":    len(products),
			"products": products,
		})
	}
}

// GET /api/products/search?keyword=nike
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := strings.TrimSpace(c.Query("keyword"))
		if keyword == "" {
			apierror.Write(c, apierror.New(apierror.Validation, "Search keyword is required"))
			return
		}

		pattern := "%" + strings.ToLower(keyword) + "%"
		var products []models.Product
		err := db.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern,
		).Find(&products).Error
		if err != nil {
			apierror.Write(c, err)
			return
		}
		if len(products) == 0 {
			apierror.Write(c, apierror.Newf(apierror.NotFound, "No products found matching %q", keyword))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Search results for " + strconv.Quote(keyword),
			"count":    len(products),
			"products": products,
		})
	}
}

// GET /api/products/category/:category
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := strings.TrimSpace(c.Param("category"))
		if category == "" {
			apierror.Write(c, apierror.New(apierror.Validation, "Category is required"))
			return
		}

		var products []models.Product
		err := db.Where("LOWER(category) = ?", strings.ToLower(category)).Find(&products).Error
		if err != nil {
			apierror.Write(c, err)
			return
		}
		if len(products) == 0 {
			apierror.Write(c, apierror.Newf(apierror.NotFound, "No products found in %s category", category))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Products in " + category + " category retrieved successfully",
			"count":    len(products),
			"products": products,
		})
	}
}
