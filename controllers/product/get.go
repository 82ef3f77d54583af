package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-api/apierror"
	"storefront-api/models"
)

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			apierror.Write(c, apierror.New(apierror.MalformedIdentifier, "Invalid product ID format"))
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierror.Write(c, apierror.New(apierror.NotFound, "Product not found"))
			} else {
				apierror.Write(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product retrieved successfully",
			"product": product,
		})
	}
}
