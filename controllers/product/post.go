package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-api/apierror"
	"storefront-api/models"
	"storefront-api/validators"
)

// POST /api/products (admin)
//
// Products are created from already-hosted image URLs; binary upload and
// asset hosting live outside this service.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validators.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Write(c, apierror.Wrap(apierror.Validation, "Invalid request body", err))
			return
		}
		if verr := validators.Check(req); verr != nil {
			apierror.Write(c, verr)
			return
		}

		var count int64
		if err := db.Model(&models.Product{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			apierror.Write(c, err)
			return
		}
		if count > 0 {
			apierror.Write(c, apierror.New(apierror.Duplicate, "Product with this name already exists"))
			return
		}

		product := models.NewProduct(req.Name, req.Price, req.Description, req.Images, req.Category, req.Brand, req.Stock)
		if err := db.Create(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apierror.Write(c, apierror.New(apierror.Duplicate, "Product with this name already exists"))
				return
			}
			apierror.Write(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product added successfully",
			"product": product,
		})
	}
}
