// Package cartcontroller translates the cart engine to HTTP. Every route is
// scoped to the authenticated caller's own cart; the user id always comes from
// the verified token, never from the request.
package cartcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-api/apierror"
	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/services"
	"storefront-api/validators"
)

// GET /api/cart
func GetCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.GetCart(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			apierror.Write(c, err)
			return
		}
		writeCart(c, "Cart fetched successfully", cart)
	}
}

// POST /api/cart
func AddItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validators.AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Write(c, apierror.Wrap(apierror.Validation, "Invalid request body", err))
			return
		}
		if verr := validators.Check(req); verr != nil {
			apierror.Write(c, verr)
			return
		}
		if uuid.Validate(req.ProductID) != nil {
			apierror.Write(c, apierror.New(apierror.MalformedIdentifier, "Invalid product ID format"))
			return
		}

		cart, err := carts.AddItem(c.Request.Context(), middleware.UserID(c), req.ProductID, req.Quantity)
		if err != nil {
			apierror.Write(c, err)
			return
		}
		writeCart(c, "Product added to cart successfully", cart)
	}
}

// PUT /api/cart/:productId
func UpdateItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var req validators.UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Write(c, apierror.Wrap(apierror.Validation, "Invalid request body", err))
			return
		}
		if verr := validators.Check(req); verr != nil {
			apierror.Write(c, verr)
			return
		}

		cart, err := carts.UpdateItem(c.Request.Context(), middleware.UserID(c), productID, req.Quantity)
		if err != nil {
			apierror.Write(c, err)
			return
		}
		writeCart(c, "Cart updated successfully", cart)
	}
}

// DELETE /api/cart/:productId
func RemoveItem(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		cart, err := carts.RemoveItem(c.Request.Context(), middleware.UserID(c), productID)
		if err != nil {
			apierror.Write(c, err)
			return
		}
		writeCart(c, "Product removed from cart", cart)
	}
}

// DELETE /api/cart
func ClearCart(carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.ClearCart(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			apierror.Write(c, err)
			return
		}
		writeCart(c, "Cart cleared successfully", cart)
	}
}

func productIDParam(c *gin.Context) (string, bool) {
	id := c.Param("productId")
	if uuid.Validate(id) != nil {
		apierror.Write(c, apierror.New(apierror.MalformedIdentifier, "Invalid product ID format"))
		return "", false
	}
	return id, true
}

func writeCart(c *gin.Context, message string, cart *models.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"cart":    cart,
	})
}
