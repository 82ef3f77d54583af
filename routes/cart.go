package routes

import (
	"github.com/gin-gonic/gin"

	cartcontroller "storefront-api/controllers/cart"
	"storefront-api/middleware"
)

// SetupCartRoutes registers the /api/cart endpoints. Every route requires a
// verified bearer credential; the cart is always the caller's own.
func SetupCartRoutes(api *gin.RouterGroup, deps Deps) {
	group := api.Group("/cart")
	group.Use(middleware.RequireAuth(deps.Tokens, deps.Accounts))
	{
		group.GET("", cartcontroller.GetCart(deps.Carts))
		group.POST("", cartcontroller.AddItem(deps.Carts))
		group.PUT("/:productId", cartcontroller.UpdateItem(deps.Carts))
		group.DELETE("/:productId", cartcontroller.RemoveItem(deps.Carts))
		group.DELETE("", cartcontroller.ClearCart(deps.Carts))
	}
}
