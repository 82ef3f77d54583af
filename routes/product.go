package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "storefront-api/controllers/product"
	"storefront-api/middleware"
)

// SetupProductRoutes registers the catalog read paths and the API-key guarded
// admin mutations. Search gets its own limiter tier; the admin add path gets
// the catalog-mutation tier.
func SetupProductRoutes(api *gin.RouterGroup, deps Deps) {
	group := api.Group("/products")
	{
		group.GET("", productcontroller.GetProducts(deps.DB))
		group.GET("/search", deps.Limits.Search, productcontroller.SearchProducts(deps.DB))
		group.GET("/category/:category", productcontroller.GetProductsByCategory(deps.DB))

		admin := group.Group("")
		admin.Use(middleware.RequireAPIKey(deps.Cfg.AdminAPIKey))
		{
			admin.POST("", deps.Limits.CatalogMutation, productcontroller.CreateProduct(deps.DB))
			admin.GET("/export", productcontroller.ExportProducts(deps.DB))
		}

		group.GET("/:id", productcontroller.GetProductByID(deps.DB))
	}
}
