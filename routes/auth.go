package routes

import (
	"github.com/gin-gonic/gin"

	authcontroller "storefront-api/controllers/auth"
)

// SetupAuthRoutes registers the public /api/auth endpoints. Both sit behind
// the email-keyed auth limiter tier.
func SetupAuthRoutes(api *gin.RouterGroup, deps Deps) {
	group := api.Group("/auth")
	group.Use(deps.Limits.Auth)
	{
		group.POST("/register", authcontroller.Register(deps.Accounts))
		group.POST("/login", authcontroller.Login(deps.Accounts))
	}
}
