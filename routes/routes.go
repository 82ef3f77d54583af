// Package routes wires middleware tiers and controllers into the gin engine.
// Order matters on mutating routes: admission control runs first, then
// authentication, then validation inside the controller.
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront-api/auth"
	"storefront-api/config"
	"storefront-api/middleware"
	"storefront-api/services"
)

// Deps carries everything the route groups need. The process entry point owns
// construction and injects it here; nothing reaches for globals.
type Deps struct {
	Cfg      config.Config
	DB       *gorm.DB
	Tokens   *auth.TokenService
	Accounts *services.AccountService
	Carts    *services.CartService
	Limits   *middleware.RateLimiters
}

// SetupRoutes is the single entry point that registers every route group.
func SetupRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	api.Use(deps.Limits.Generic)

	SetupAuthRoutes(api, deps)
	SetupCartRoutes(api, deps)
	SetupProductRoutes(api, deps)
}
