package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"storefront-api/apierror"
)

// RequireAPIKey guards the admin catalog-management routes.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader("X-API-KEY")
		if key == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
			apierror.Write(c, apierror.New(apierror.AuthFailure, "Invalid or missing API key"))
			return
		}
		c.Next()
	}
}
