package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-api/apierror"
	"storefront-api/auth"
	"storefront-api/services"
)

// CtxUserIDKey is where the verified subject id lives in the request context.
const CtxUserIDKey = "user_id"

// RequireAuth verifies the bearer credential and confirms the subject still
// exists before any handler runs. The verified user id is attached to the
// context for downstream authorization.
func RequireAuth(tokens *auth.TokenService, accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierror.Write(c, apierror.New(apierror.AuthFailure, "No token provided"))
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierror.Write(c, err)
			return
		}

		user, err := accounts.UserByID(c.Request.Context(), userID)
		if err != nil {
			apierror.Write(c, err)
			return
		}

		c.Set(CtxUserIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the authenticated subject id set by RequireAuth.
func UserID(c *gin.Context) string {
	id, _ := c.Get(CtxUserIDKey)
	s, _ := id.(string)
	return s
}
