// Package authcontroller exposes registration and login. Both endpoints sit
// behind the auth rate-limit tier and the declarative field contracts; the
// account service owns everything after that.
package authcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/apierror"
	"storefront-api/services"
	"storefront-api/validators"
)

// POST /api/auth/register
func Register(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validators.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Write(c, apierror.Wrap(apierror.Validation, "Invalid request body", err))
			return
		}
		if verr := validators.Check(req); verr != nil {
			apierror.Write(c, verr)
			return
		}

		user, token, err := accounts.Register(c.Request.Context(), req)
		if err != nil {
			apierror.Write(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data": gin.H{
				"userId": user.ID,
				"token":  token,
			},
		})
	}
}

// POST /api/auth/login
func Login(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validators.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Write(c, apierror.Wrap(apierror.Validation, "Invalid request body", err))
			return
		}
		if verr := validators.Check(req); verr != nil {
			apierror.Write(c, verr)
			return
		}

		user, token, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			apierror.Write(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data": gin.H{
				"userId": user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"token":  token,
			},
		})
	}
}
