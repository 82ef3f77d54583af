package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/apierror"
)

// Recovery is the outermost boundary: panics are logged and converted to the
// generic Unknown failure so no stack detail reaches the caller.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("panic recovered",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
				)
				apierror.Write(c, apierror.Wrap(apierror.Unknown, "Internal server error", fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}
