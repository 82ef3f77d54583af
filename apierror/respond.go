package apierror

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every failure response.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// Write translates a failure into its HTTP status and envelope. This is the
// single place the taxonomy meets the transport. Unknown failures are logged
// with their cause; the cause itself only reaches the caller outside production.
func Write(c *gin.Context, err error) {
	ae := From(err)

	msg := ae.Message
	if ae.Kind == Unknown {
		zap.L().Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(ae))
		if os.Getenv("APP_ENV") == "production" {
			msg = "Internal server error"
		} else if ae.Err != nil {
			msg = ae.Err.Error()
		}
	}

	fields := ae.Fields
	if fields == nil {
		fields = []FieldError{}
	}

	c.AbortWithStatusJSON(ae.Kind.Status(), Envelope{
		Success: false,
		Message: msg,
		Errors:  fields,
	})
}
