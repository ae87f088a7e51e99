package handlers

import (
	"recipe-manager/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestID returns the id set by the requestid middleware, generating one when absent
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}

// WriteError writes err as an ErrorResponse with the status of its CustomError.
// Store errors carry their cause in the message; other causes only show in debug mode.
func WriteError(c *gin.Context, err error) {
	ce := common.AsCustomError(err)

	resp := common.ErrorResponse{
		Success: false,
		Code:    ce.Code,
		Message: ce.Message,
	}
	if ce.Code == common.ErrCodeStoreError {
		resp.Message = ce.Error()
	}
	if gin.Mode() == gin.DebugMode && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}

	fields := []zap.Field{
		zap.String("request_id", RequestID(c)),
		zap.String("code", ce.Code),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	if ce.Status >= 500 {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, resp)
}
