package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/MithunChowdary/resume-roaster/internal/shared/telemetry"
)

// ErrorBody is the flat error object every failure response carries.
// The shape is part of the public API contract: clients key off "error"
// for the machine-readable kind and show "details" to the user.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, errMsg, details string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"error":      errMsg,
		"details":    details,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorBody{
		Error:   errMsg,
		Details: details,
	})
}
