package middleware

import (
	"net/http"

	"some-planner/pkg/logger"
	"some-planner/pkg/response"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 envelope and logs it.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		response.Status(c, http.StatusInternalServerError, "An error occurred")
	})
}
