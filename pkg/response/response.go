package response

import (
	"net/http"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Data    interface{}       `json:"data"`
}

func Success(c *gin.Context, data interface{}, message string) {
	if data == nil {
		data = gin.H{}
	}
	if message == "" {
		message = "Success"
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail writes err as an error envelope and aborts the chain. Server errors
// are logged with their cause; the client only sees the generic message.
func Fail(c *gin.Context, log *logger.Logger, err error) {
	e := apperr.As(err)
	status := StatusFor(e.Kind)

	if e.Kind == apperr.KindServer && log != nil {
		log.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, e)
	}

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   e.Message,
		Errors:  e.Fields,
	})
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Status writes an error envelope for a bare status code, used by the
// router fallbacks and recovery.
func Status(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error:   message,
	})
}
