package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warn("Request failed",
					"path", c.FullPath(),
					"kind", appErr.Kind,
					"error", appErr.Err,
					"request_id", c.GetString(string(domain.KeyRequestID)),
				)
			}
			response.Fail(c, appErr.Code, appErr.Kind, appErr.Message)
			return
		}

		// Internal details stay in the log
		logger.Log.Error("Unhandled error", "path", c.FullPath(), "error", err)
		response.Fail(c, http.StatusInternalServerError, apperror.KindInternal, "An unexpected error occurred. Please try again later.")
	}
}
