package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"dental-smile-backend/internal/delivery/http/response"
	"dental-smile-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached to the context.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Warn("request failed",
					"request_id", c.GetString("RequestID"),
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		logger.Error("unhandled request error",
			"request_id", c.GetString("RequestID"),
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
