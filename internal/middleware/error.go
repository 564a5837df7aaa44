package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/logger"
)

// ErrorHandler renders errors attached with c.Error once the handler chain
// returns. Bind errors become INVALID_INPUT. Responses already written by a
// handler are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		var appErr *apperrors.AppError
		if last.IsType(gin.ErrorTypeBind) {
			appErr = apperrors.WithMessage(apperrors.ErrInvalidInput, last.Error())
		} else {
			appErr = apperrors.Resolve(last.Err)
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"request_id", RequestID(c),
				"code", appErr.Code,
				"error", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, appErr.Body())
	}
}
