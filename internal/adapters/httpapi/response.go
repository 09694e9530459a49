package httpapi

import (
	"errors"
	"net/http"

	"contenthub/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respond writes the {status, data} envelope.
func respond(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"status": code, "data": data})
}

func respondMessage(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"status": code, "message": msg})
}

// StatusFor maps an error kind to its HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError surfaces the error message with its mapped status and logs
// internal failures under op.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("op", op), zap.Error(err))
	}
	respondMessage(c, code, err.Error())
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
