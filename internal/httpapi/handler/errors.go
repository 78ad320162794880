package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors to HTTP responses. Validation and
// self-action failures carry their message to the client; anything
// unrecognized is logged and reported generically.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrSelfAction):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "not_owner"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not_found"})
	default:
		logger.Error("request failed", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
