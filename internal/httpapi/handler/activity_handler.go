package handler

import (
	"log/slog"
	"net/http"

	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService service.ActivityService
	logger          *slog.Logger
}

func NewActivityHandler(activityService service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// RegisterRoutes registers activity-feed routes
func (h *ActivityHandler) RegisterRoutes(router *gin.Engine, authRequired gin.HandlerFunc) {
	router.GET("/api/activity_feed", authRequired, h.Feed)
}

// Feed serves the caller's most recent activity entries, newest first.
// GET /api/activity_feed
func (h *ActivityHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	entries, err := h.activityService.Feed(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, "activity feed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": entries})
}
