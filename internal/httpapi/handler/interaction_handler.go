package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interaction service.InteractionService
	logger      *slog.Logger
}

func NewInteractionHandler(interaction service.InteractionService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		interaction: interaction,
		logger:      logger,
	}
}

// RegisterRoutes registers the toggle endpoints
func (h *InteractionHandler) RegisterRoutes(router *gin.Engine, authRequired gin.HandlerFunc) {
	router.POST("/upvote/:id", authRequired, h.ToggleUpvote)
	router.POST("/favorite/:id", authRequired, h.ToggleFavorite)
}

// ToggleUpvote flips the caller's upvote on a review.
// POST /upvote/:id
func (h *InteractionHandler) ToggleUpvote(c *gin.Context) {
	h.toggle(c, models.ReactionUpvote, "upvoted", "upvotes")
}

// ToggleFavorite flips the caller's favorite on a review.
// POST /favorite/:id
func (h *InteractionHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, models.ReactionFavorite, "favorited", "favorites")
}

func (h *InteractionHandler) toggle(c *gin.Context, kind models.ReactionKind, activeKey, countKey string) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid review id"})
		return
	}

	active, count, err := h.interaction.Toggle(c.Request.Context(), kind, userID, reviewID)
	if err != nil {
		writeError(c, h.logger, "toggle "+string(kind), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		activeKey: active,
		countKey:  count,
	})
}
