package handler

import (
	"log/slog"
	"net/http"

	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CanteenHandler struct {
	canteenService service.CanteenService
	logger         *slog.Logger
}

func NewCanteenHandler(canteenService service.CanteenService, logger *slog.Logger) *CanteenHandler {
	return &CanteenHandler{
		canteenService: canteenService,
		logger:         logger,
	}
}

// RegisterRoutes registers canteen routes
func (h *CanteenHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/canteens", h.List)
}

// List serves all canteens ordered by name.
// GET /api/canteens
func (h *CanteenHandler) List(c *gin.Context) {
	canteens, err := h.canteenService.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list canteens", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "canteens": canteens})
}
