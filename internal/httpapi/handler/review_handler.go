package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/service"
	"campuseats/internal/uploads"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	store         *uploads.Store
	logger        *slog.Logger
}

func NewReviewHandler(reviewService service.ReviewService, store *uploads.Store, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		store:         store,
		logger:        logger,
	}
}

// RegisterRoutes registers review browsing and lifecycle routes
func (h *ReviewHandler) RegisterRoutes(router *gin.Engine, authRequired gin.HandlerFunc) {
	router.GET("/api/canteen_reviews", h.ListByCanteen)
	router.GET("/api/my_reviews", authRequired, h.ListMine)
	router.GET("/api/reviews_by_ids", h.GetByIDs)
	router.POST("/submit_review", authRequired, h.Submit)
	router.POST("/review/:id/delete", authRequired, h.Delete)
}

// ListByCanteen serves the aggregated review feed for one canteen.
// GET /api/canteen_reviews?canteen_id=&sort=
func (h *ReviewHandler) ListByCanteen(c *gin.Context) {
	raw := c.Query("canteen_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "canteen_id required"})
		return
	}
	canteenID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid canteen_id"})
		return
	}

	sortKey := strings.ToLower(c.Query("sort"))
	reviews, err := h.reviewService.ListByCanteen(c.Request.Context(), canteenID, sortKey)
	if err != nil {
		writeError(c, h.logger, "list canteen reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// ListMine serves the caller's own reviews, newest first.
// GET /api/my_reviews
func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not_logged_in"})
		return
	}

	reviews, err := h.reviewService.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, "list my reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// GetByIDs batch-fetches reviews, preserving the requested order.
// GET /api/reviews_by_ids?ids=1,2,3
func (h *ReviewHandler) GetByIDs(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ids parameter required"})
		return
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid ids parameter"})
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "reviews": []dto.ReviewView{}})
		return
	}

	reviews, err := h.reviewService.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		writeError(c, h.logger, "get reviews by ids", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// Submit creates a review from the submission form, storing any uploaded
// images first, then redirects back to the canteen page.
// POST /submit_review
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var imagePaths []string
	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			if file.Filename == "" || !h.store.Allowed(file.Filename) {
				continue
			}
			url, err := h.store.Save(file)
			if err != nil {
				h.logger.Warn("failed to save review image", "filename", file.Filename, "error", err)
				continue
			}
			imagePaths = append(imagePaths, url)
		}
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, req, imagePaths)
	if err != nil {
		writeError(c, h.logger, "submit review", err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/canteen/%d", review.CanteenID))
}

// Delete removes the caller's review and everything hanging off it.
// POST /review/:id/delete
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid review id"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID, userID); err != nil {
		writeError(c, h.logger, "delete review", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
