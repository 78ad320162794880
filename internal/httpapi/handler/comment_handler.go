package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	logger         *slog.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// RegisterRoutes registers comment routes
func (h *CommentHandler) RegisterRoutes(router *gin.Engine, authRequired gin.HandlerFunc) {
	router.POST("/comment/:id", authRequired, h.Create)
	router.POST("/comment/:id/delete", authRequired, h.Delete)
}

// Create posts a comment on a review.
// POST /comment/:id
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req dto.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, reviewID, req.Comment)
	if err != nil {
		writeError(c, h.logger, "create comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment posted successfully", "comment": comment})
}

// Delete removes the caller's own comment.
// POST /comment/:id/delete
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid comment id"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, userID); err != nil {
		writeError(c, h.logger, "delete comment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}
