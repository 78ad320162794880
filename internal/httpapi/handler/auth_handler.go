package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/service"
	"campuseats/internal/uploads"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	interaction service.InteractionService
	store       *uploads.Store
	logger      *slog.Logger
}

func NewAuthHandler(authService service.AuthService, interaction service.InteractionService, store *uploads.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		interaction: interaction,
		store:       store,
		logger:      logger,
	}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, authRequired, authOptional gin.HandlerFunc) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/refresh", h.Refresh)
	router.POST("/logout", authRequired, h.Logout)
	router.GET("/api/me", authOptional, h.Me)
}

// Register creates a new account from the registration form. An optional
// profile picture is stored in the upload directory.
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var profileImageURL *string
	if file, err := c.FormFile("profile_pic"); err == nil && h.store.Allowed(file.Filename) {
		url, err := h.store.Save(file)
		if err != nil {
			h.logger.Warn("failed to save profile picture", "error", err)
		} else {
			profileImageURL = &url
		}
	}

	var studentID *string
	if req.StudentID != "" {
		studentID = &req.StudentID
	}

	user, err := h.authService.Register(service.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		StudentID:       studentID,
		ProfileImageURL: profileImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNameInUse) || errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		writeError(c, h.logger, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": dto.FromModelToUserResponse(user)})
}

// Login authenticates by username or email.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}
		writeError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.FromModelToUserResponse(user),
	})
}

// Refresh exchanges a refresh token for a new access token.
// POST /refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout invalidates the caller's refresh tokens.
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		writeError(c, h.logger, "logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me reports the caller's identity plus their favorited and upvoted review
// ids. Anonymous callers get logged_in=false rather than a 401.
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusOK, dto.MeResponse{LoggedIn: false})
		return
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		writeError(c, h.logger, "me", err)
		return
	}

	favorites, err := h.interaction.IDsForUser(c.Request.Context(), models.ReactionFavorite, userID)
	if err != nil {
		writeError(c, h.logger, "me", err)
		return
	}
	upvoted, err := h.interaction.IDsForUser(c.Request.Context(), models.ReactionUpvote, userID)
	if err != nil {
		writeError(c, h.logger, "me", err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		LoggedIn:        true,
		UserID:          user.ID,
		Username:        user.Username,
		ProfileImageURL: user.ProfileImageURL,
		Favorites:       favorites,
		Upvoted:         upvoted,
	})
}
