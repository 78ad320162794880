package dto

import "campuseats/internal/httpapi/models"

// RegisterRequest is the multipart registration form; the optional profile
// picture travels alongside as a file part.
type RegisterRequest struct {
	FullName  string `form:"full_name" binding:"required"`
	Username  string `form:"username" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=8"`
	StudentID string `form:"student_id"`
}

type LoginRequest struct {
	Identifier string `form:"identifier" binding:"required"`
	Password   string `form:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
	}
}

// MeResponse reports the caller's identity plus the review ids they have
// favorited and upvoted, so the frontend can render toggle state.
type MeResponse struct {
	LoggedIn        bool    `json:"logged_in"`
	UserID          string  `json:"user_id,omitempty"`
	Username        string  `json:"username,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	Favorites       []int64 `json:"favorites,omitempty"`
	Upvoted         []int64 `json:"upvoted,omitempty"`
}
