package dto

import (
	"campuseats/internal/httpapi/imageset"
	"campuseats/internal/httpapi/models"
)

// CreateReviewRequest carries the submit-review form. Numeric fields arrive
// as raw strings and are coerced in the service: a malformed price fails
// validation, malformed rating or spice level silently becomes 0.
type CreateReviewRequest struct {
	FoodName   string `form:"food_name"`
	Price      string `form:"price"`
	Rating     string `form:"rating"`
	SpiceLevel string `form:"spice_level"`
	Review     string `form:"review"`
	CanteenID  string `form:"canteen_id"`
}

// ReviewView is the aggregated read projection of a review: author name,
// live upvote count and the ordered comment thread, ready for API output.
type ReviewView struct {
	ID         int64         `json:"id"`
	CanteenID  int64         `json:"canteen_id"`
	Images     []string      `json:"images"`
	Image      string        `json:"image"`
	Name       string        `json:"name"`
	Rating     int           `json:"rating"`
	Price      float64       `json:"price"`
	SpiceLevel int           `json:"spiceLevel"`
	Author     string        `json:"author"`
	AuthorID   string        `json:"author_id"`
	Upvotes    int64         `json:"upvotes"`
	Review     string        `json:"review"`
	Comments   []CommentView `json:"comments"`
}

// FromModelToReviewView builds the aggregated projection for one review.
func FromModelToReviewView(review *models.Review, upvotes int64, comments []models.Comment, placeholderImage string) ReviewView {
	images, _ := imageset.Parse(review.ImagePaths, placeholderImage)

	author := review.User.Username
	if author == "" {
		author = "Unknown"
	}

	commentViews := make([]CommentView, 0, len(comments))
	for i := range comments {
		commentViews = append(commentViews, FromModelToCommentView(&comments[i]))
	}

	return ReviewView{
		ID:         review.ID,
		CanteenID:  review.CanteenID,
		Images:     images,
		Image:      images[0],
		Name:       review.FoodName,
		Rating:     review.Rating,
		Price:      review.Price,
		SpiceLevel: review.SpiceLevel,
		Author:     author,
		AuthorID:   review.UserID,
		Upvotes:    upvotes,
		Review:     review.ReviewText,
		Comments:   commentViews,
	}
}
