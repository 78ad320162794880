package models

import "time"

// Activity types mirrored into the user_activity feed.
const (
	ActivityReview   = "review"
	ActivityUpvote   = "upvote"
	ActivityFavorite = "favorite"
	ActivityComment  = "comment"
)

// UserActivity is an append-only action log. Rows are written and removed
// best-effort alongside the action they describe; a failure here must never
// fail the primary operation.
type UserActivity struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       string    `json:"user_id" gorm:"type:uuid;not null;index"`
	PostID       int64     `json:"post_id" gorm:"not null"`
	ActivityType string    `json:"activity_type" gorm:"not null;size:20"`
	ActivityTime time.Time `json:"activity_time" gorm:"autoCreateTime"`
}

func (UserActivity) TableName() string {
	return "user_activity"
}
