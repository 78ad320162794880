package models

import "time"

// ReactionKind selects which set-membership table a toggle acts on.
type ReactionKind string

const (
	ReactionUpvote   ReactionKind = "upvote"
	ReactionFavorite ReactionKind = "favorite"
)

// ActivityType returns the activity-log type mirrored for this kind.
func (k ReactionKind) ActivityType() string {
	return string(k)
}

// Upvote and Favorite are set-membership rows: the (user_id, review_id)
// pair either exists or it does not, and the composite unique index is the
// backstop against concurrent double-toggles. Counts are never stored.

type Upvote struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_upvote_user_review"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_upvote_user_review;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Upvote) TableName() string {
	return "upvotes"
}

type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_review"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_favorite_user_review;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
