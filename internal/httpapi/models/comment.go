package models

import "time"

type Comment struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID    int64     `json:"review_id" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CommentText string    `json:"comment_text" gorm:"not null;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Review Review `json:"review,omitempty" gorm:"foreignKey:ReviewID"`
}

func (Comment) TableName() string {
	return "comments"
}
