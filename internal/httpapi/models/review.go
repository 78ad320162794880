package models

import "time"

// Review is a food review scoped to a canteen. ImagePaths holds a
// JSON-encoded list of image URLs; older rows may carry a comma-separated
// string instead, which the read path tolerates.
type Review struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CanteenID      int64     `json:"canteen_id" gorm:"not null;index"`
	FoodName       string    `json:"food_name" gorm:"not null"`
	Price          float64   `json:"price" gorm:"not null;default:0;check:price >= 0"`
	Rating         int       `json:"rating" gorm:"not null;default:0"`
	SpiceLevel     int       `json:"spice_level" gorm:"not null;default:0"`
	ReviewText     string    `json:"review_text" gorm:"type:text"`
	ImagePaths     string    `json:"image_paths" gorm:"type:text"`
	UserID         string    `json:"user_id" gorm:"type:uuid;not null;index"`
	SubmissionDate time.Time `json:"submission_date" gorm:"autoCreateTime"`

	// Associations
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Canteen Canteen `json:"canteen,omitempty" gorm:"foreignKey:CanteenID"`
}

func (Review) TableName() string {
	return "food_reviews"
}
