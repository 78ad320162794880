package models

type Canteen struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
}

func (Canteen) TableName() string {
	return "canteens"
}
