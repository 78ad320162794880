package repository

import (
	"context"

	"campuseats/internal/httpapi/models"

	"gorm.io/gorm"
)

// ActivityFeedEntry is one row of a user's activity feed joined against the
// current review state. FoodName is nil when the review has since been
// deleted; the entry still appears.
type ActivityFeedEntry struct {
	ActivityType string  `json:"activity_type"`
	ActivityTime string  `json:"activity_time"`
	FoodName     *string `json:"food_name"`
	ReviewID     *int64  `json:"review_id"`
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.UserActivity) error
	// DeleteMatching removes log rows for one (user, post, type) triple.
	DeleteMatching(ctx context.Context, userID string, postID int64, activityType string) error
	DeleteByPost(ctx context.Context, postID int64) error
	Feed(ctx context.Context, userID string, limit int) ([]ActivityFeedEntry, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) DeleteMatching(ctx context.Context, userID string, postID int64, activityType string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND activity_type = ?", userID, postID, activityType).
		Delete(&models.UserActivity{}).Error
}

func (r *activityRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.UserActivity{}).Error
}

func (r *activityRepository) Feed(ctx context.Context, userID string, limit int) ([]ActivityFeedEntry, error) {
	if !r.db.Migrator().HasTable(&models.UserActivity{}) {
		return nil, nil
	}

	var entries []ActivityFeedEntry
	err := r.db.WithContext(ctx).
		Table("user_activity").
		Select("user_activity.activity_type, user_activity.activity_time, food_reviews.food_name, food_reviews.id AS review_id").
		Joins("LEFT JOIN food_reviews ON user_activity.post_id = food_reviews.id").
		Where("user_activity.user_id = ?", userID).
		Order("user_activity.activity_time DESC, user_activity.id DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
