package repository

import (
	"context"

	"campuseats/internal/httpapi/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// Delete removes the comment only if userID owns it; returns rows removed.
	Delete(ctx context.Context, id int64, userID string) (int64, error)
	ListByReview(ctx context.Context, reviewID int64) ([]models.Comment, error)
	ListByReviewIDs(ctx context.Context, reviewIDs []int64) ([]models.Comment, error)
	DeleteByReview(ctx context.Context, reviewID int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

// ListByReview returns a review's comments oldest-first.
func (r *commentRepository) ListByReview(ctx context.Context, reviewID int64) ([]models.Comment, error) {
	if !r.db.Migrator().HasTable(&models.Comment{}) {
		return nil, nil
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByReviewIDs batches comment loading for a feed of reviews so the
// aggregator avoids one query per review. Order matches ListByReview.
func (r *commentRepository) ListByReviewIDs(ctx context.Context, reviewIDs []int64) ([]models.Comment, error) {
	if len(reviewIDs) == 0 || !r.db.Migrator().HasTable(&models.Comment{}) {
		return nil, nil
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) DeleteByReview(ctx context.Context, reviewID int64) error {
	return r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&models.Comment{}).Error
}
