package repository

import (
	"context"
	"fmt"

	"campuseats/internal/httpapi/models"

	"gorm.io/gorm"
)

// ReactionRepository is the set-membership store behind upvote and favorite
// toggles. A (user, review) pair is either in the set or not; the composite
// unique index on each table is the only guard against concurrent toggles.
type ReactionRepository interface {
	Exists(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) (bool, error)
	Add(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) error
	Remove(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) error
	Count(ctx context.Context, kind models.ReactionKind, reviewID int64) (int64, error)
	CountByReviewIDs(ctx context.Context, kind models.ReactionKind, reviewIDs []int64) (map[int64]int64, error)
	ReviewIDsForUser(ctx context.Context, kind models.ReactionKind, userID string) ([]int64, error)
	RemoveByReview(ctx context.Context, kind models.ReactionKind, reviewID int64) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) model(kind models.ReactionKind) (interface{}, error) {
	switch kind {
	case models.ReactionUpvote:
		return &models.Upvote{}, nil
	case models.ReactionFavorite:
		return &models.Favorite{}, nil
	default:
		return nil, fmt.Errorf("unknown reaction kind %q", kind)
	}
}

func (r *reactionRepository) hasTable(kind models.ReactionKind) bool {
	model, err := r.model(kind)
	if err != nil {
		return false
	}
	return r.db.Migrator().HasTable(model)
}

func (r *reactionRepository) Exists(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) (bool, error) {
	model, err := r.model(kind)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reactionRepository) Add(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) error {
	switch kind {
	case models.ReactionUpvote:
		return r.db.WithContext(ctx).Create(&models.Upvote{UserID: userID, ReviewID: reviewID}).Error
	case models.ReactionFavorite:
		return r.db.WithContext(ctx).Create(&models.Favorite{UserID: userID, ReviewID: reviewID}).Error
	default:
		return fmt.Errorf("unknown reaction kind %q", kind)
	}
}

func (r *reactionRepository) Remove(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) error {
	model, err := r.model(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(model).Error
}

// Count returns the live row count for a review, never a cached value.
func (r *reactionRepository) Count(ctx context.Context, kind models.ReactionKind, reviewID int64) (int64, error) {
	model, err := r.model(kind)
	if err != nil {
		return 0, err
	}
	if !r.hasTable(kind) {
		return 0, nil
	}

	var count int64
	err = r.db.WithContext(ctx).Model(model).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

// CountByReviewIDs aggregates counts for a batch of reviews in one query.
// Reviews with no rows are absent from the returned map.
func (r *reactionRepository) CountByReviewIDs(ctx context.Context, kind models.ReactionKind, reviewIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(reviewIDs))
	if len(reviewIDs) == 0 || !r.hasTable(kind) {
		return counts, nil
	}

	model, err := r.model(kind)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ReviewID int64
		Total    int64
	}
	err = r.db.WithContext(ctx).Model(model).
		Select("review_id, COUNT(*) as total").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Total
	}
	return counts, nil
}

func (r *reactionRepository) ReviewIDsForUser(ctx context.Context, kind models.ReactionKind, userID string) ([]int64, error) {
	if !r.hasTable(kind) {
		return nil, nil
	}

	model, err := r.model(kind)
	if err != nil {
		return nil, err
	}

	var ids []int64
	err = r.db.WithContext(ctx).Model(model).
		Where("user_id = ?", userID).
		Pluck("review_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *reactionRepository) RemoveByReview(ctx context.Context, kind models.ReactionKind, reviewID int64) error {
	model, err := r.model(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(model).Error
}
