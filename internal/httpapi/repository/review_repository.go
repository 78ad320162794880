package repository

import (
	"context"

	"campuseats/internal/httpapi/models"

	"gorm.io/gorm"
)

// Sort keys accepted by the review feed. Anything else falls back to newest.
const (
	SortNewest    = "newest"
	SortUpvotes   = "upvotes"
	SortPopular   = "popular"
	SortSpiceDesc = "spice_desc"
	SortSpiceAsc  = "spice_asc"
	SortPriceAsc  = "price_asc"
	SortPrice     = "price" // frontend alias for price_asc
	SortPriceDesc = "price_desc"
)

// orderClauses maps column-backed sort keys to their SQL ORDER BY clause.
// Upvote-based keys (upvotes, popular) are resolved in the service layer
// because they order by a live aggregate, not a stored column.
var orderClauses = map[string]string{
	SortNewest:    "submission_date DESC",
	SortSpiceDesc: "spice_level DESC",
	SortSpiceAsc:  "spice_level ASC",
	SortPriceAsc:  "price ASC",
	SortPrice:     "price ASC",
	SortPriceDesc: "price DESC",
}

// OrderClause resolves a sort key to a SQL ORDER BY clause, defaulting to
// newest-first for unknown keys and for the aggregate-backed keys.
func OrderClause(sortKey string) string {
	if clause, ok := orderClauses[sortKey]; ok {
		return clause
	}
	return orderClauses[SortNewest]
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByCanteen(ctx context.Context, canteenID int64, sortKey string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Review, error)
	// Delete removes the review row guarded by ownership in the same
	// statement. Returns the number of rows removed.
	Delete(ctx context.Context, id int64, userID string) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Where("id = ?", id).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByCanteen(ctx context.Context, canteenID int64, sortKey string) ([]models.Review, error) {
	// Deployments migrated before the review schema existed serve an
	// empty feed rather than an error.
	if !r.db.Migrator().HasTable(&models.Review{}) {
		return nil, nil
	}

	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("canteen_id = ?", canteenID).
		Preload("User").
		Order(OrderClause(sortKey)).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	if !r.db.Migrator().HasTable(&models.Review{}) {
		return nil, nil
	}

	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Order("submission_date DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if !r.db.Migrator().HasTable(&models.Review{}) {
		return nil, nil
	}

	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Preload("User").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Review{})
	return result.RowsAffected, result.Error
}
