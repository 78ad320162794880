package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/imageset"
	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"
	"campuseats/internal/uploads"

	"gorm.io/gorm"
)

// ReviewService is the review aggregator and lifecycle manager: it builds
// the joined read projection (author, live upvote count, ordered comments)
// and owns create/delete with their cascading cleanup.
type ReviewService interface {
	ListByCanteen(ctx context.Context, canteenID int64, sortKey string) ([]dto.ReviewView, error)
	ListMine(ctx context.Context, userID string) ([]dto.ReviewView, error)
	GetByIDs(ctx context.Context, ids []int64) ([]dto.ReviewView, error)
	Create(ctx context.Context, userID string, req dto.CreateReviewRequest, imagePaths []string) (*models.Review, error)
	Delete(ctx context.Context, reviewID int64, requesterID string) error
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	canteenRepo  repository.CanteenRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
	activity     ActivityService
	store        *uploads.Store
	placeholder  string
	logger       *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	canteenRepo repository.CanteenRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
	activity ActivityService,
	store *uploads.Store,
	placeholderImageURL string,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		canteenRepo:  canteenRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		activity:     activity,
		store:        store,
		placeholder:  placeholderImageURL,
		logger:       logger,
	}
}

// ListByCanteen returns the aggregated review feed for a canteen. Column
// sorts are pushed to SQL; upvote-based sorts order over the live counts
// fetched for the projection anyway.
func (s *reviewService) ListByCanteen(ctx context.Context, canteenID int64, sortKey string) ([]dto.ReviewView, error) {
	reviews, err := s.reviewRepo.ListByCanteen(ctx, canteenID, sortKey)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, reviews)
	if err != nil {
		return nil, err
	}

	switch sortKey {
	case repository.SortUpvotes:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Upvotes > views[j].Upvotes
		})
	case repository.SortPopular:
		sort.SliceStable(views, func(i, j int) bool {
			if views[i].Upvotes != views[j].Upvotes {
				return views[i].Upvotes > views[j].Upvotes
			}
			return views[i].Rating > views[j].Rating
		})
	}
	return views, nil
}

func (s *reviewService) ListMine(ctx context.Context, userID string) ([]dto.ReviewView, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, reviews)
}

// GetByIDs fetches a batch of reviews and returns them in the order the ids
// were given, skipping ids that no longer exist.
func (s *reviewService) GetByIDs(ctx context.Context, ids []int64) ([]dto.ReviewView, error) {
	reviews, err := s.reviewRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Review, len(reviews))
	for _, review := range reviews {
		byID[review.ID] = review
	}

	ordered := make([]models.Review, 0, len(reviews))
	for _, id := range ids {
		if review, ok := byID[id]; ok {
			ordered = append(ordered, review)
		}
	}
	return s.buildViews(ctx, ordered)
}

// buildViews assembles the read projection for a set of reviews with one
// batched query per joined concern instead of one per review.
func (s *reviewService) buildViews(ctx context.Context, reviews []models.Review) ([]dto.ReviewView, error) {
	views := make([]dto.ReviewView, 0, len(reviews))
	if len(reviews) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(reviews))
	for _, review := range reviews {
		ids = append(ids, review.ID)
	}

	counts, err := s.reactionRepo.CountByReviewIDs(ctx, models.ReactionUpvote, ids)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByReviewIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByReview := make(map[int64][]models.Comment)
	for _, comment := range comments {
		commentsByReview[comment.ReviewID] = append(commentsByReview[comment.ReviewID], comment)
	}

	for i := range reviews {
		review := &reviews[i]
		views = append(views, dto.FromModelToReviewView(
			review,
			counts[review.ID],
			commentsByReview[review.ID],
			s.placeholder,
		))
	}
	return views, nil
}

// Create validates and persists a new review. food_name and canteen are
// required; a malformed price is a validation failure while malformed
// rating or spice level silently coerce to 0.
func (s *reviewService) Create(ctx context.Context, userID string, req dto.CreateReviewRequest, imagePaths []string) (*models.Review, error) {
	foodName := strings.TrimSpace(req.FoodName)
	if foodName == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrValidation)
	}

	canteenRaw := strings.TrimSpace(req.CanteenID)
	if canteenRaw == "" || canteenRaw == "null" {
		return nil, fmt.Errorf("%w: please select a canteen", ErrValidation)
	}
	canteenID, err := strconv.ParseInt(canteenRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid canteen id", ErrValidation)
	}
	if _, err := s.canteenRepo.GetByID(ctx, canteenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: canteen not found", ErrValidation)
		}
		return nil, err
	}

	price := 0.0
	if raw := strings.TrimSpace(req.Price); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price must be a number", ErrValidation)
		}
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	encodedImages, err := imageset.Encode(imagePaths, s.placeholder)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		CanteenID:  canteenID,
		FoodName:   foodName,
		Price:      price,
		Rating:     coerceInt(req.Rating),
		SpiceLevel: coerceInt(req.SpiceLevel),
		ReviewText: req.Review,
		ImagePaths: encodedImages,
		UserID:     userID,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, review.ID, models.ActivityReview)
	return review, nil
}

// Delete removes a review owned by the requester along with its dependent
// rows. Each dependent cleanup runs in its own failure boundary; only the
// review row itself is load-bearing. Locally stored images are removed
// after the row is gone.
func (s *reviewService) Delete(ctx context.Context, reviewID int64, requesterID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if review.UserID != requesterID {
		return ErrForbidden
	}

	images, _ := imageset.Parse(review.ImagePaths, s.placeholder)

	if err := s.reactionRepo.RemoveByReview(ctx, models.ReactionUpvote, reviewID); err != nil {
		s.logger.Warn("failed to delete upvotes for review", "review_id", reviewID, "error", err)
	}
	if err := s.reactionRepo.RemoveByReview(ctx, models.ReactionFavorite, reviewID); err != nil {
		s.logger.Warn("failed to delete favorites for review", "review_id", reviewID, "error", err)
	}
	if err := s.activity.Purge(ctx, reviewID); err != nil {
		s.logger.Warn("failed to delete activity for review", "review_id", reviewID, "error", err)
	}
	if err := s.commentRepo.DeleteByReview(ctx, reviewID); err != nil {
		s.logger.Warn("failed to delete comments for review", "review_id", reviewID, "error", err)
	}

	// Ownership is re-checked inside the delete statement itself.
	rows, err := s.reviewRepo.Delete(ctx, reviewID, requesterID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.store.RemoveAll(images)
	return nil
}

// coerceInt parses a form integer, defaulting to 0 when missing or
// malformed. Bad rating and spice values never fail a submission.
func coerceInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
