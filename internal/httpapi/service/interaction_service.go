package service

import (
	"context"
	"errors"
	"log/slog"

	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"

	"gorm.io/gorm"
)

// InteractionService implements the upvote/favorite toggle: row presence is
// the on/off state, counts are always computed fresh, and a user can never
// react to their own review. There is no in-process locking; the unique
// (user, review) index in the store settles races.
type InteractionService interface {
	Toggle(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) (active bool, count int64, err error)
	IDsForUser(ctx context.Context, kind models.ReactionKind, userID string) ([]int64, error)
}

type interactionService struct {
	reactionRepo repository.ReactionRepository
	reviewRepo   repository.ReviewRepository
	activity     ActivityService
	logger       *slog.Logger
}

func NewInteractionService(
	reactionRepo repository.ReactionRepository,
	reviewRepo repository.ReviewRepository,
	activity ActivityService,
	logger *slog.Logger,
) InteractionService {
	return &interactionService{
		reactionRepo: reactionRepo,
		reviewRepo:   reviewRepo,
		activity:     activity,
		logger:       logger,
	}
}

func (s *interactionService) Toggle(ctx context.Context, kind models.ReactionKind, userID string, reviewID int64) (bool, int64, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	exists, err := s.reactionRepo.Exists(ctx, kind, userID, reviewID)
	if err != nil {
		return false, 0, err
	}

	var active bool
	if exists {
		if err := s.reactionRepo.Remove(ctx, kind, userID, reviewID); err != nil {
			return false, 0, err
		}
		s.activity.Unrecord(ctx, userID, reviewID, kind.ActivityType())
		active = false
	} else {
		if review.UserID == userID {
			return false, 0, ErrSelfAction
		}
		if err := s.reactionRepo.Add(ctx, kind, userID, reviewID); err != nil {
			return false, 0, err
		}
		s.activity.Record(ctx, userID, reviewID, kind.ActivityType())
		active = true
	}

	// The returned count is a fresh aggregate, never maintained in place.
	count, err := s.reactionRepo.Count(ctx, kind, reviewID)
	if err != nil {
		return false, 0, err
	}
	return active, count, nil
}

func (s *interactionService) IDsForUser(ctx context.Context, kind models.ReactionKind, userID string) ([]int64, error) {
	ids, err := s.reactionRepo.ReviewIDsForUser(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
