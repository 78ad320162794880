package service

import (
	"context"
	"log/slog"

	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"
)

// feedLimit caps the activity feed at the most recent entries.
const feedLimit = 50

// ActivityService keeps the append-only action log. Record and Unrecord are
// fire-and-forget: failures are logged and swallowed so the log can never
// break the action it describes.
type ActivityService interface {
	Record(ctx context.Context, userID string, postID int64, activityType string)
	Unrecord(ctx context.Context, userID string, postID int64, activityType string)
	// Purge drops every log row referencing a post, for review deletion.
	Purge(ctx context.Context, postID int64) error
	Feed(ctx context.Context, userID string) ([]repository.ActivityFeedEntry, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	logger       *slog.Logger
}

func NewActivityService(activityRepo repository.ActivityRepository, logger *slog.Logger) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *activityService) Record(ctx context.Context, userID string, postID int64, activityType string) {
	activity := &models.UserActivity{
		UserID:       userID,
		PostID:       postID,
		ActivityType: activityType,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record user activity",
			"user_id", userID, "post_id", postID, "activity_type", activityType, "error", err)
	}
}

func (s *activityService) Unrecord(ctx context.Context, userID string, postID int64, activityType string) {
	if err := s.activityRepo.DeleteMatching(ctx, userID, postID, activityType); err != nil {
		s.logger.Warn("failed to remove user activity",
			"user_id", userID, "post_id", postID, "activity_type", activityType, "error", err)
	}
}

func (s *activityService) Purge(ctx context.Context, postID int64) error {
	return s.activityRepo.DeleteByPost(ctx, postID)
}

func (s *activityService) Feed(ctx context.Context, userID string) ([]repository.ActivityFeedEntry, error) {
	entries, err := s.activityRepo.Feed(ctx, userID, feedLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []repository.ActivityFeedEntry{}
	}
	return entries, nil
}
