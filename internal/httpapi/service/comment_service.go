package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campuseats/internal/httpapi/dto"
	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, userID string, reviewID int64, text string) (*dto.CommentView, error)
	Delete(ctx context.Context, commentID int64, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	activity    ActivityService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	activity ActivityService,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		activity:    activity,
	}
}

func (s *commentService) Create(ctx context.Context, userID string, reviewID int64, text string) (*dto.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrValidation)
	}

	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		ReviewID:    reviewID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, userID, reviewID, models.ActivityComment)

	// Reload with author data for the response.
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	view := dto.FromModelToCommentView(comment)
	return &view, nil
}

// Delete removes a comment owned by the caller. The ownership check and the
// delete run as one guarded statement.
func (s *commentService) Delete(ctx context.Context, commentID int64, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrNotFound // do not reveal foreign comment ids
	}

	rows, err := s.commentRepo.Delete(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.activity.Unrecord(ctx, userID, comment.ReviewID, models.ActivityComment)
	return nil
}
