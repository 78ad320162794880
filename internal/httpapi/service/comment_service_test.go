package service

import (
	"context"
	"testing"
	"time"

	"campuseats/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	commenter := env.seedUser(t, "commenter")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	view, err := env.comments.Create(ctx, commenter.ID, review.ID, "  Rich broth  ")
	require.NoError(t, err)
	assert.Equal(t, "Rich broth", view.Text)
	assert.Equal(t, "commenter", view.Author)
	assert.Equal(t, commenter.ID, view.UserID)
	assert.NotEmpty(t, view.Date)

	var logged int64
	require.NoError(t, env.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND post_id = ? AND activity_type = ?", commenter.ID, review.ID, models.ActivityComment).
		Count(&logged).Error)
	assert.Equal(t, int64(1), logged)
}

func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	_, err := env.comments.Create(ctx, author.ID, review.ID, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.comments.Create(ctx, author.ID, 999, "Hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	commenter := env.seedUser(t, "commenter")
	stranger := env.seedUser(t, "stranger")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	view, err := env.comments.Create(ctx, commenter.ID, review.ID, "Rich broth")
	require.NoError(t, err)

	// Someone else's comment reads as absent, not as forbidden.
	assert.ErrorIs(t, env.comments.Delete(ctx, view.ID, stranger.ID), ErrNotFound)

	require.NoError(t, env.comments.Delete(ctx, view.ID, commenter.ID))

	var remaining int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)

	// The mirrored activity entry is withdrawn with the comment.
	var logged int64
	require.NoError(t, env.db.Model(&models.UserActivity{}).
		Where("activity_type = ?", models.ActivityComment).
		Count(&logged).Error)
	assert.Equal(t, int64(0), logged)

	assert.ErrorIs(t, env.comments.Delete(ctx, view.ID, commenter.ID), ErrNotFound)
}
