package service

import (
	"context"
	"testing"
	"time"

	"campuseats/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleUpvoteOnOff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	voter := env.seedUser(t, "voter")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	active, count, err := env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, int64(1), count)

	// Toggling again removes the row and returns to the starting state.
	active, count, err = env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, int64(0), count)

	var rows int64
	require.NoError(t, env.db.Model(&models.Upvote{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}

func TestToggleCountMatchesRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	for i := 0; i < 3; i++ {
		voter := env.seedUser(t, "voter"+string(rune('a'+i)))
		_, count, err := env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), count)
	}

	var rows int64
	require.NoError(t, env.db.Model(&models.Upvote{}).Where("review_id = ?", review.ID).Count(&rows).Error)
	assert.Equal(t, int64(3), rows)
}

func TestToggleOwnReviewRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	_, _, err := env.interaction.Toggle(ctx, models.ReactionUpvote, author.ID, review.ID)
	assert.ErrorIs(t, err, ErrSelfAction)

	_, _, err = env.interaction.Toggle(ctx, models.ReactionFavorite, author.ID, review.ID)
	assert.ErrorIs(t, err, ErrSelfAction)
}

func TestToggleMissingReview(t *testing.T) {
	env := newTestEnv(t)

	voter := env.seedUser(t, "voter")
	_, _, err := env.interaction.Toggle(context.Background(), models.ReactionFavorite, voter.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteIndependentOfUpvote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	voter := env.seedUser(t, "voter")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	_, _, err := env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
	require.NoError(t, err)

	active, count, err := env.interaction.Toggle(ctx, models.ReactionFavorite, voter.ID, review.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, int64(1), count)

	// Removing the favorite leaves the upvote in place.
	_, _, err = env.interaction.Toggle(ctx, models.ReactionFavorite, voter.ID, review.ID)
	require.NoError(t, err)

	ids, err := env.interaction.IDsForUser(ctx, models.ReactionUpvote, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{review.ID}, ids)

	ids, err = env.interaction.IDsForUser(ctx, models.ReactionFavorite, voter.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleWritesActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "author")
	voter := env.seedUser(t, "voter")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, author.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	_, _, err := env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
	require.NoError(t, err)

	var logged int64
	require.NoError(t, env.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", voter.ID, models.ActivityUpvote).
		Count(&logged).Error)
	assert.Equal(t, int64(1), logged)

	// Toggling off removes the matching log entry.
	_, _, err = env.interaction.Toggle(ctx, models.ReactionUpvote, voter.ID, review.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.UserActivity{}).
		Where("user_id = ? AND activity_type = ?", voter.ID, models.ActivityUpvote).
		Count(&logged).Error)
	assert.Equal(t, int64(0), logged)
}
