package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campuseats/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "busy")
	canteen := env.seedCanteen(t, "North Canteen")
	review := env.seedReview(t, user.ID, canteen.ID, "Laksa", 6.50, 4, 3, time.Now())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, activityType := range []string{models.ActivityReview, models.ActivityUpvote, models.ActivityComment} {
		require.NoError(t, env.db.Create(&models.UserActivity{
			UserID:       user.ID,
			PostID:       review.ID,
			ActivityType: activityType,
			ActivityTime: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	feed, err := env.activity.Feed(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, models.ActivityComment, feed[0].ActivityType)
	assert.Equal(t, models.ActivityReview, feed[2].ActivityType)
	require.NotNil(t, feed[0].FoodName)
	assert.Equal(t, "Laksa", *feed[0].FoodName)
}

func TestActivityFeedKeepsEntriesForDeletedReviews(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "busy")
	require.NoError(t, env.db.Create(&models.UserActivity{
		UserID:       user.ID,
		PostID:       12345, // review no longer exists
		ActivityType: models.ActivityUpvote,
		ActivityTime: time.Now(),
	}).Error)

	feed, err := env.activity.Feed(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Nil(t, feed[0].FoodName)
}

func TestActivityFeedLimit(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "busy")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < feedLimit+10; i++ {
		require.NoError(t, env.db.Create(&models.UserActivity{
			UserID:       user.ID,
			PostID:       int64(i + 1),
			ActivityType: models.ActivityUpvote,
			ActivityTime: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}

	feed, err := env.activity.Feed(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, feed, feedLimit)
}

func TestActivityFeedScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	for i, owner := range []*models.User{alice, bob, bob} {
		require.NoError(t, env.db.Create(&models.UserActivity{
			UserID:       owner.ID,
			PostID:       int64(i + 1),
			ActivityType: models.ActivityFavorite,
			ActivityTime: time.Now(),
		}).Error)
	}

	feed, err := env.activity.Feed(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestActivityFeedEmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)

	user := env.seedUser(t, "quiet")
	feed, err := env.activity.Feed(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestActivityPurge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "busy")
	for post := int64(1); post <= 2; post++ {
		for _, activityType := range []string{models.ActivityReview, models.ActivityUpvote} {
			require.NoError(t, env.db.Create(&models.UserActivity{
				UserID:       user.ID,
				PostID:       post,
				ActivityType: activityType,
				ActivityTime: time.Now(),
			}).Error)
		}
	}

	require.NoError(t, env.activity.Purge(ctx, 1))

	var remaining []models.UserActivity
	require.NoError(t, env.db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, row := range remaining {
		assert.Equal(t, int64(2), row.PostID, fmt.Sprintf("unexpected row %+v", row))
	}
}
