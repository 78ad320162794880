package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"campuseats/database"
	"campuseats/internal/httpapi/models"
	"campuseats/internal/httpapi/repository"
	"campuseats/internal/uploads"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPlaceholder = "https://example.com/placeholder.jpg"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own database, so keep one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *uploads.Store {
	t.Helper()
	store, err := uploads.NewStore(t.TempDir(), "/static/uploads/", newTestLogger())
	require.NoError(t, err)
	return store
}

// testEnv bundles the full service stack over one in-memory database.
type testEnv struct {
	db          *gorm.DB
	store       *uploads.Store
	reviews     ReviewService
	interaction InteractionService
	comments    CommentService
	activity    ActivityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	logger := newTestLogger()
	store := newTestStore(t)

	canteenRepo := repository.NewCanteenRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	activity := NewActivityService(activityRepo, logger)
	return &testEnv{
		db:    db,
		store: store,
		reviews: NewReviewService(
			reviewRepo, canteenRepo, commentRepo, reactionRepo,
			activity, store, testPlaceholder, logger,
		),
		interaction: NewInteractionService(reactionRepo, reviewRepo, activity, logger),
		comments:    NewCommentService(commentRepo, reviewRepo, activity),
		activity:    activity,
	}
}

func (e *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: username,
		Username: username,
		Email:    username + "@campus.edu",
		Password: "x",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedCanteen(t *testing.T, name string) *models.Canteen {
	t.Helper()
	canteen := &models.Canteen{Name: name, Location: "Block A"}
	require.NoError(t, e.db.Create(canteen).Error)
	return canteen
}

func (e *testEnv) seedReview(t *testing.T, userID string, canteenID int64, name string, price float64, rating, spice int, submitted time.Time) *models.Review {
	t.Helper()
	review := &models.Review{
		CanteenID:      canteenID,
		FoodName:       name,
		Price:          price,
		Rating:         rating,
		SpiceLevel:     spice,
		ImagePaths:     `["/static/uploads/seed.jpg"]`,
		UserID:         userID,
		SubmissionDate: submitted,
	}
	require.NoError(t, e.db.Create(review).Error)
	return review
}
