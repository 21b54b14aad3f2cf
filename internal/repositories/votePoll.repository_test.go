package repositories

import (
	"context"
	"testing"
	"time"

	. "mealvote/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Dish{},
		&VotePoll{},
		&CandidateDish{},
		&Vote{},
	))

	return db
}

func seedStaff(t *testing.T, db *gorm.DB) *User {
	t.Helper()

	hash := "$2a$10$notarealhash"
	user := &User{
		Name:         "Canteen Staff",
		Email:        "staff@example.com",
		PasswordHash: &hash,
		Role:         RoleStaff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedDish(t *testing.T, db *gorm.DB, staff *User, name string) *Dish {
	t.Helper()

	dish := &Dish{NameEN: name, CreatedByID: staff.ID}
	require.NoError(t, db.Create(dish).Error)
	return dish
}

func pendingPoll(staff *User, mealDate time.Time) *VotePoll {
	return &VotePoll{
		VoteDate:    datatypes.Date(mealDate.AddDate(0, 0, -1)),
		MealDate:    datatypes.Date(mealDate),
		CreatedByID: staff.ID,
	}
}

func TestCreateRejectsDuplicateMealDate(t *testing.T) {
	db := newTestDB(t)
	staff := seedStaff(t, db)
	repo := NewVotePollRepository(nil)
	ctx := context.Background()

	mealDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, db, pendingPoll(staff, mealDate)))

	err := repo.Create(ctx, db, pendingPoll(staff, mealDate))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDeleteFreesMealDateForResubmission(t *testing.T) {
	db := newTestDB(t)
	staff := seedStaff(t, db)
	dish := seedDish(t, db, staff, "Beef Lok Lak")
	repo := NewVotePollRepository(nil)
	ctx := context.Background()

	mealDate := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	first := pendingPoll(staff, mealDate)
	require.NoError(t, repo.Create(ctx, db, first))
	require.NoError(t, repo.ReplaceCandidates(ctx, db, first.ID, []uuid.UUID{dish.ID}))

	require.NoError(t, repo.Delete(ctx, db, first.ID))

	_, err := repo.GetByMealDate(ctx, db, mealDate)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The delete must release the mealDate unique index slot so staff can
	// submit a corrected poll for the same day.
	second := pendingPoll(staff, mealDate)
	assert.NoError(t, repo.Create(ctx, db, second))

	// No candidate rows of the deleted poll survive, not even soft-deleted.
	var leftover int64
	require.NoError(t, db.Unscoped().
		Model(&CandidateDish{}).
		Where("vote_poll_id = ?", first.ID).
		Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestDeleteUnknownPollReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewVotePollRepository(nil)

	err := repo.Delete(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatusRequiresExpectedPriorStatus(t *testing.T) {
	db := newTestDB(t)
	staff := seedStaff(t, db)
	repo := NewVotePollRepository(nil)
	ctx := context.Background()

	poll := pendingPoll(staff, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, db, poll))

	updated, err := repo.UpdateStatus(ctx, db, poll.ID, PollStatusPending, PollStatusOpen)
	require.NoError(t, err)
	assert.True(t, updated)

	// A second identical transition finds no pending poll and is a no-op.
	updated, err = repo.UpdateStatus(ctx, db, poll.ID, PollStatusPending, PollStatusOpen)
	require.NoError(t, err)
	assert.False(t, updated)

	var reloaded VotePoll
	require.NoError(t, db.First(&reloaded, "id = ?", poll.ID).Error)
	assert.Equal(t, PollStatusOpen, reloaded.Status)
}
