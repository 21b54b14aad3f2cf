package voteController

import (
	"context"
	"testing"
	"time"

	"mealvote/config"
	"mealvote/internal/database"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/services"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestController(t *testing.T) (VoteControllerInterface, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&User{},
		&Dish{},
		&VotePoll{},
		&CandidateDish{},
		&Vote{},
	))

	db := database.DB{SQL: gdb}
	controller := New(
		repositories.Repository{
			Vote:     repositories.NewVoteRepository(),
			VotePoll: repositories.NewVotePollRepository(nil),
		},
		services.Service{Transaction: services.NewTransactionService(db)},
		config.Config{},
		db,
		time.UTC,
	)

	return controller, gdb
}

func seedUser(t *testing.T, db *gorm.DB, email string, role Role) *User {
	t.Helper()

	hash := "$2a$10$notarealhash"
	user := &User{Name: "Test User", Email: email, PasswordHash: &hash, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedOpenPoll puts a poll with one candidate dish into today's voting window.
func seedOpenPoll(t *testing.T, db *gorm.DB) (*VotePoll, *Dish) {
	t.Helper()

	staff := seedUser(t, db, "staff@example.com", RoleStaff)

	dish := &Dish{NameEN: "Fish Amok", CreatedByID: staff.ID}
	require.NoError(t, db.Create(dish).Error)

	today := time.Now().UTC()
	poll := &VotePoll{
		VoteDate:    datatypes.Date(today),
		MealDate:    datatypes.Date(today.AddDate(0, 0, 1)),
		CreatedByID: staff.ID,
	}
	require.NoError(t, db.Create(poll).Error)
	require.NoError(t, db.Create(&CandidateDish{VotePollID: poll.ID, DishID: dish.ID}).Error)

	// Polls are born pending; flip the column directly to simulate the
	// scheduler having opened the window.
	require.NoError(t, db.Model(&VotePoll{}).
		Where("id = ?", poll.ID).
		Update("status", PollStatusOpen).Error)

	return poll, dish
}

func TestCastVoteRecordsBallot(t *testing.T) {
	controller, db := newTestController(t)
	poll, dish := seedOpenPoll(t, db)
	voter := seedUser(t, db, "voter@example.com", RoleVoter)

	vote, err := controller.CastVote(context.Background(), voter, &CastVoteRequest{DishID: dish.ID})
	require.NoError(t, err)
	assert.Equal(t, poll.ID, vote.VotePollID)
	assert.Equal(t, dish.ID, vote.DishID)
}

func TestCastVoteRejectsSecondBallot(t *testing.T) {
	controller, db := newTestController(t)
	_, dish := seedOpenPoll(t, db)
	voter := seedUser(t, db, "voter@example.com", RoleVoter)

	_, err := controller.CastVote(context.Background(), voter, &CastVoteRequest{DishID: dish.ID})
	require.NoError(t, err)

	_, err = controller.CastVote(context.Background(), voter, &CastVoteRequest{DishID: dish.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&Vote{}).Where("user_id = ?", voter.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCastVoteRejectsNonCandidateDish(t *testing.T) {
	controller, db := newTestController(t)
	seedOpenPoll(t, db)
	voter := seedUser(t, db, "voter@example.com", RoleVoter)

	_, err := controller.CastVote(context.Background(), voter, &CastVoteRequest{DishID: uuid.New()})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCastVoteWithoutOpenPoll(t *testing.T) {
	controller, db := newTestController(t)
	voter := seedUser(t, db, "voter@example.com", RoleVoter)

	_, err := controller.CastVote(context.Background(), voter, &CastVoteRequest{DishID: uuid.New()})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestIsCandidate(t *testing.T) {
	dishA := uuid.Must(uuid.NewV7())
	dishB := uuid.Must(uuid.NewV7())
	stranger := uuid.Must(uuid.NewV7())

	poll := &VotePoll{
		Candidates: []CandidateDish{
			{DishID: dishA},
			{DishID: dishB},
		},
	}

	assert.True(t, isCandidate(poll, dishA))
	assert.True(t, isCandidate(poll, dishB))
	assert.False(t, isCandidate(poll, stranger))
	assert.False(t, isCandidate(&VotePoll{}, dishA))
}
