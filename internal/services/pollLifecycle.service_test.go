package services

import (
	"context"
	"testing"
	"time"

	"mealvote/internal/database"
	"mealvote/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPollRepo serves canned polls and records every UpdateStatus call, so
// lifecycle behavior can be checked without a database.
type stubPollRepo struct {
	polls         []*models.VotePoll
	updateResults map[uuid.UUID]bool
	updateCalls   []uuid.UUID
}

func (s *stubPollRepo) Create(ctx context.Context, tx *gorm.DB, poll *models.VotePoll) error {
	return nil
}

func (s *stubPollRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.VotePoll, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPollRepo) GetByMealDate(ctx context.Context, tx *gorm.DB, mealDate time.Time) (*models.VotePoll, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPollRepo) GetByVoteDate(ctx context.Context, tx *gorm.DB, start, end time.Time) (*models.VotePoll, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPollRepo) GetByVoteDateRange(
	ctx context.Context,
	tx *gorm.DB,
	start, end time.Time,
	status models.PollStatus,
) ([]*models.VotePoll, error) {
	matched := make([]*models.VotePoll, 0, len(s.polls))
	for _, poll := range s.polls {
		if poll.Status == status {
			matched = append(matched, poll)
		}
	}
	return matched, nil
}

func (s *stubPollRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*models.VotePoll, error) {
	return nil, nil
}

func (s *stubPollRepo) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	pollID uuid.UUID,
	from, to models.PollStatus,
) (bool, error) {
	s.updateCalls = append(s.updateCalls, pollID)
	updated, ok := s.updateResults[pollID]
	if !ok {
		updated = true
	}
	if updated {
		for _, poll := range s.polls {
			if poll.ID == pollID {
				poll.Status = to
			}
		}
	}
	return updated, nil
}

func (s *stubPollRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

func (s *stubPollRepo) ReplaceCandidates(ctx context.Context, tx *gorm.DB, pollID uuid.UUID, dishIDs []uuid.UUID) error {
	return nil
}

func (s *stubPollRepo) MarkSelected(ctx context.Context, tx *gorm.DB, pollID uuid.UUID, dishIDs []uuid.UUID) error {
	return nil
}

func (s *stubPollRepo) GetUpcomingMeal(ctx context.Context, tx *gorm.DB) (*models.VotePoll, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPollRepo) ClearUpcomingMealCache(ctx context.Context) error {
	return nil
}

func stubPoll(status models.PollStatus) *models.VotePoll {
	poll := &models.VotePoll{Status: status}
	poll.ID = uuid.New()
	return poll
}

func newTestLifecycleService(repo *stubPollRepo) *PollLifecycleService {
	return NewPollLifecycleService(repo, database.DB{}, time.UTC)
}

func TestOpenTodaysPollsTransitionsPendingPoll(t *testing.T) {
	poll := stubPoll(models.PollStatusPending)
	repo := &stubPollRepo{polls: []*models.VotePoll{poll}}
	service := newTestLifecycleService(repo)

	require.NoError(t, service.OpenTodaysPolls(context.Background()))

	assert.Equal(t, []uuid.UUID{poll.ID}, repo.updateCalls)
	assert.Equal(t, models.PollStatusOpen, poll.Status)
}

func TestOpenTodaysPollsSecondRunIsNoOp(t *testing.T) {
	poll := stubPoll(models.PollStatusPending)
	repo := &stubPollRepo{polls: []*models.VotePoll{poll}}
	service := newTestLifecycleService(repo)

	require.NoError(t, service.OpenTodaysPolls(context.Background()))
	require.Len(t, repo.updateCalls, 1)

	// The poll is now open, so the second run matches nothing and must not
	// attempt another transition.
	require.NoError(t, service.OpenTodaysPolls(context.Background()))
	assert.Len(t, repo.updateCalls, 1)
}

func TestTransitionProcessesMultiplePollsInOrder(t *testing.T) {
	first := stubPoll(models.PollStatusPending)
	second := stubPoll(models.PollStatusPending)
	third := stubPoll(models.PollStatusPending)
	repo := &stubPollRepo{polls: []*models.VotePoll{first, second, third}}
	service := newTestLifecycleService(repo)

	require.NoError(t, service.OpenTodaysPolls(context.Background()))

	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, repo.updateCalls)
	for _, poll := range repo.polls {
		assert.Equal(t, models.PollStatusOpen, poll.Status)
	}
}

func TestTransitionSkipsAlreadyTransitionedPoll(t *testing.T) {
	raced := stubPoll(models.PollStatusPending)
	normal := stubPoll(models.PollStatusPending)
	repo := &stubPollRepo{
		polls:         []*models.VotePoll{raced, normal},
		updateResults: map[uuid.UUID]bool{raced.ID: false},
	}
	service := newTestLifecycleService(repo)

	// A concurrent transition beating this run is reported, not an error.
	require.NoError(t, service.OpenTodaysPolls(context.Background()))

	assert.Equal(t, []uuid.UUID{raced.ID, normal.ID}, repo.updateCalls)
	assert.Equal(t, models.PollStatusPending, raced.Status)
	assert.Equal(t, models.PollStatusOpen, normal.Status)
}

func TestCloseTodaysPollsIgnoresPendingPoll(t *testing.T) {
	poll := stubPoll(models.PollStatusPending)
	repo := &stubPollRepo{polls: []*models.VotePoll{poll}}
	service := newTestLifecycleService(repo)

	require.NoError(t, service.CloseTodaysPolls(context.Background()))

	assert.Empty(t, repo.updateCalls)
	assert.Equal(t, models.PollStatusPending, poll.Status)
}
