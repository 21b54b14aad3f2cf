package jobs

import (
	"testing"

	"mealvote/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestJobSchedules(t *testing.T) {
	openJob := NewOpenPollJob(nil, DailyOpen)
	assert.Equal(t, "OpenTodaysPoll", openJob.Name())
	assert.Equal(t, services.DailyOpen, openJob.Schedule())

	closeJob := NewClosePollJob(nil, DailyClose)
	assert.Equal(t, "CloseTodaysPoll", closeJob.Name())
	assert.Equal(t, services.DailyClose, closeJob.Schedule())
}
