package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PollStatus
		to      PollStatus
		allowed bool
	}{
		{"pending to open", PollStatusPending, PollStatusOpen, true},
		{"open to close", PollStatusOpen, PollStatusClose, true},
		{"close to finalized", PollStatusClose, PollStatusFinalized, true},

		{"pending to close skips open", PollStatusPending, PollStatusClose, false},
		{"pending to finalized skips two", PollStatusPending, PollStatusFinalized, false},
		{"open to finalized skips close", PollStatusOpen, PollStatusFinalized, false},

		{"open back to pending", PollStatusOpen, PollStatusPending, false},
		{"close back to open", PollStatusClose, PollStatusOpen, false},
		{"finalized back to close", PollStatusFinalized, PollStatusClose, false},
		{"finalized to anything", PollStatusFinalized, PollStatusOpen, false},

		{"self transition", PollStatusOpen, PollStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPollStatusIsTerminal(t *testing.T) {
	assert.True(t, PollStatusFinalized.IsTerminal())
	assert.False(t, PollStatusPending.IsTerminal())
	assert.False(t, PollStatusOpen.IsTerminal())
	assert.False(t, PollStatusClose.IsTerminal())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStaff.Valid())
	assert.True(t, RoleVoter.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
