package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFor_Table(t *testing.T) {
	tests := []struct {
		action      InvitationAction
		from        InvitationState
		to          InvitationState
		byOrganizer bool
	}{
		{ActionAccept, StatePendingResponse, StateConfirmed, false},
		{ActionReject, StatePendingResponse, StateRejectedByInvitee, false},
		{ActionApprove, StatePendingApproval, StateConfirmed, true},
		{ActionRejectByOrganizer, StatePendingApproval, StateRejectedByOrganizer, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			rule, err := TransitionFor(tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.from, rule.From)
			assert.Equal(t, tt.to, rule.To)
			assert.Equal(t, tt.byOrganizer, rule.ByOrganizer)
		})
	}
}

func TestTransitionFor_UnknownAction(t *testing.T) {
	_, err := TransitionFor(InvitationAction("cancel"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestInvitationState_Terminal(t *testing.T) {
	assert.False(t, StatePendingResponse.IsTerminal())
	assert.False(t, StatePendingApproval.IsTerminal())
	assert.True(t, StateConfirmed.IsTerminal())
	assert.True(t, StateRejectedByInvitee.IsTerminal())
	assert.True(t, StateRejectedByOrganizer.IsTerminal())
}

func TestInvitationState_TerminalStatesHaveNoOutgoingTransition(t *testing.T) {
	// Geçiş tablosundaki hiçbir kural terminal bir durumdan çıkmaz.
	for _, rule := range transitions {
		assert.False(t, rule.From.IsTerminal(), "terminal durumdan geçiş tanımlı: %s", rule.From)
	}
}

func TestInvitationState_LabelsAndColorsComplete(t *testing.T) {
	for _, state := range AllInvitationStates {
		assert.NotEqual(t, "Bilinmiyor", state.Label(), "etiket eksik: %s", state)
		assert.NotEqual(t, "bg-gray-100 text-gray-800", state.ColorClass(), "renk eksik: %s", state)
	}
	assert.Equal(t, "Bilinmiyor", InvitationState("bogus").Label())
	assert.Equal(t, "bg-gray-100 text-gray-800", InvitationState("bogus").ColorClass())
}
