package viewcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "invitations:event:42", EventInvitationsKey(42))
	assert.Equal(t, "invitations:user:7", UserInvitationsKey(7))
	assert.Equal(t, "organizer:stats:3", OrganizerStatsKey(3))
}

func TestKeyBuilders_Distinct(t *testing.T) {
	// Aynı ID farklı görünümlerde çakışmamalı.
	assert.NotEqual(t, EventInvitationsKey(1), UserInvitationsKey(1))
	assert.NotEqual(t, UserInvitationsKey(1), OrganizerStatsKey(1))
}
