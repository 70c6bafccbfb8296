package api

import (
	"testing"
	"time"

	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrInvitationNotFound, fiber.StatusNotFound},
		{services.ErrEventNotFound, fiber.StatusNotFound},
		{services.ErrInvitationForbidden, fiber.StatusForbidden},
		{services.ErrInvitationStateInvalid, fiber.StatusConflict},
		{services.ErrInvitationAlreadyExists, fiber.StatusConflict},
		{services.ErrEventCapacityFull, fiber.StatusConflict},
		{services.ErrAuthEmailTaken, fiber.StatusConflict},
		{services.ErrEventTitleTooShort, fiber.StatusBadRequest},
		{services.ErrInvitationEventClosed, fiber.StatusBadRequest},
		{services.ErrAuthInvalidCredentials, fiber.StatusUnauthorized},
		{services.ErrAuthInvalidToken, fiber.StatusUnauthorized},
		{assert.AnError, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), "hata: %v", tt.err)
	}
}

func TestTimeConversions(t *testing.T) {
	at := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	ms := timeToMs(at)

	assert.Equal(t, at, msToTime(ms))

	assert.Nil(t, timePtrToMs(nil))
	got := timePtrToMs(&at)
	assert.Equal(t, ms, *got)
}
