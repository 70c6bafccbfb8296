package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus_Boundaries(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(100 * time.Millisecond)

	tests := []struct {
		name string
		now  time.Time
		want EventStatus
	}{
		{"başlangıçtan hemen önce", start.Add(-time.Millisecond), StatusUpcoming},
		{"tam başlangıç anı", start, StatusInProgress},
		{"aralığın ortası", start.Add(50 * time.Millisecond), StatusInProgress},
		{"tam bitiş anı", end, StatusInProgress},
		{"bitişten hemen sonra", end.Add(time.Millisecond), StatusCompleted},
		{"çok ileride", end.Add(48 * time.Hour), StatusCompleted},
		{"çok geride", start.Add(-24 * time.Hour), StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(start, end, tt.now))
		})
	}
}

func TestDeriveStatus_NeverCancelled(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	// İptal asla türetilmez; zaman ekseninin her noktasında üç durumdan biri döner.
	for offset := -3 * time.Hour; offset <= 5*time.Hour; offset += 15 * time.Minute {
		status := DeriveStatus(start, end, start.Add(offset))
		assert.NotEqual(t, StatusCancelled, status)
	}
}

func TestEventStatus_CanEditAndDelete(t *testing.T) {
	assert.True(t, CanEditStatus(StatusUpcoming))
	assert.True(t, CanDeleteStatus(StatusUpcoming))

	for _, status := range []EventStatus{StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.False(t, CanEditStatus(status), "düzenleme yalnızca yaklaşan etkinliklerde: %s", status)
		assert.False(t, CanDeleteStatus(status), "silme yalnızca yaklaşan etkinliklerde: %s", status)
	}
}

func TestEvent_Status_CancelledPassthrough(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	cancelledAt := start.Add(-time.Hour)
	event := Event{
		StartsAt:    start,
		EndsAt:      start.Add(2 * time.Hour),
		CancelledAt: &cancelledAt,
	}

	// İptal kaydı türetilen durumu gölgeler; aralığın içinde bile iptal döner.
	require.Equal(t, StatusCancelled, event.Status(start.Add(time.Hour)))
	assert.False(t, event.CanEdit(start.Add(-2*time.Hour)))
	assert.False(t, event.CanDelete(start.Add(-2*time.Hour)))
}

func TestEvent_Status_Derived(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	event := Event{StartsAt: start, EndsAt: start.Add(2 * time.Hour)}

	assert.Equal(t, StatusUpcoming, event.Status(start.Add(-time.Minute)))
	assert.Equal(t, StatusInProgress, event.Status(start))
	assert.Equal(t, StatusCompleted, event.Status(start.Add(3*time.Hour)))

	assert.True(t, event.CanEdit(start.Add(-time.Minute)))
	assert.False(t, event.CanEdit(start))
}

func TestEventStatus_LabelsAndColorsComplete(t *testing.T) {
	for _, status := range AllEventStatuses {
		assert.NotEqual(t, "Bilinmiyor", status.Label(), "etiket eksik: %s", status)
		assert.NotEqual(t, "bg-gray-500 text-white", status.ColorClass(), "renk eksik: %s", status)
	}
	assert.Equal(t, "Bilinmiyor", EventStatus("bogus").Label())
	assert.Equal(t, "bg-gray-500 text-white", EventStatus("bogus").ColorClass())
}
