package inflight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_BeginEnd(t *testing.T) {
	tracker := NewTracker()

	assert.True(t, tracker.Begin(1))
	assert.True(t, tracker.Active(1))

	// Aynı ID ikinci kez başlatılamaz.
	assert.False(t, tracker.Begin(1))

	// Farklı ID'ler birbirini bloklamaz.
	assert.True(t, tracker.Begin(2))

	tracker.End(1)
	assert.False(t, tracker.Active(1))
	assert.True(t, tracker.Begin(1))
}

func TestTracker_ActiveIDs(t *testing.T) {
	tracker := NewTracker()
	tracker.Begin(3)
	tracker.Begin(7)

	ids := tracker.ActiveIDs()
	assert.ElementsMatch(t, []uint{3, 7}, ids)
}

func TestTracker_ConcurrentBegin(t *testing.T) {
	tracker := NewTracker()

	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tracker.Begin(42) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Yarışan isteklerden yalnızca biri kazanır.
	assert.Equal(t, 1, wins)
	assert.True(t, tracker.Active(42))
}
