package resources

import (
	"testing"
	"time"

	"pos-terminal/internal/metering"

	"github.com/stretchr/testify/assert"
)

var startTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func occupiedDevice(resourceID, sessionID string) Card {
	return Card{
		ResourceID:  resourceID,
		Kind:        KindDevice,
		Name:        "PS5 - A",
		Status:      StatusOccupied,
		RatePerHour: 20,
		Session: &metering.Session{
			ID:          sessionID,
			ResourceID:  resourceID,
			StartTime:   startTime,
			RatePerHour: 20,
			Status:      metering.StatusActive,
		},
	}
}

func availableDevice(resourceID string) Card {
	return Card{
		ResourceID:  resourceID,
		Kind:        KindDevice,
		Name:        "PS5 - A",
		Status:      StatusAvailable,
		RatePerHour: 20,
	}
}

func newTestStore() (*Store, *metering.Engine) {
	engine := metering.NewEngine(
		metering.WithInterval(time.Millisecond),
		metering.WithClock(func() time.Time { return startTime.Add(90 * time.Minute) }),
	)
	store := NewStore(engine, nil)
	return store, engine
}

func TestStore_Merge(t *testing.T) {
	t.Run("New occupied device starts a timer", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})

		card, ok := store.Get("ps-1")
		assert.True(t, ok)
		assert.Equal(t, StatusOccupied, card.Status)
		assert.True(t, engine.Tracking("sess-1"))
	})

	t.Run("Unchanged session keeps its timer through a refresh", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})
		store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})

		assert.True(t, engine.Tracking("sess-1"))
	})

	t.Run("Session ended elsewhere stops the timer", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})
		store.Merge([]Card{availableDevice("ps-1")})

		card, _ := store.Get("ps-1")
		assert.Equal(t, StatusAvailable, card.Status)
		assert.Nil(t, card.Session)
		assert.False(t, engine.Tracking("sess-1"))
	})

	t.Run("Replacement session swaps timers", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})
		store.Merge([]Card{occupiedDevice("ps-1", "sess-2")})

		assert.False(t, engine.Tracking("sess-1"))
		assert.True(t, engine.Tracking("sess-2"))
	})

	t.Run("Card absent from poll is dropped with its timer", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{occupiedDevice("ps-1", "sess-1"), availableDevice("ps-2")})
		store.Merge([]Card{availableDevice("ps-2")})

		_, ok := store.Get("ps-1")
		assert.False(t, ok)
		assert.False(t, engine.Tracking("sess-1"))
	})

	t.Run("Devices listed before tables", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		store.Merge([]Card{
			{ResourceID: "tbl-1", Kind: KindTable, Status: StatusAvailable},
			availableDevice("ps-1"),
		})

		cards := store.List()
		assert.Len(t, cards, 2)
		assert.Equal(t, KindDevice, cards[0].Kind)
		assert.Equal(t, KindTable, cards[1].Kind)
	})
}

func TestStore_SessionLifecycle(t *testing.T) {
	session := metering.Session{
		ID:          "sess-1",
		ResourceID:  "ps-1",
		StartTime:   startTime,
		RatePerHour: 20,
		Status:      metering.StatusActive,
	}

	t.Run("SessionStarted flips card to occupied and ticks", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()
		store.Merge([]Card{availableDevice("ps-1")})

		err := store.SessionStarted("ps-1", session)

		assert.NoError(t, err)
		card, _ := store.Get("ps-1")
		assert.Equal(t, StatusOccupied, card.Status)
		assert.Equal(t, "sess-1", card.Session.ID)
		assert.True(t, engine.Tracking("sess-1"))
	})

	t.Run("SessionEnded is terminal for the timer", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()
		store.Merge([]Card{availableDevice("ps-1")})
		store.SessionStarted("ps-1", session)

		err := store.SessionEnded("ps-1")

		assert.NoError(t, err)
		card, _ := store.Get("ps-1")
		assert.Equal(t, StatusAvailable, card.Status)
		assert.Nil(t, card.Session)
		assert.False(t, engine.Tracking("sess-1"))
	})

	t.Run("Error - Unknown card", func(t *testing.T) {
		store, engine := newTestStore()
		defer engine.StopAll()

		assert.ErrorIs(t, store.SessionStarted("ghost", session), ErrCardNotFound)
		assert.ErrorIs(t, store.SessionEnded("ghost"), ErrCardNotFound)
	})
}

func TestStore_ReadingsFlow(t *testing.T) {
	readings := make(chan metering.DisplayReading, 16)
	engine := metering.NewEngine(
		metering.WithInterval(time.Millisecond),
		metering.WithClock(func() time.Time { return startTime.Add(90 * time.Minute) }),
	)
	defer engine.StopAll()

	store := NewStore(engine, func(r metering.DisplayReading) {
		select {
		case readings <- r:
		default:
		}
	})

	store.Merge([]Card{occupiedDevice("ps-1", "sess-1")})

	select {
	case reading := <-readings:
		assert.Equal(t, "sess-1", reading.SessionID)
		assert.Equal(t, "01:30:00", reading.Formatted)
		assert.InDelta(t, 30.0, reading.Amount, 0.001)
	case <-time.After(time.Second):
		t.Fatal("no reading delivered")
	}
}
