package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/events"
	"salsa-storefront/internal/kv"
	"salsa-storefront/internal/logger"
	"salsa-storefront/internal/models"
)

// Fixed "today" between the first and second seed event dates.
var testNow = time.Date(2025, 11, 18, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store kv.Store) *events.Service {
	t.Helper()
	svc := events.NewService(store, clock.NewFixed(testNow), logger.NewLogger())
	svc.Load(context.Background())
	return svc
}

func marketEvent(title, date string) models.Event {
	return models.Event{
		Title:     title,
		Location:  "Gruene Hall",
		Address:   "1281 Gruene Rd, New Braunfels, TX 78130",
		Date:      date,
		StartTime: "10:00 AM",
		EndTime:   "2:00 PM",
	}
}

func TestLoadInitializesEmptySlot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newTestService(t, store)

	assert.True(t, svc.Loaded())

	// The fallback is persisted immediately so later loads are stable.
	raw, err := store.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	// Seeds are still served from code.
	assert.Len(t, svc.Events(), 6)
}

func TestLoadHealsCorruptSlot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "events", "{not json"))

	svc := newTestService(t, store)
	assert.Len(t, svc.Events(), 6)

	raw, err := store.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestLoadSanitizesStoredEvents(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	valid := marketEvent("Gruene Market Days", "2025-12-01")
	valid.ID = "1763000000000"
	stored := []models.Event{
		valid,
		{ID: "1", Title: "Impostor seed"},       // claims a seed id
		{ID: "1763000000001", Title: "No date"}, // structurally invalid
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "events", string(data)))

	svc := newTestService(t, store)

	// 6 seeds + the single surviving user event.
	assert.Len(t, svc.Events(), 7)

	// The cleaned list was written back.
	raw, err := store.Get(ctx, "events")
	require.NoError(t, err)
	var persisted []models.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, valid.ID, persisted[0].ID)
}

func TestAddUpdateDeleteEvent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newTestService(t, store)

	added, err := svc.AddEvent(ctx, marketEvent("Gruene Market Days", "2025-12-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Len(t, svc.Events(), 7)

	updated := marketEvent("Gruene Market Days (moved)", "2025-12-02")
	require.NoError(t, svc.UpdateEvent(ctx, added.ID, updated))

	var found *models.Event
	for _, e := range svc.Events() {
		if e.ID == added.ID {
			copied := e
			found = &copied
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Gruene Market Days (moved)", found.Title)
	assert.Equal(t, "2025-12-02", found.Date)

	require.NoError(t, svc.DeleteEvent(ctx, added.ID))
	assert.Len(t, svc.Events(), 6)

	// Unknown ids are a silent no-op.
	require.NoError(t, svc.UpdateEvent(ctx, "missing", updated))
	require.NoError(t, svc.DeleteEvent(ctx, "missing"))
}

func TestSeedEventsAreReadOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kv.NewMemoryStore())

	require.NoError(t, svc.UpdateEvent(ctx, "1", marketEvent("Hijacked", "2030-01-01")))
	require.NoError(t, svc.DeleteEvent(ctx, "1"))

	all := svc.Events()
	assert.Len(t, all, 6)
	assert.Equal(t, "New Braunfels Farmers Market", all[0].Title)
}

func TestTimestampIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kv.NewMemoryStore())

	// The fixed clock would mint the same millisecond id every time;
	// the store must bump past collisions.
	first, err := svc.AddEvent(ctx, marketEvent("A", "2025-12-01"))
	require.NoError(t, err)
	second, err := svc.AddEvent(ctx, marketEvent("B", "2025-12-01"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpcomingAndPastPartition(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kv.NewMemoryStore())

	_, err := svc.AddEvent(ctx, marketEvent("Past market", "2025-11-01"))
	require.NoError(t, err)
	_, err = svc.AddEvent(ctx, marketEvent("Today market", "2025-11-18"))
	require.NoError(t, err)

	upcoming := svc.Upcoming()
	past := svc.Past()

	// Seeds 2..6 are upcoming relative to 2025-11-18, plus today's event.
	require.Len(t, upcoming, 6)
	assert.Equal(t, "Today market", upcoming[0].Title)
	for i := 1; i < len(upcoming); i++ {
		assert.LessOrEqual(t, upcoming[i-1].Date, upcoming[i].Date)
	}

	// Seed 1 (2025-11-14) and the added past market.
	require.Len(t, past, 2)
	assert.Equal(t, "2025-11-14", past[0].Date)
	assert.Equal(t, "2025-11-01", past[1].Date)
}

func TestMutationsPropagatePersistenceErrors(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	svc := newTestService(t, store)

	store.FailWrites = errors.New("disk full")

	_, err := svc.AddEvent(ctx, marketEvent("Doomed", "2025-12-01"))
	assert.Error(t, err)
}
