// Package events owns the farmers-market calendar: a compiled-in seed
// list unioned at query time with admin-added events persisted in one
// key-value slot.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/kv"
	"salsa-storefront/internal/logger"
	"salsa-storefront/internal/models"
)

const eventsSlot = "events"

const dateLayout = "2006-01-02"

type Service struct {
	store kv.Store
	clock clock.Clock
	log   *logger.Logger

	mu         sync.Mutex
	userEvents []models.Event
	seeds      []models.Event
	seedIDs    map[string]bool
	loaded     bool
}

func NewService(store kv.Store, clk clock.Clock, log *logger.Logger) *Service {
	seedIDs := make(map[string]bool, len(seedEvents))
	for _, e := range seedEvents {
		seedIDs[e.ID] = true
	}
	return &Service{
		store:   store,
		clock:   clk,
		log:     log,
		seeds:   seedEvents,
		seedIDs: seedIDs,
	}
}

// Load reads the events slot. Absent or corrupt data resets the slot to
// an empty list; entries that are structurally invalid or claim a seed
// id are dropped and the cleaned list is written back, so subsequent
// loads are stable.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loaded = true }()

	raw, err := s.store.Get(ctx, eventsSlot)
	if err == kv.ErrNotFound {
		s.userEvents = nil
		if err := s.persistLocked(ctx); err != nil {
			s.log.Error("STORE", fmt.Sprintf("Failed to initialize events slot: %v", err))
		}
		return
	}
	if err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to read events slot, resetting: %v", err))
		s.resetSlotLocked(ctx)
		return
	}

	var parsed []models.Event
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Corrupt events slot, resetting: %v", err))
		s.resetSlotLocked(ctx)
		return
	}

	sanitized := make([]models.Event, 0, len(parsed))
	for _, e := range parsed {
		if models.ValidEvent(e) && !s.seedIDs[e.ID] {
			sanitized = append(sanitized, e)
		}
	}
	s.userEvents = sanitized
	if len(sanitized) != len(parsed) {
		s.log.LogStore("SANITIZE", eventsSlot, fmt.Sprintf("dropped %d invalid or seed entries", len(parsed)-len(sanitized)))
		if err := s.persistLocked(ctx); err != nil {
			s.log.Error("STORE", fmt.Sprintf("Failed to rewrite sanitized events: %v", err))
		}
	}
	s.log.LogStore("LOAD", eventsSlot, fmt.Sprintf("%d user events", len(s.userEvents)))
}

func (s *Service) resetSlotLocked(ctx context.Context) {
	if err := s.store.Remove(ctx, eventsSlot); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to remove events slot: %v", err))
	}
	s.userEvents = nil
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to persist events fallback: %v", err))
	}
}

func (s *Service) persistLocked(ctx context.Context) error {
	list := s.userEvents
	if list == nil {
		list = []models.Event{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, eventsSlot, string(data))
}

func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Events returns the seed list unioned with user events.
func (s *Service) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unionLocked()
}

func (s *Service) unionLocked() []models.Event {
	out := make([]models.Event, 0, len(s.seeds)+len(s.userEvents))
	out = append(out, s.seeds...)
	out = append(out, s.userEvents...)
	return out
}

// Upcoming returns events dated today or later, soonest first. Dates
// are ISO-8601 calendar dates so string comparison orders correctly.
func (s *Service) Upcoming() []models.Event {
	today := s.clock.Now().Format(dateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Event
	for _, e := range s.unionLocked() {
		if e.Date >= today {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Past returns events dated before today, most recent first.
func (s *Service) Past() []models.Event {
	today := s.clock.Now().Format(dateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Event
	for _, e := range s.unionLocked() {
		if e.Date < today {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// AddEvent assigns a timestamp-derived id, appends and persists.
// Persistence failures are returned to the caller.
func (s *Service) AddEvent(ctx context.Context, fields models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields.ID = s.newIDLocked()
	s.userEvents = append(s.userEvents, fields)
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to save events after add: %v", err))
		return models.Event{}, err
	}
	s.log.LogStore("ADD", eventsSlot, fmt.Sprintf("event %s (%s)", fields.ID, fields.Title))
	return fields, nil
}

// newIDLocked derives an id from the current milliseconds, bumping past
// collisions with seeds or existing user events.
func (s *Service) newIDLocked() string {
	ms := s.clock.Now().UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !s.seedIDs[id] && s.findLocked(id) < 0 {
			return id
		}
		ms++
	}
}

func (s *Service) findLocked(id string) int {
	for i := range s.userEvents {
		if s.userEvents[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateEvent replaces the event's fields, preserving its id. Unknown
// ids and seed ids are a silent no-op.
func (s *Service) UpdateEvent(ctx context.Context, id string, fields models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(id)
	if idx < 0 {
		return nil
	}
	fields.ID = id
	s.userEvents[idx] = fields
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to save events after update: %v", err))
		return err
	}
	s.log.LogStore("UPDATE", eventsSlot, "event "+id)
	return nil
}

// DeleteEvent removes the event with the given id. Unknown and seed ids
// are a silent no-op.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(id)
	if idx < 0 {
		return nil
	}
	s.userEvents = append(s.userEvents[:idx], s.userEvents[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.log.Error("STORE", fmt.Sprintf("Failed to save events after delete: %v", err))
		return err
	}
	s.log.LogStore("DELETE", eventsSlot, "event "+id)
	return nil
}
