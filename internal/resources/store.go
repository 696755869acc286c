package resources

import (
	"errors"
	"sync"

	"pos-terminal/internal/logger"
	"pos-terminal/internal/metering"

	"go.uber.org/zap"
)

var ErrCardNotFound = errors.New("resource card not found")

// Store holds the current set of resource cards and keeps the metering
// engine in step with them. Poll refreshes and local session transitions
// both funnel through it, so merge decisions live in exactly one place.
type Store struct {
	mu        sync.RWMutex
	cards     map[string]Card
	engine    *metering.Engine
	onReading func(metering.DisplayReading)
}

func NewStore(engine *metering.Engine, onReading func(metering.DisplayReading)) *Store {
	if onReading == nil {
		onReading = func(metering.DisplayReading) {}
	}
	return &Store{
		cards:     make(map[string]Card),
		engine:    engine,
		onReading: onReading,
	}
}

// Merge replaces authoritative fields from a poll without disturbing timers
// whose session is unchanged. Cards absent from the poll are dropped and
// their timers stopped.
func (s *Store) Merge(polled []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(polled))

	for _, incoming := range polled {
		seen[incoming.ResourceID] = struct{}{}
		existing, ok := s.cards[incoming.ResourceID]

		switch {
		case incoming.Session == nil || incoming.Session.Status != metering.StatusActive:
			// Session gone or ended elsewhere; the transition is terminal.
			if ok && existing.Session != nil {
				s.engine.Stop(existing.Session.ID)
			}
		case !ok || existing.Session == nil || existing.Session.ID != incoming.Session.ID:
			// Fresh session on this resource.
			if ok && existing.Session != nil {
				s.engine.Stop(existing.Session.ID)
			}
			s.engine.Track(*incoming.Session, s.onReading)
		case sessionChanged(existing.Session, incoming.Session):
			// Same session, refreshed authoritative fields; restart the
			// timer from the server's start time.
			s.engine.Track(*incoming.Session, s.onReading)
		default:
			// Unchanged active session: leave the ticking timer alone.
		}

		s.cards[incoming.ResourceID] = incoming
	}

	for id, card := range s.cards {
		if _, ok := seen[id]; ok {
			continue
		}
		if card.Session != nil {
			s.engine.Stop(card.Session.ID)
		}
		delete(s.cards, id)
		logger.L().Debug("resource removed", zap.String("resource_id", id))
	}
}

func sessionChanged(prev, next *metering.Session) bool {
	return !prev.StartTime.Equal(next.StartTime) || prev.RatePerHour != next.RatePerHour
}

// SessionStarted applies a locally initiated session start: the server has
// confirmed it, so the card flips to occupied and starts ticking.
func (s *Store) SessionStarted(resourceID string, session metering.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[resourceID]
	if !ok {
		return ErrCardNotFound
	}

	card.Status = StatusOccupied
	card.Session = &session
	s.cards[resourceID] = card

	s.engine.Track(session, s.onReading)
	return nil
}

// SessionEnded applies a server-confirmed session end: the timer stops
// synchronously and the card becomes available again.
func (s *Store) SessionEnded(resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[resourceID]
	if !ok {
		return ErrCardNotFound
	}

	if card.Session != nil {
		s.engine.Stop(card.Session.ID)
	}
	card.Status = StatusAvailable
	card.Session = nil
	s.cards[resourceID] = card
	return nil
}

func (s *Store) Get(resourceID string) (Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[resourceID]
	return card, ok
}

// List returns all cards, devices first, in no further order.
func (s *Store) List() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Card, 0, len(s.cards))
	for _, card := range s.cards {
		if card.Kind == KindDevice {
			out = append(out, card)
		}
	}
	for _, card := range s.cards {
		if card.Kind != KindDevice {
			out = append(out, card)
		}
	}
	return out
}
