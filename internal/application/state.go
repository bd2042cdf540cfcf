package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/persistence"
)

// State owns the room and reservation registries and serializes every
// operation on them. It is created once by the application root and shared
// by the services.
type State struct {
	mu           sync.Mutex
	rooms        *booking.RoomRegistry
	reservations *booking.ReservationRegistry
	loaded       bool

	store          persistence.Adapter
	policy         booking.Policy
	publisher      events.Publisher
	onPersistError PersistErrorHandler
	logger         *slog.Logger
}

// StateOption configures a State.
type StateOption func(*State)

// WithPolicy overrides the validation rules.
func WithPolicy(policy booking.Policy) StateOption {
	return func(s *State) { s.policy = policy }
}

// WithPublisher sets where mutation events are sent.
func WithPublisher(p events.Publisher) StateOption {
	return func(s *State) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithPersistErrorHandler sets the callback invoked when persisting fails.
func WithPersistErrorHandler(h PersistErrorHandler) StateOption {
	return func(s *State) { s.onPersistError = h }
}

// WithStateLogger sets the logger used for load and persistence diagnostics.
func WithStateLogger(logger *slog.Logger) StateOption {
	return func(s *State) { s.logger = defaultLogger(logger) }
}

// NewState returns an empty state backed by store. A nil store keeps
// everything in memory only.
func NewState(store persistence.Adapter, opts ...StateOption) *State {
	s := &State{
		rooms:        booking.NewRoomRegistry(nil),
		reservations: booking.NewReservationRegistry(nil),
		store:        store,
		policy:       booking.DefaultPolicy(),
		publisher:    events.Nop{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.loaded = true
	}
	return s
}

// Policy returns the validation rules in effect.
func (s *State) Policy() booking.Policy {
	return s.policy
}

// Load replaces both registries with the stored collections. Conflicting
// reservations found in storage are logged but kept.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := serviceLogger(ctx, s.logger, "State", "Load")
	if s.store == nil {
		s.loaded = true
		return nil
	}

	rooms, err := s.store.LoadRooms(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load rooms", "error", err, "error_kind", ErrorKind(err))
		return fmt.Errorf("load rooms: %w", err)
	}
	reservations, err := s.store.LoadReservations(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load reservations", "error", err, "error_kind", ErrorKind(err))
		return fmt.Errorf("load reservations: %w", err)
	}

	s.rooms.Replace(rooms)
	s.reservations.Replace(reservations)
	s.loaded = true

	for _, c := range booking.DetectConflicts(reservations) {
		logger.WarnContext(ctx, "stored reservations overlap",
			"reservation_id", c.ReservationID,
			"other_reservation_id", c.WithReservationID,
			"block", c.Slot.Block,
			"room", c.Slot.RoomID,
			"day", booking.DayName(c.Slot.Day),
		)
	}
	logger.InfoContext(ctx, "state loaded", "rooms", len(rooms), "reservations", len(reservations))
	return nil
}

// Rooms returns a snapshot of the registered rooms in registry order.
func (s *State) Rooms() []booking.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms.All()
}

// Reservations returns a snapshot of the reservations in registry order.
func (s *State) Reservations() []booking.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations.All()
}

// update runs fn with exclusive access to the registries.
func (s *State) update(fn func(rooms *booking.RoomRegistry, reservations *booking.ReservationRegistry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return fn(s.rooms, s.reservations)
}

// persistRooms stores the room collection. Callers hold s.mu, so snapshots
// reach the adapter in mutation order.
func (s *State) persistRooms(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.reportPersist(ctx, persistence.RoomsCollection, s.store.PersistRooms(ctx, s.rooms.All()))
}

func (s *State) persistReservations(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.reportPersist(ctx, persistence.ReservationsCollection, s.store.PersistReservations(ctx, s.reservations.All()))
}

func (s *State) reportPersist(ctx context.Context, collection string, err error) {
	if err == nil {
		return
	}
	serviceLogger(ctx, s.logger, "State", "Persist", "collection", collection).
		ErrorContext(ctx, "failed to persist collection", "error", err, "error_kind", ErrorKind(err))
	if s.onPersistError != nil {
		s.onPersistError(collection, err)
	}
}

// publish sends a best-effort event; failures are only logged.
func (s *State) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		serviceLogger(ctx, s.logger, "State", "Publish", "kind", string(event.Kind)).
			WarnContext(ctx, "failed to publish event", "error", err)
	}
}

func today(now func() time.Time) booking.Date {
	return booking.DateOf(now())
}
