package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/grid"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Logger      *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults. Logs are
// discarded unless WithLogger is given.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithLogger routes service logs to logger.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		if logger != nil {
			factory.Logger = logger
		}
	}
}

// Services bundles the application services sharing one state.
type Services struct {
	State        *application.State
	Rooms        *application.RoomService
	Reservations *application.ReservationService
	Grid         *application.GridService
}

// NewServices loads a state from store (a fresh memory store when nil) and
// builds every service on top of it. Grid colors come from a fixed palette so
// renders are deterministic.
func (f *ServiceFactory) NewServices(tb testing.TB, store persistence.Adapter, opts ...application.StateOption) Services {
	tb.Helper()

	if store == nil {
		store = memory.Open()
	}
	state := application.NewState(store, append([]application.StateOption{application.WithStateLogger(f.Logger)}, opts...)...)
	if err := state.Load(context.Background()); err != nil {
		tb.Fatalf("failed to load state: %v", err)
	}

	idGen := f.IDGenerator.NextFunc()
	now := f.Clock.NowFunc()
	return Services{
		State:        state,
		Rooms:        application.NewRoomServiceWithLogger(state, idGen, now, f.Logger),
		Reservations: application.NewReservationServiceWithLogger(state, idGen, now, f.Logger),
		Grid:         application.NewGridServiceWithLogger(state, grid.DefaultLayout(), grid.Palette("#a", "#b", "#c"), f.Logger),
	}
}
