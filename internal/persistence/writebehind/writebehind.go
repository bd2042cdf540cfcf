// Package writebehind makes persistence asynchronous: persist calls record the
// latest snapshot and return immediately while a single worker writes it to
// the wrapped adapter.
package writebehind

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// ErrClosed is returned by persist calls made after Close.
var ErrClosed = errors.New("writebehind: adapter closed")

// ErrorHandler receives failures of background writes.
type ErrorHandler func(collection string, err error)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for background write outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithErrorHandler sets the callback invoked when a background write fails.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Adapter) {
		a.onError = h
	}
}

// WithWriteTimeout bounds each background write.
func WithWriteTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.writeTimeout = d
		}
	}
}

// Adapter wraps another persistence.Adapter.
type Adapter struct {
	next         persistence.Adapter
	logger       *slog.Logger
	onError      ErrorHandler
	writeTimeout time.Duration

	mu           sync.Mutex
	rooms        []booking.Room
	roomsDirty   bool
	reservations []booking.Reservation
	resDirty     bool
	closed       bool

	wake    chan struct{}
	flushes chan chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// New starts the background worker.
func New(next persistence.Adapter, opts ...Option) *Adapter {
	a := &Adapter{
		next:         next,
		logger:       slog.Default(),
		writeTimeout: 10 * time.Second,
		wake:         make(chan struct{}, 1),
		flushes:      make(chan chan struct{}),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.run()
	return a
}

// LoadRooms reads synchronously from the wrapped adapter.
func (a *Adapter) LoadRooms(ctx context.Context) ([]booking.Room, error) {
	return a.next.LoadRooms(ctx)
}

// LoadReservations reads synchronously from the wrapped adapter.
func (a *Adapter) LoadReservations(ctx context.Context) ([]booking.Reservation, error) {
	return a.next.LoadReservations(ctx)
}

// PersistRooms schedules the snapshot for writing. A newer snapshot replaces
// one that has not been written yet.
func (a *Adapter) PersistRooms(ctx context.Context, rooms []booking.Room) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.rooms = append([]booking.Room(nil), rooms...)
	a.roomsDirty = true
	a.mu.Unlock()

	a.signal()
	return nil
}

// PersistReservations schedules the snapshot for writing.
func (a *Adapter) PersistReservations(ctx context.Context, reservations []booking.Reservation) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.reservations = append([]booking.Reservation(nil), reservations...)
	a.resDirty = true
	a.mu.Unlock()

	a.signal()
	return nil
}

// Flush blocks until every snapshot scheduled before the call has been written.
func (a *Adapter) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case a.flushes <- reply:
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes pending snapshots, stops the worker and closes the wrapped
// adapter when it holds resources.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.stop)
	<-a.done

	if c, ok := a.next.(persistence.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *Adapter) signal() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Adapter) run() {
	defer close(a.done)
	for {
		select {
		case <-a.wake:
			a.drain()
		case reply := <-a.flushes:
			a.drain()
			close(reply)
		case <-a.stop:
			a.drain()
			return
		}
	}
}

func (a *Adapter) drain() {
	for {
		a.mu.Lock()
		rooms, writeRooms := a.rooms, a.roomsDirty
		reservations, writeRes := a.reservations, a.resDirty
		a.roomsDirty, a.resDirty = false, false
		a.mu.Unlock()

		if !writeRooms && !writeRes {
			return
		}
		if writeRooms {
			a.write(persistence.RoomsCollection, func(ctx context.Context) error {
				return a.next.PersistRooms(ctx, rooms)
			})
		}
		if writeRes {
			a.write(persistence.ReservationsCollection, func(ctx context.Context) error {
				return a.next.PersistReservations(ctx, reservations)
			})
		}
	}
}

func (a *Adapter) write(collection string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		a.logger.Error("background persist failed", "collection", collection, "error", err)
		if a.onError != nil {
			a.onError(collection, err)
		}
		return
	}
	a.logger.Debug("background persist completed", "collection", collection)
}

var (
	_ persistence.Adapter = (*Adapter)(nil)
	_ persistence.Closer  = (*Adapter)(nil)
)
