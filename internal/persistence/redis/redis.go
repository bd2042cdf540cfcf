// Package redis keeps each collection as a single JSON blob under its own key,
// mirroring a browser local-storage layout.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// DefaultKeyPrefix namespaces the collection keys.
const DefaultKeyPrefix = "roombook:"

// Client is the subset of the go-redis API the store needs.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// Options configures the connection created by NewClient.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 2 * time.Second
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Store implements persistence.Adapter over two Redis string keys.
type Store struct {
	client Client
	prefix string
}

// New returns a store using client. An empty prefix selects DefaultKeyPrefix.
func New(client Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Key returns the Redis key holding a collection.
func (s *Store) Key(collection string) string {
	return s.prefix + collection
}

// Close closes the client when it owns a connection.
func (s *Store) Close() error {
	if c, ok := s.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// LoadRooms returns the stored rooms; a missing key yields an empty list.
func (s *Store) LoadRooms(ctx context.Context) ([]booking.Room, error) {
	var records []persistence.RoomRecord
	if err := s.load(ctx, persistence.RoomsCollection, &records); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return persistence.RoomsFromRecords(records)
}

// LoadReservations returns the stored reservations; a missing key yields an empty list.
func (s *Store) LoadReservations(ctx context.Context) ([]booking.Reservation, error) {
	var records []persistence.ReservationRecord
	if err := s.load(ctx, persistence.ReservationsCollection, &records); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return persistence.ReservationsFromRecords(ctx, records)
}

// PersistRooms overwrites the rooms blob.
func (s *Store) PersistRooms(ctx context.Context, rooms []booking.Room) error {
	return s.save(ctx, persistence.RoomsCollection, persistence.RoomRecords(rooms))
}

// PersistReservations overwrites the reservations blob.
func (s *Store) PersistReservations(ctx context.Context, reservations []booking.Reservation) error {
	return s.save(ctx, persistence.ReservationsCollection, persistence.ReservationRecords(reservations))
}

func (s *Store) load(ctx context.Context, collection string, dst any) error {
	key := s.Key(collection)
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return fmt.Errorf("%w: %s", persistence.ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("redis: get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", persistence.ErrInvalidRecord, key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, collection string, records any) error {
	key := s.Key(collection)
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("redis: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

var (
	_ persistence.Adapter = (*Store)(nil)
	_ Client              = (*goredis.Client)(nil)
)
