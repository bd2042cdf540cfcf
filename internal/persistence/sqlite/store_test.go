package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/sqlite"
	"github.com/example/room-booking/internal/testfixtures"
)

func TestStoreRooms(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewSQLiteHarness(t)

	rooms := []booking.Room{
		testfixtures.NewRoom(testfixtures.WithRoomKey("Block B", "B201"), testfixtures.WithRoomID("r-2")),
		testfixtures.NewRoom(testfixtures.WithRoomKey("Block A", "A1"), testfixtures.WithRoomID("r-1"), testfixtures.WithCapacity(12)),
	}
	require.NoError(t, store.PersistRooms(ctx, rooms))

	loaded, err := store.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms, loaded, "order and fields survive a round trip")

	require.NoError(t, store.PersistRooms(ctx, rooms[1:]))
	loaded, err = store.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms[1:], loaded, "persist replaces the collection")
}

func TestStoreRoomConstraints(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewSQLiteHarness(t)
	require.NoError(t, store.PersistRooms(ctx, []booking.Room{testfixtures.NewRoom(testfixtures.WithRoomID("keep"))}))

	t.Run("duplicate block and room", func(t *testing.T) {
		dup := []booking.Room{
			testfixtures.NewRoom(testfixtures.WithRoomID("a"), testfixtures.WithRoomKey("Block A", "A1")),
			testfixtures.NewRoom(testfixtures.WithRoomID("b"), testfixtures.WithRoomKey("Block A", "A1")),
		}
		err := store.PersistRooms(ctx, dup)
		require.ErrorIs(t, err, persistence.ErrDuplicate)
	})

	t.Run("capacity check", func(t *testing.T) {
		err := store.PersistRooms(ctx, []booking.Room{testfixtures.NewRoom(testfixtures.WithCapacity(0))})
		require.ErrorIs(t, err, persistence.ErrConstraintViolation)
	})

	loaded, err := store.LoadRooms(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1, "failed persists roll back")
	assert.Equal(t, "keep", loaded[0].ID)
}

func TestStoreReservations(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewSQLiteHarness(t)

	monday := booking.NewDate(2025, time.March, 17)
	reservations := []booking.Reservation{
		testfixtures.NewReservation(testfixtures.WithReservationID("late"), testfixtures.OnDate(monday.AddDays(1)), testfixtures.Between("14:00", "16:00")),
		testfixtures.NewReservation(testfixtures.WithReservationID("early"), testfixtures.OnDate(monday), testfixtures.Between("8:00", "9:30"),
			testfixtures.WithSubject("Chemistry")),
	}
	require.NoError(t, store.PersistReservations(ctx, reservations))

	loaded, err := store.LoadReservations(ctx)
	require.NoError(t, err)
	assert.Equal(t, reservations, loaded)

	require.NoError(t, store.PersistReservations(ctx, nil))
	loaded, err = store.LoadReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "roombook.db")

	store, err := sqlite.Open(ctx, sqlite.DefaultConfig(dsn), nil)
	require.NoError(t, err)
	room := testfixtures.NewRoom()
	require.NoError(t, store.PersistRooms(ctx, []booking.Room{room}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(ctx, sqlite.DefaultConfig(dsn), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	loaded, err := reopened.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []booking.Room{room}, loaded)
	require.NoError(t, reopened.Pool().Ping(ctx))
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := sqlite.InMemoryConfig()
	cfg.JournalMode = "SIDEWAYS"
	_, err := sqlite.Open(context.Background(), cfg, nil)
	require.Error(t, err)
}
