package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// fakeClient answers Get/Set from a map using the go-redis result helpers.
type fakeClient struct {
	mu      sync.Mutex
	values  map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: make(map[string]string)}
}

func (f *fakeClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.setKeys = append(f.setKeys, key)
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return goredis.NewStatusResult("OK", nil)
}

func TestStoreEmptyKeys(t *testing.T) {
	store := New(newFakeClient(), "")

	rooms, err := store.LoadRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)

	reservations, err := store.LoadReservations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reservations)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := New(client, "test:")

	rooms := []booking.Room{{ID: "r1", Block: "Block A", RoomID: "A1", Capacity: 10, RoomType: booking.RoomTypeClassroom}}
	require.NoError(t, store.PersistRooms(ctx, rooms))
	assert.Equal(t, []string{"test:rooms"}, client.setKeys)
	assert.JSONEq(t,
		`[{"id":"r1","block":"Block A","roomId":"A1","capacity":10,"roomType":"Classroom","registeredOn":""}]`,
		client.values["test:rooms"])

	loaded, err := store.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms, loaded)

	res := booking.Reservation{
		ID: "x", Block: "Block A", RoomID: "A1",
		StartDate: booking.NewDate(2025, time.March, 17),
		StartTime: booking.MustTimeOfDay("08:00"), EndTime: booking.MustTimeOfDay("09:00"),
	}
	require.NoError(t, store.PersistReservations(ctx, []booking.Reservation{res}))
	assert.Contains(t, client.values["test:reservations"], `"dayOfWeek":"Monday"`)

	reservations, err := store.LoadReservations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []booking.Reservation{res}, reservations)
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt blob", func(t *testing.T) {
		client := newFakeClient()
		client.values[DefaultKeyPrefix+"rooms"] = "{not json"
		_, err := New(client, "").LoadRooms(ctx)
		require.ErrorIs(t, err, persistence.ErrInvalidRecord)
	})

	t.Run("get failure", func(t *testing.T) {
		client := newFakeClient()
		client.getErr = errors.New("connection refused")
		_, err := New(client, "").LoadReservations(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("set failure", func(t *testing.T) {
		client := newFakeClient()
		client.setErr = errors.New("READONLY")
		err := New(client, "").PersistRooms(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "READONLY")
	})
}
