package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
)

func TestRoomService_Register(t *testing.T) {
	t.Run("accepts and persists a new room", func(t *testing.T) {
		env := newTestEnv(t)

		room := env.registerRoom(t, "Block A", "A1", 30, booking.RoomTypeLaboratory)

		if room.ID != "room-1" {
			t.Fatalf("expected generated id, got %q", room.ID)
		}
		if room.RegisteredOn != booking.NewDate(2025, 3, 12) {
			t.Fatalf("expected registration date of today, got %s", room.RegisteredOn)
		}
		stored, err := env.store.LoadRooms(context.Background())
		if err != nil {
			t.Fatalf("load rooms: %v", err)
		}
		if len(stored) != 1 || stored[0] != room {
			t.Fatalf("expected stored room %+v, got %+v", room, stored)
		}
		if kinds := env.recorder.Kinds(); len(kinds) != 1 || kinds[0] != events.RoomRegistered {
			t.Fatalf("expected one registration event, got %v", kinds)
		}
	})

	t.Run("rejects duplicates and leaves the registry unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerRoom(t, "Block A", "A1", 30, booking.RoomTypeLaboratory)

		_, err := env.rooms.Register(context.Background(), RegisterRoomParams{
			Block: "Block A", RoomID: "A1", Capacity: 10, RoomType: booking.RoomTypeClassroom,
		})
		reason := requireValidation(t, err, "room_id")
		if !strings.Contains(reason, "already registered") {
			t.Fatalf("expected duplicate reason, got %q", reason)
		}
		if got := len(env.state.Rooms()); got != 1 {
			t.Fatalf("expected one room, got %d", got)
		}
		if ErrorKind(err) != "validation" {
			t.Fatalf("expected validation kind, got %q", ErrorKind(err))
		}
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.rooms.Register(context.Background(), RegisterRoomParams{
			Block: "  ", RoomID: "A1", Capacity: 10, RoomType: booking.RoomTypeClassroom,
		})
		requireValidation(t, err, "block")

		_, err = env.rooms.Register(context.Background(), RegisterRoomParams{
			Block: "Block A", RoomID: "A1", Capacity: 0, RoomType: booking.RoomTypeClassroom,
		})
		requireValidation(t, err, "capacity")
	})

	t.Run("forces auditorium type and caps capacity", func(t *testing.T) {
		env := newTestEnv(t)

		room := env.registerRoom(t, "Auditorium", "Main Auditorium", 80, booking.RoomTypeClassroom)
		if room.RoomType != booking.RoomTypeAuditorium {
			t.Fatalf("expected auditorium type, got %q", room.RoomType)
		}

		_, err := env.rooms.Register(context.Background(), RegisterRoomParams{
			Block: "Auditorium", RoomID: "Annex", Capacity: 150, RoomType: booking.RoomTypeAuditorium,
		})
		reason := requireValidation(t, err, "capacity")
		if !strings.Contains(reason, "100") {
			t.Fatalf("expected cap in reason, got %q", reason)
		}
	})

	t.Run("honours a configured auditorium cap", func(t *testing.T) {
		policy := booking.DefaultPolicy()
		policy.AuditoriumCapacity = 200
		env := newTestEnv(t, WithPolicy(policy))

		env.registerRoom(t, "Auditorium", "Main Auditorium", 150, booking.RoomTypeAuditorium)
	})

	t.Run("keeps memory when persisting fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.FailPersists(errors.New("quota exceeded"))

		env.registerRoom(t, "Block A", "A1", 30, booking.RoomTypeClassroom)

		if got := len(env.state.Rooms()); got != 1 {
			t.Fatalf("expected room to stay in memory, got %d", got)
		}
		if len(env.persistErrs) != 1 || env.persistErrs[0] != persistence.RoomsCollection {
			t.Fatalf("expected rooms persist failure to be reported, got %v", env.persistErrs)
		}
	})

	t.Run("requires loaded state", func(t *testing.T) {
		state := NewState(memory.Open(), WithStateLogger(discardLogger()))
		svc := NewRoomServiceWithLogger(state, nil, nil, discardLogger())

		_, err := svc.Register(context.Background(), RegisterRoomParams{
			Block: "Block A", RoomID: "A1", Capacity: 1, RoomType: booking.RoomTypeClassroom,
		})
		if !errors.Is(err, ErrNotLoaded) {
			t.Fatalf("expected ErrNotLoaded, got %v", err)
		}
	})
}

func TestRoomService_Remove(t *testing.T) {
	t.Run("composite key removal is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerRoom(t, "Block A", "A1", 30, booking.RoomTypeClassroom)
		env.registerRoom(t, "Block A", "A2", 30, booking.RoomTypeClassroom)

		removed, err := env.rooms.Remove(context.Background(), "Block A", "A1")
		if err != nil || !removed {
			t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
		}
		removed, err = env.rooms.Remove(context.Background(), "Block A", "A1")
		if err != nil || removed {
			t.Fatalf("expected no-op, got removed=%v err=%v", removed, err)
		}

		stored, _ := env.store.LoadRooms(context.Background())
		if len(stored) != 1 || stored[0].RoomID != "A2" {
			t.Fatalf("expected only A2 stored, got %+v", stored)
		}
		want := []events.Kind{events.RoomRegistered, events.RoomRegistered, events.RoomRemoved}
		if got := env.recorder.Kinds(); len(got) != len(want) || got[2] != want[2] {
			t.Fatalf("expected events %v, got %v", want, got)
		}
	})

	t.Run("re-registration after removal", func(t *testing.T) {
		env := newTestEnv(t)
		room := env.registerRoom(t, "Block A", "A1", 30, booking.RoomTypeClassroom)

		removed, err := env.rooms.RemoveByID(context.Background(), room.ID)
		if err != nil || !removed {
			t.Fatalf("expected removal by id, got removed=%v err=%v", removed, err)
		}
		removed, _ = env.rooms.RemoveByID(context.Background(), room.ID)
		if removed {
			t.Fatalf("expected second removal to be a no-op")
		}

		env.registerRoom(t, "Block A", "A1", 40, booking.RoomTypeClassroom)
	})

	t.Run("requires block and room", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.rooms.Remove(context.Background(), "", "")
		requireValidation(t, err, "block")
		requireValidation(t, err, "room_id")
	})
}

func TestRoomService_Queries(t *testing.T) {
	env := newTestEnv(t)
	lab := env.registerRoom(t, "Block A", "A1", 20, booking.RoomTypeLaboratory)
	env.registerRoom(t, "Block A", "A2", 40, booking.RoomTypeClassroom)
	env.registerRoom(t, "Block C", "C1", 60, booking.RoomTypeClassroom)

	rooms, err := env.rooms.List(context.Background(), booking.RoomFilter{Block: "Block A", MinCapacity: 30})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomID != "A2" {
		t.Fatalf("expected A2 only, got %+v", rooms)
	}

	got, err := env.rooms.Get(context.Background(), lab.ID)
	if err != nil || got != lab {
		t.Fatalf("expected %+v, got %+v (%v)", lab, got, err)
	}
	if _, err := env.rooms.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	blocks := env.rooms.AvailableBlocks(context.Background())
	if len(blocks) != len(booking.DefaultCatalog().Blocks) {
		t.Fatalf("expected every catalog block, got %d", len(blocks))
	}
	if blocks[0].Block != "Block A" || len(blocks[0].Rooms) != 1 || blocks[0].Rooms[0] != "A3" {
		t.Fatalf("expected only A3 available in Block A, got %+v", blocks[0])
	}
}
