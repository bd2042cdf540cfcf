package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/events"
)

// RoomService orchestrates validation, registry updates, and persistence for rooms.
type RoomService struct {
	state       *State
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(state *State, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(state, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(state *State, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{state: state, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// Register validates the proposed room and appends it to the registry. Rooms
// in the auditorium block are always registered as auditoriums.
func (s *RoomService) Register(ctx context.Context, params RegisterRoomParams) (room booking.Room, err error) {
	if s == nil || s.state == nil {
		err = fmt.Errorf("RoomService is not configured")
		return
	}

	input := booking.RoomInput{
		Block:    strings.TrimSpace(params.Block),
		RoomID:   strings.TrimSpace(params.RoomID),
		Capacity: params.Capacity,
		RoomType: params.RoomType,
	}
	policy := s.state.Policy()
	if input.Block != "" && policy.IsAuditorium(input.Block) {
		input.RoomType = booking.RoomTypeAuditorium
	}

	logger := s.loggerWith(ctx, "Register",
		"block", input.Block,
		"room", input.RoomID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room registered")
	}()

	err = s.state.update(func(rooms *booking.RoomRegistry, _ *booking.ReservationRegistry) error {
		if vErr := rejection(policy.ValidateRoom(input, rooms.All())); vErr != nil {
			return vErr
		}
		room = booking.Room{
			ID:           s.idGenerator(),
			Block:        input.Block,
			RoomID:       input.RoomID,
			Capacity:     input.Capacity,
			RoomType:     input.RoomType,
			RegisteredOn: today(s.now),
		}
		rooms.Add(room)
		s.state.persistRooms(ctx)
		return nil
	})
	if err != nil {
		return
	}

	s.state.publish(ctx, events.RoomEvent(events.RoomRegistered, room, s.now()))
	return
}

// Remove deletes the first room matching (block, roomID). Removing a room
// that is not registered is not an error.
func (s *RoomService) Remove(ctx context.Context, block, roomID string) (removed bool, err error) {
	block = strings.TrimSpace(block)
	roomID = strings.TrimSpace(roomID)

	logger := s.loggerWith(ctx, "Remove", "block", block, "room", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room removal processed", "removed", removed)
	}()

	if block == "" || roomID == "" {
		vErr := &ValidationError{}
		if block == "" {
			vErr.add("block", "block is required")
		}
		if roomID == "" {
			vErr.add("room_id", "room is required")
		}
		err = vErr
		return
	}

	var room booking.Room
	err = s.state.update(func(rooms *booking.RoomRegistry, _ *booking.ReservationRegistry) error {
		room, removed = rooms.Find(block, roomID)
		if !removed {
			return nil
		}
		rooms.Remove(block, roomID)
		s.state.persistRooms(ctx)
		return nil
	})
	if err == nil && removed {
		s.state.publish(ctx, events.RoomEvent(events.RoomRemoved, room, s.now()))
	}
	return
}

// RemoveByID deletes the room with the generated identifier id, if any.
func (s *RoomService) RemoveByID(ctx context.Context, id string) (removed bool, err error) {
	logger := s.loggerWith(ctx, "RemoveByID", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room removal processed", "removed", removed)
	}()

	var room booking.Room
	err = s.state.update(func(rooms *booking.RoomRegistry, _ *booking.ReservationRegistry) error {
		room, removed = rooms.RemoveByID(id)
		if removed {
			s.state.persistRooms(ctx)
		}
		return nil
	})
	if err == nil && removed {
		s.state.publish(ctx, events.RoomEvent(events.RoomRemoved, room, s.now()))
	}
	return
}

// Get returns the room with the generated identifier id.
func (s *RoomService) Get(ctx context.Context, id string) (booking.Room, error) {
	for _, r := range s.state.Rooms() {
		if r.ID == id {
			return r, nil
		}
	}
	return booking.Room{}, ErrNotFound
}

// List returns the registered rooms matching filter in registration order.
func (s *RoomService) List(ctx context.Context, filter booking.RoomFilter) (rooms []booking.Room, err error) {
	logger := s.loggerWith(ctx, "List")
	defer func() {
		logger.With("result_count", len(rooms)).DebugContext(ctx, "rooms listed")
	}()

	rooms = booking.FilterRooms(s.state.Rooms(), filter)
	return
}

// AvailableBlocks lists every catalog block with the rooms that can still be registered.
func (s *RoomService) AvailableBlocks(ctx context.Context) []BlockAvailability {
	catalog := s.state.Policy().Catalog
	registered := s.state.Rooms()

	out := make([]BlockAvailability, 0, len(catalog.Blocks))
	for _, name := range catalog.BlockNames() {
		out = append(out, BlockAvailability{
			Block: name,
			Rooms: catalog.AvailableRooms(name, registered),
		})
	}
	return out
}
