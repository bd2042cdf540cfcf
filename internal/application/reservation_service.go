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

// ReservationService orchestrates validation, registry updates, and persistence for reservations.
type ReservationService struct {
	state       *State
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewReservationService constructs a reservation service with the provided dependencies.
func NewReservationService(state *State, idGenerator func() string, now func() time.Time) *ReservationService {
	return NewReservationServiceWithLogger(state, idGenerator, now, nil)
}

// NewReservationServiceWithLogger constructs a reservation service with a specified logger.
func NewReservationServiceWithLogger(state *State, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ReservationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationService{state: state, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// Book validates the proposed reservation against today and the existing
// reservations, then appends it. The room type is copied from the registered
// room when there is one.
func (s *ReservationService) Book(ctx context.Context, params BookReservationParams) (res booking.Reservation, err error) {
	if s == nil || s.state == nil {
		err = fmt.Errorf("ReservationService is not configured")
		return
	}

	block := strings.TrimSpace(params.Block)
	roomID := strings.TrimSpace(params.RoomID)
	logger := s.loggerWith(ctx, "Book",
		"block", block,
		"room", roomID,
		"start_date", params.StartDate.String(),
		"start_time", params.StartTime.String(),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to book reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", res.ID).InfoContext(ctx, "reservation booked")
	}()

	policy := s.state.Policy()
	bookedOn := today(s.now)

	err = s.state.update(func(rooms *booking.RoomRegistry, reservations *booking.ReservationRegistry) error {
		input := booking.ReservationInput{
			Block:     block,
			RoomID:    roomID,
			StartDate: params.StartDate,
			EndDate:   params.EndDate,
			StartTime: params.StartTime,
			EndTime:   params.EndTime,
			Capacity:  params.Capacity,
		}
		roomType := booking.RoomType("")
		if room, ok := rooms.Find(block, roomID); ok {
			roomType = room.RoomType
			if input.Capacity == 0 {
				input.Capacity = room.Capacity
			}
		} else if block != "" && policy.IsAuditorium(block) {
			roomType = booking.RoomTypeAuditorium
		}

		decision := policy.ValidateReservation(input, bookedOn, reservations.All())
		if vErr := rejection(decision); vErr != nil {
			return vErr
		}

		res = booking.Reservation{
			ID:            s.idGenerator(),
			Block:         block,
			RoomID:        roomID,
			RoomType:      roomType,
			StartDate:     params.StartDate,
			EndDate:       params.EndDate,
			StartTime:     params.StartTime,
			EndTime:       params.EndTime,
			RequesterID:   strings.TrimSpace(params.RequesterID),
			RequesterName: strings.TrimSpace(params.RequesterName),
			Subject:       strings.TrimSpace(params.Subject),
			BookedOn:      bookedOn,
		}
		reservations.Add(res)
		s.state.persistReservations(ctx)
		return nil
	})
	if err != nil {
		return
	}

	s.state.publish(ctx, events.ReservationEvent(events.ReservationBooked, res, s.now()))
	return
}

// Remove deletes the first reservation matching the legacy composite key.
// Removing an unknown reservation is not an error.
func (s *ReservationService) Remove(ctx context.Context, params RemoveReservationParams) (removed bool, err error) {
	roomID := strings.TrimSpace(params.RoomID)
	logger := s.loggerWith(ctx, "Remove",
		"booked_on", params.BookedOn.String(),
		"room", roomID,
		"start_time", params.StartTime.String(),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "reservation removal processed", "removed", removed)
	}()

	var res booking.Reservation
	err = s.state.update(func(_ *booking.RoomRegistry, reservations *booking.ReservationRegistry) error {
		for _, r := range reservations.All() {
			if r.BookedOn == params.BookedOn && r.RoomID == roomID && r.StartTime == params.StartTime {
				res = r
				break
			}
		}
		removed = reservations.Remove(params.BookedOn, roomID, params.StartTime)
		if removed {
			s.state.persistReservations(ctx)
		}
		return nil
	})
	if err == nil && removed {
		s.state.publish(ctx, events.ReservationEvent(events.ReservationRemoved, res, s.now()))
	}
	return
}

// RemoveByID deletes the reservation with the generated identifier id, if any.
func (s *ReservationService) RemoveByID(ctx context.Context, id string) (removed bool, err error) {
	logger := s.loggerWith(ctx, "RemoveByID", "reservation_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to remove reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "reservation removal processed", "removed", removed)
	}()

	var res booking.Reservation
	err = s.state.update(func(_ *booking.RoomRegistry, reservations *booking.ReservationRegistry) error {
		res, removed = reservations.RemoveByID(id)
		if removed {
			s.state.persistReservations(ctx)
		}
		return nil
	})
	if err == nil && removed {
		s.state.publish(ctx, events.ReservationEvent(events.ReservationRemoved, res, s.now()))
	}
	return
}

// List returns the reservations matching filter, ordered by start date and
// time, each with its status relative to today.
func (s *ReservationService) List(ctx context.Context, filter booking.ReservationFilter) (listings []ReservationListing, err error) {
	logger := s.loggerWith(ctx, "List")
	defer func() {
		logger.With("result_count", len(listings)).DebugContext(ctx, "reservations listed")
	}()

	matched := booking.FilterReservations(s.state.Reservations(), filter)
	booking.SortByStartDateTime(matched)

	day := today(s.now)
	listings = make([]ReservationListing, 0, len(matched))
	for _, r := range matched {
		listings = append(listings, ReservationListing{Reservation: r, Status: r.StatusOn(day)})
	}
	return
}
