package booking

// RoomRegistry is the ordered in-memory collection of registered rooms. It is
// not safe for concurrent use; callers serialize access.
type RoomRegistry struct {
	rooms []Room
}

// NewRoomRegistry returns a registry seeded with rooms in the given order.
func NewRoomRegistry(rooms []Room) *RoomRegistry {
	r := &RoomRegistry{}
	r.Replace(rooms)
	return r
}

// Add appends a room. Uniqueness is checked by ValidateRoom beforehand.
func (r *RoomRegistry) Add(room Room) {
	r.rooms = append(r.rooms, room)
}

// Remove deletes the first room matching block and roomID. It reports whether
// anything was removed; an absent room is a no-op.
func (r *RoomRegistry) Remove(block, roomID string) bool {
	for i, room := range r.rooms {
		if room.Block == block && room.RoomID == roomID {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByID deletes the room with the given identifier.
func (r *RoomRegistry) RemoveByID(id string) (Room, bool) {
	for i, room := range r.rooms {
		if room.ID == id {
			r.rooms = append(r.rooms[:i], r.rooms[i+1:]...)
			return room, true
		}
	}
	return Room{}, false
}

// Find looks a room up by its composite key.
func (r *RoomRegistry) Find(block, roomID string) (Room, bool) {
	for _, room := range r.rooms {
		if room.Block == block && room.RoomID == roomID {
			return room, true
		}
	}
	return Room{}, false
}

// Get looks a room up by identifier.
func (r *RoomRegistry) Get(id string) (Room, bool) {
	for _, room := range r.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

// All returns a copy of the rooms in registration order.
func (r *RoomRegistry) All() []Room {
	out := make([]Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// Len returns the number of registered rooms.
func (r *RoomRegistry) Len() int { return len(r.rooms) }

// Replace swaps the whole collection, as done when loading from storage.
func (r *RoomRegistry) Replace(rooms []Room) {
	r.rooms = make([]Room, len(rooms))
	copy(r.rooms, rooms)
}

// ReservationRegistry is the ordered in-memory collection of reservations.
// Order is insertion order and decides which reservation wins a grid cell.
type ReservationRegistry struct {
	reservations []Reservation
}

// NewReservationRegistry returns a registry seeded with reservations.
func NewReservationRegistry(reservations []Reservation) *ReservationRegistry {
	r := &ReservationRegistry{}
	r.Replace(reservations)
	return r
}

// Add appends a reservation already accepted by ValidateReservation.
func (r *ReservationRegistry) Add(res Reservation) {
	r.reservations = append(r.reservations, res)
}

// Remove deletes the first reservation matching the legacy composite key.
func (r *ReservationRegistry) Remove(bookedOn Date, roomID string, startTime TimeOfDay) bool {
	for i, res := range r.reservations {
		if res.BookedOn == bookedOn && res.RoomID == roomID && res.StartTime == startTime {
			r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByID deletes the reservation with the given identifier.
func (r *ReservationRegistry) RemoveByID(id string) (Reservation, bool) {
	for i, res := range r.reservations {
		if res.ID == id {
			r.reservations = append(r.reservations[:i], r.reservations[i+1:]...)
			return res, true
		}
	}
	return Reservation{}, false
}

// Get looks a reservation up by identifier.
func (r *ReservationRegistry) Get(id string) (Reservation, bool) {
	for _, res := range r.reservations {
		if res.ID == id {
			return res, true
		}
	}
	return Reservation{}, false
}

// All returns a copy of the reservations in registry order.
func (r *ReservationRegistry) All() []Reservation {
	out := make([]Reservation, len(r.reservations))
	copy(out, r.reservations)
	return out
}

func (r *ReservationRegistry) Len() int { return len(r.reservations) }

// Replace swaps the whole collection.
func (r *ReservationRegistry) Replace(reservations []Reservation) {
	r.reservations = make([]Reservation, len(reservations))
	copy(r.reservations, reservations)
}
