// Package http exposes the booking services over a JSON API built on gin.
//
// The router exposes the following endpoints:
//   - GET /healthz: liveness probe; 503 when the backing store is unavailable.
//   - GET /api/blocks: catalog blocks with the rooms not registered yet.
//   - GET /api/rooms?block=&type=&minCapacity=, POST /api/rooms: room listing and
//     registration exchanging the `roomDTO` payload defined in dto.go.
//   - DELETE /api/rooms/{id}, DELETE /api/rooms?block=&roomId=: idempotent
//     removal by identifier or by (block, room).
//   - GET /api/reservations?requester=&block=&period=, POST /api/reservations:
//     listing (ordered by start date and time) and booking with `reservationDTO`.
//   - DELETE /api/reservations/{id},
//     DELETE /api/reservations?bookedOn=&roomId=&startTime=: idempotent removal.
//   - GET /api/grid: the weekly occupancy grid.
//
// Rejected registrations and bookings answer 422 with {"message","errors"}
// where errors maps the offending field to its reason.
package http
