package http

import (
	"strings"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/grid"
)

type roomRequest struct {
	Block    string `json:"block"`
	RoomID   string `json:"roomId"`
	Capacity int    `json:"capacity"`
	RoomType string `json:"roomType"`
}

func (r roomRequest) toParams() application.RegisterRoomParams {
	return application.RegisterRoomParams{
		Block:    r.Block,
		RoomID:   r.RoomID,
		Capacity: r.Capacity,
		RoomType: booking.RoomType(strings.TrimSpace(r.RoomType)),
	}
}

type roomDTO struct {
	ID           string `json:"id"`
	Block        string `json:"block"`
	RoomID       string `json:"roomId"`
	Capacity     int    `json:"capacity"`
	RoomType     string `json:"roomType"`
	RegisteredOn string `json:"registeredOn,omitempty"`
}

func toRoomDTO(room booking.Room) roomDTO {
	dto := roomDTO{
		ID:       room.ID,
		Block:    room.Block,
		RoomID:   room.RoomID,
		Capacity: room.Capacity,
		RoomType: string(room.RoomType),
	}
	if !room.RegisteredOn.IsZero() {
		dto.RegisteredOn = room.RegisteredOn.String()
	}
	return dto
}

type roomResponse struct {
	Room roomDTO `json:"room"`
}

type roomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type blockDTO struct {
	Block string   `json:"block"`
	Rooms []string `json:"availableRooms"`
}

type blocksResponse struct {
	Blocks []blockDTO `json:"blocks"`
}

type reservationRequest struct {
	Block         string `json:"block"`
	RoomID        string `json:"roomId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Capacity      int    `json:"capacity"`
	RequesterID   string `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	Subject       string `json:"subject"`
}

// toParams parses the textual dates and times. Format problems are reported
// per field like business rejections.
func (r reservationRequest) toParams() (application.BookReservationParams, *application.ValidationError) {
	params := application.BookReservationParams{
		Block:         r.Block,
		RoomID:        r.RoomID,
		Capacity:      r.Capacity,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Subject:       r.Subject,
	}
	fieldErrors := map[string]string{}

	if v := strings.TrimSpace(r.StartDate); v != "" {
		d, err := booking.ParseDate(v)
		if err != nil {
			fieldErrors["start_date"] = "start date must use YYYY-MM-DD"
		}
		params.StartDate = d
	}
	if v := strings.TrimSpace(r.EndDate); v != "" {
		d, err := booking.ParseDate(v)
		if err != nil {
			fieldErrors["end_date"] = "end date must use YYYY-MM-DD"
		}
		params.EndDate = d
	}

	var problem string
	if params.StartTime, problem = parseRequiredTime(r.StartTime); problem != "" {
		fieldErrors["start_time"] = "start time " + problem
	}
	if params.EndTime, problem = parseRequiredTime(r.EndTime); problem != "" {
		fieldErrors["end_time"] = "end time " + problem
	}

	if len(fieldErrors) > 0 {
		return params, &application.ValidationError{FieldErrors: fieldErrors}
	}
	return params, nil
}

func parseRequiredTime(value string) (booking.TimeOfDay, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, "is required"
	}
	t, err := booking.ParseTimeOfDay(value)
	if err != nil {
		return 0, "must use HH:MM"
	}
	return t, ""
}

type reservationDTO struct {
	ID            string `json:"id"`
	Block         string `json:"block"`
	RoomID        string `json:"roomId"`
	RoomType      string `json:"roomType,omitempty"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate,omitempty"`
	DayOfWeek     string `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	RequesterID   string `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	Subject       string `json:"subject"`
	BookedOn      string `json:"bookedOn,omitempty"`
	Status        string `json:"status,omitempty"`
}

func toReservationDTO(r booking.Reservation) reservationDTO {
	dto := reservationDTO{
		ID:            r.ID,
		Block:         r.Block,
		RoomID:        r.RoomID,
		RoomType:      string(r.RoomType),
		StartDate:     r.StartDate.String(),
		DayOfWeek:     booking.DayName(r.DayOfWeek()),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Subject:       r.Subject,
	}
	if !r.EndDate.IsZero() {
		dto.EndDate = r.EndDate.String()
	}
	if !r.BookedOn.IsZero() {
		dto.BookedOn = r.BookedOn.String()
	}
	return dto
}

type reservationResponse struct {
	Reservation reservationDTO `json:"reservation"`
}

type reservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type cellDTO struct {
	ReservationID string `json:"reservationId,omitempty"`
	Label         string `json:"label,omitempty"`
	Detail        string `json:"detail,omitempty"`
	Color         string `json:"color,omitempty"`
}

type gridResponse struct {
	Days  []string    `json:"days"`
	Slots []string    `json:"slots"`
	Cells [][]cellDTO `json:"cells"`
}

func toGridResponse(g grid.Grid) gridResponse {
	resp := gridResponse{
		Days:  make([]string, 0, len(g.Days)),
		Slots: make([]string, 0, len(g.Slots)),
		Cells: make([][]cellDTO, 0, len(g.Cells)),
	}
	for _, d := range g.Days {
		resp.Days = append(resp.Days, booking.DayAbbrev(d))
	}
	for _, s := range g.Slots {
		resp.Slots = append(resp.Slots, s.String())
	}
	for _, row := range g.Cells {
		cells := make([]cellDTO, len(row))
		for i, cell := range row {
			if cell.Empty() {
				continue
			}
			cells[i] = cellDTO{
				ReservationID: cell.Reservation.ID,
				Label:         cell.Label,
				Detail:        cell.Detail,
				Color:         cell.Color,
			}
		}
		resp.Cells = append(resp.Cells, cells)
	}
	return resp
}
