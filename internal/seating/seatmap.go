package seating

// SeatState is the render state of one seat in the map view.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatOccupied  SeatState = "occupied"
	SeatSelected  SeatState = "selected"
)

type Seat struct {
	Number   int       `json:"number"`
	State    SeatState `json:"state"`
	Occupant string    `json:"occupant,omitempty"`
}

type SeatMap struct {
	TotalSeats int    `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// BuildSeatMap produces the view model for seats 1..totalSeats. Each seat
// gets exactly one state: occupied when present in the occupancy snapshot,
// selected when it equals selected and is free, available otherwise.
// occupantNames may be nil. Pure; triggers no reads or writes.
func BuildSeatMap(totalSeats int, occupied Occupancy, occupantNames map[int]string, selected int) SeatMap {
	seats := make([]Seat, 0, totalSeats)
	for n := 1; n <= totalSeats; n++ {
		seat := Seat{Number: n, State: SeatAvailable}
		switch {
		case occupied.Occupied(n):
			seat.State = SeatOccupied
			seat.Occupant = occupantNames[n]
		case n == selected:
			seat.State = SeatSelected
		}
		seats = append(seats, seat)
	}
	return SeatMap{TotalSeats: totalSeats, Seats: seats}
}
