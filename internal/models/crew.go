package models

import "time"

// Position is a crew seat on a flight.
type Position string

const (
	PositionPilot           Position = "pilot"
	PositionCoPilot         Position = "co_pilot"
	PositionFlightEngineer  Position = "flight_engineer"
	PositionPurser          Position = "purser"
	PositionFlightAttendant Position = "flight_attendant"
)

// Positions lists every crew position in display order.
var Positions = []Position{
	PositionPilot,
	PositionCoPilot,
	PositionFlightEngineer,
	PositionPurser,
	PositionFlightAttendant,
}

// Valid reports whether p is one of Positions.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// CrewAssignment links a user to a flight in a given position.
type CrewAssignment struct {
	ID         int64     `json:"id"`
	FlightID   int64     `json:"flight_id"`
	UserID     int64     `json:"user_id"`
	Position   Position  `json:"position"`
	Notes      *string   `json:"notes,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	FlightNumber       string       `json:"flight_number"`
	FlightStatus       FlightStatus `json:"flight_status"`
	ScheduledDeparture time.Time    `json:"scheduled_departure"`
	ScheduledArrival   time.Time    `json:"scheduled_arrival"`
	Username           string       `json:"username"`
	CrewName           string       `json:"crew_name"`
}

// NewCrewAssignment carries the columns written when assigning crew.
type NewCrewAssignment struct {
	FlightID int64
	UserID   int64
	Position Position
	Notes    *string
}

// CrewPatch is a partial update of an assignment; nil fields are left as is.
type CrewPatch struct {
	FlightID *int64
	UserID   *int64
	Position *Position
	Notes    *string // empty clears the notes
}

// CrewFilter narrows assignment listings and statistics.
type CrewFilter struct {
	FlightID     *int64
	UserID       *int64
	Position     *Position
	FlightNumber string
	CrewName     string
}

// CrewMemberTally aggregates one crew member's assignments.
type CrewMemberTally struct {
	UserID           int64
	Username         string
	FullName         string
	Assignments      int
	CompletedFlights int
	OnTimeArrivals   int
}
