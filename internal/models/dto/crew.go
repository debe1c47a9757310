package dto

import (
	"time"

	"github.com/Munionn/Airport-sub002/internal/models"
)

type CreateCrewRequest struct {
	FlightID int64           `json:"flight_id"`
	UserID   int64           `json:"user_id"`
	Position models.Position `json:"position"`
	Notes    *string         `json:"notes,omitempty"`
}

type UpdateCrewRequest struct {
	FlightID *int64           `json:"flight_id,omitempty"`
	UserID   *int64           `json:"user_id,omitempty"`
	Position *models.Position `json:"position,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

type CheckAvailabilityRequest struct {
	UserID int64 `json:"user_id"`
}

// CurrentFlight is the earliest active flight a crew member is assigned to.
type CurrentFlight struct {
	FlightID           int64               `json:"flight_id"`
	FlightNumber       string              `json:"flight_number"`
	Status             models.FlightStatus `json:"status"`
	ScheduledDeparture time.Time           `json:"scheduled_departure"`
	ScheduledArrival   time.Time           `json:"scheduled_arrival"`
}

type Availability struct {
	UserID            int64            `json:"user_id"`
	IsAvailable       bool             `json:"is_available"`
	Position          *models.Position `json:"position,omitempty"`
	CurrentFlight     *CurrentFlight   `json:"current_flight,omitempty"`
	TotalFlightHours  float64          `json:"total_flight_hours"`
	RestHoursRequired float64          `json:"rest_hours_required"`
	NextAvailable     time.Time        `json:"next_available"`
}

type CrewActivity struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Assignments int    `json:"assignments"`
}

type CrewEfficiency struct {
	UserID           int64   `json:"user_id"`
	Username         string  `json:"username"`
	FullName         string  `json:"full_name"`
	CompletedFlights int     `json:"completed_flights"`
	OnTimeArrivals   int     `json:"on_time_arrivals"`
	OnTimeRate       float64 `json:"on_time_rate"`
}

type CrewStatistics struct {
	TotalCrew             int                     `json:"total_crew"`
	TotalAssignments      int                     `json:"total_assignments"`
	AvgAssignmentsPerCrew float64                 `json:"avg_assignments_per_crew"`
	ByPosition            map[models.Position]int `json:"by_position"`
	MostActive            []CrewActivity          `json:"most_active"`
	MostEfficient         []CrewEfficiency        `json:"most_efficient"`
}
