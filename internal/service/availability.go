package service

import (
	"time"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// RestPolicyHours is the rest a crew member needs per 24 hours of flying.
const RestPolicyHours = 12

const (
	// activeWindow reaches back to catch flights that departed recently and
	// are still in the air.
	activeWindow = 2 * time.Hour
	flownWindow  = 24 * time.Hour
)

// ComputeAvailability derives a crew member's availability at now.
//
// active holds the member's assignments on scheduled, boarding or departed
// flights departing no earlier than now minus two hours, earliest first.
// flown holds assignments on departed or arrived flights from the last 24 hours.
func ComputeAvailability(userID int64, active, flown []models.CrewAssignment, now time.Time) dto.Availability {
	var hours float64
	for _, a := range flown {
		hours += a.ScheduledArrival.Sub(a.ScheduledDeparture).Hours()
	}
	hours = round2(hours)

	out := dto.Availability{
		UserID:            userID,
		IsAvailable:       len(active) == 0,
		TotalFlightHours:  hours,
		RestHoursRequired: round2(max(0, RestPolicyHours-hours)),
		NextAvailable:     now,
	}
	if len(active) == 0 {
		return out
	}

	first := active[0]
	position := first.Position
	out.Position = &position
	out.CurrentFlight = &dto.CurrentFlight{
		FlightID:           first.FlightID,
		FlightNumber:       first.FlightNumber,
		Status:             first.FlightStatus,
		ScheduledDeparture: first.ScheduledDeparture,
		ScheduledArrival:   first.ScheduledArrival,
	}
	out.NextAvailable = active[len(active)-1].ScheduledArrival.Add(RestPolicyHours * time.Hour)
	return out
}
