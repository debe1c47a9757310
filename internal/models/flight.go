package models

import "time"

// FlightStatus is the lifecycle state of a flight.
type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightBoarding  FlightStatus = "boarding"
	FlightDeparted  FlightStatus = "departed"
	FlightArrived   FlightStatus = "arrived"
	FlightCompleted FlightStatus = "completed"
	FlightDelayed   FlightStatus = "delayed"
	FlightCancelled FlightStatus = "cancelled"
)

// Active reports whether crew assigned to the flight are considered on duty.
func (s FlightStatus) Active() bool {
	return s == FlightScheduled || s == FlightBoarding || s == FlightDeparted
}

// Completed reports whether the flight has landed.
func (s FlightStatus) Completed() bool {
	return s == FlightArrived || s == FlightCompleted
}

// Flight is a scheduled leg on a route.
type Flight struct {
	ID                 int64        `json:"id"`
	RouteID            int64        `json:"route_id"`
	FlightNumber       string       `json:"flight_number"`
	ScheduledDeparture time.Time    `json:"scheduled_departure"`
	ScheduledArrival   time.Time    `json:"scheduled_arrival"`
	ActualDeparture    *time.Time   `json:"actual_departure,omitempty"`
	ActualArrival      *time.Time   `json:"actual_arrival,omitempty"`
	Status             FlightStatus `json:"status"`
}
