package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RouteStatus is the operational state of a route.
type RouteStatus string

const (
	RouteActive    RouteStatus = "active"
	RouteInactive  RouteStatus = "inactive"
	RouteSuspended RouteStatus = "suspended"
)

// Valid reports whether s is a known route status.
func (s RouteStatus) Valid() bool {
	switch s {
	case RouteActive, RouteInactive, RouteSuspended:
		return true
	}
	return false
}

// Route connects an ordered pair of airports.
type Route struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	DepartureAirportID int64           `json:"departure_airport_id"`
	ArrivalAirportID   int64           `json:"arrival_airport_id"`
	DistanceKM         int             `json:"distance_km"`
	DurationMinutes    int             `json:"duration_minutes"`
	Status             RouteStatus     `json:"status"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Description        *string         `json:"description,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	DepartureAirport *AirportSummary `json:"departure_airport,omitempty"`
	ArrivalAirport   *AirportSummary `json:"arrival_airport,omitempty"`
}

// NewRoute carries the columns written when creating a route.
type NewRoute struct {
	Name               string
	DepartureAirportID int64
	ArrivalAirportID   int64
	DistanceKM         int
	DurationMinutes    int
	Status             RouteStatus
	BasePrice          decimal.Decimal
	Description        *string
}

// RoutePatch is a partial update of a route; nil fields are left as is.
type RoutePatch struct {
	Name               *string
	DepartureAirportID *int64
	ArrivalAirportID   *int64
	DistanceKM         *int
	DurationMinutes    *int
	Status             *RouteStatus
	BasePrice          *decimal.Decimal
	Description        *string // empty clears the description
}

// RouteFilter narrows route listings.
type RouteFilter struct {
	Status             *RouteStatus
	DepartureAirportID *int64
	ArrivalAirportID   *int64
	DepartureCountry   string
	ArrivalCountry     string
	Search             string
}

// RouteTally is the raw per-route aggregate read from flights and tickets.
type RouteTally struct {
	Route            Route
	FlightCount      int
	PassengerCount   int
	TotalRevenue     decimal.Decimal
	AvgTicketPrice   decimal.Decimal
	CompletedFlights int
	OnTimeDepartures int
	// MonthlyFlights is indexed by time.Month.
	MonthlyFlights map[time.Month]int
	WeekdayFlights map[time.Weekday]int
}
