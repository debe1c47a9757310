package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Munionn/Airport-sub002/internal/models"
)

type CreateRouteRequest struct {
	Name               string             `json:"name"`
	DepartureAirportID int64              `json:"departure_airport_id"`
	ArrivalAirportID   int64              `json:"arrival_airport_id"`
	DistanceKM         int                `json:"distance_km"`
	DurationMinutes    int                `json:"duration_minutes"`
	Status             models.RouteStatus `json:"status,omitempty"`
	BasePrice          decimal.Decimal    `json:"base_price"`
	Description        *string            `json:"description,omitempty"`
}

type UpdateRouteRequest struct {
	Name               *string             `json:"name,omitempty"`
	DepartureAirportID *int64              `json:"departure_airport_id,omitempty"`
	ArrivalAirportID   *int64              `json:"arrival_airport_id,omitempty"`
	DistanceKM         *int                `json:"distance_km,omitempty"`
	DurationMinutes    *int                `json:"duration_minutes,omitempty"`
	Status             *models.RouteStatus `json:"status,omitempty"`
	BasePrice          *decimal.Decimal    `json:"base_price,omitempty"`
	Description        *string             `json:"description,omitempty"`
}

// RouteStatisticsFilter narrows GET /routes/statistics.
type RouteStatisticsFilter struct {
	DepartureCountry string
	ArrivalCountry   string
	Status           *models.RouteStatus
}

type RouteStatistics struct {
	RouteID           int64                  `json:"route_id"`
	RouteName         string                 `json:"route_name"`
	DepartureAirport  *models.AirportSummary `json:"departure_airport,omitempty"`
	ArrivalAirport    *models.AirportSummary `json:"arrival_airport,omitempty"`
	TotalFlights      int                    `json:"total_flights"`
	TotalPassengers   int                    `json:"total_passengers"`
	LoadFactor        float64                `json:"load_factor"`
	AvgTicketPrice    decimal.Decimal        `json:"avg_ticket_price"`
	TotalRevenue      decimal.Decimal        `json:"total_revenue"`
	OnTimePerformance float64                `json:"on_time_performance"`
	MostPopularMonth  *string                `json:"most_popular_month"`
	BusiestWeekday    *string                `json:"busiest_weekday"`
}

type PopularRoute struct {
	RouteID          int64                  `json:"route_id"`
	RouteName        string                 `json:"route_name"`
	DepartureAirport *models.AirportSummary `json:"departure_airport,omitempty"`
	ArrivalAirport   *models.AirportSummary `json:"arrival_airport,omitempty"`
	FlightCount      int                    `json:"flight_count"`
	PassengerCount   int                    `json:"passenger_count"`
	LoadFactor       float64                `json:"load_factor"`
	TotalRevenue     decimal.Decimal        `json:"total_revenue"`
	PopularityScore  float64                `json:"popularity_score"`
}
