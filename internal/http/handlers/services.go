package handlers

import (
	"context"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// AuthService registers users and verifies credentials.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

// CrewService manages flight-crew assignments.
type CrewService interface {
	Create(ctx context.Context, req dto.CreateCrewRequest) (models.CrewAssignment, error)
	List(ctx context.Context, filter models.CrewFilter, page models.PageRequest) (models.Page[models.CrewAssignment], error)
	Get(ctx context.Context, id int64) (models.CrewAssignment, error)
	ByFlight(ctx context.Context, flightID int64) ([]models.CrewAssignment, error)
	ByUser(ctx context.Context, userID int64) ([]models.CrewAssignment, error)
	Update(ctx context.Context, id int64, req dto.UpdateCrewRequest) (models.CrewAssignment, error)
	Delete(ctx context.Context, id int64) error
	CheckAvailability(ctx context.Context, userID int64) (dto.Availability, error)
	Statistics(ctx context.Context, filter models.CrewFilter) (dto.CrewStatistics, error)
}

// RouteService manages routes and their aggregates.
type RouteService interface {
	Create(ctx context.Context, req dto.CreateRouteRequest) (models.Route, error)
	List(ctx context.Context, filter models.RouteFilter, page models.PageRequest) (models.Page[models.Route], error)
	Get(ctx context.Context, id int64) (models.Route, error)
	ByDeparture(ctx context.Context, airportID int64) ([]models.Route, error)
	ByArrival(ctx context.Context, airportID int64) ([]models.Route, error)
	Update(ctx context.Context, id int64, req dto.UpdateRouteRequest) (models.Route, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context, filter dto.RouteStatisticsFilter) ([]dto.RouteStatistics, error)
	Popular(ctx context.Context, limit int, departureCountry, arrivalCountry string) ([]dto.PopularRoute, error)
}
