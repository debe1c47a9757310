package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

// Routes manages routes and computes route aggregates.
type Routes struct {
	routes storage.RouteStore
	log    logrus.FieldLogger
}

// NewRoutes constructs the route service.
func NewRoutes(routes storage.RouteStore, log logrus.FieldLogger) *Routes {
	return &Routes{routes: routes, log: log}
}

// Create adds a route between two distinct airports.
func (s *Routes) Create(ctx context.Context, req dto.CreateRouteRequest) (models.Route, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Status == "" {
		req.Status = models.RouteActive
	}
	if req.Name == "" {
		return models.Route{}, badRequest("name is required")
	}
	if req.DepartureAirportID <= 0 || req.ArrivalAirportID <= 0 {
		return models.Route{}, badRequest("departure_airport_id and arrival_airport_id are required")
	}
	if err := validateRouteFields(&req.DistanceKM, &req.DurationMinutes, &req.Status, &req.BasePrice); err != nil {
		return models.Route{}, err
	}

	if err := s.checkPair(ctx, req.DepartureAirportID, req.ArrivalAirportID, 0); err != nil {
		return models.Route{}, err
	}

	created, err := s.routes.CreateRoute(ctx, models.NewRoute{
		Name:               req.Name,
		DepartureAirportID: req.DepartureAirportID,
		ArrivalAirportID:   req.ArrivalAirportID,
		DistanceKM:         req.DistanceKM,
		DurationMinutes:    req.DurationMinutes,
		Status:             req.Status,
		BasePrice:          req.BasePrice,
		Description:        optional(req.Description),
	})
	if err != nil {
		return models.Route{}, writeRouteError("create route", err)
	}

	s.log.WithFields(logrus.Fields{
		"event":    "route_created",
		"route_id": created.ID,
	}).Info("route created")
	return created, nil
}

// List returns one page of routes.
func (s *Routes) List(ctx context.Context, filter models.RouteFilter, page models.PageRequest) (models.Page[models.Route], error) {
	page = page.Normalize()
	list, total, err := s.routes.ListRoutes(ctx, filter, page)
	if err != nil {
		return models.Page[models.Route]{}, fmt.Errorf("list routes: %w", err)
	}
	return models.NewPage(list, total, page), nil
}

// Get returns one route.
func (s *Routes) Get(ctx context.Context, id int64) (models.Route, error) {
	route, err := s.routes.RouteByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Route{}, notFound("route %d not found", id)
		}
		return models.Route{}, fmt.Errorf("get route: %w", err)
	}
	return route, nil
}

// ByDeparture returns routes leaving an airport.
func (s *Routes) ByDeparture(ctx context.Context, airportID int64) ([]models.Route, error) {
	list, err := s.routes.FindRoutes(ctx, models.RouteFilter{DepartureAirportID: &airportID})
	if err != nil {
		return nil, fmt.Errorf("find routes by departure: %w", err)
	}
	return list, nil
}

// ByArrival returns routes arriving at an airport.
func (s *Routes) ByArrival(ctx context.Context, airportID int64) ([]models.Route, error) {
	list, err := s.routes.FindRoutes(ctx, models.RouteFilter{ArrivalAirportID: &airportID})
	if err != nil {
		return nil, fmt.Errorf("find routes by arrival: %w", err)
	}
	return list, nil
}

// Update applies a partial update. The resulting airport pair is checked
// against every other route.
func (s *Routes) Update(ctx context.Context, id int64, req dto.UpdateRouteRequest) (models.Route, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Route{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return models.Route{}, badRequest("name cannot be empty")
		}
		req.Name = &name
	}
	if err := validateRouteFields(req.DistanceKM, req.DurationMinutes, req.Status, req.BasePrice); err != nil {
		return models.Route{}, err
	}

	departure, arrival := current.DepartureAirportID, current.ArrivalAirportID
	if req.DepartureAirportID != nil {
		departure = *req.DepartureAirportID
	}
	if req.ArrivalAirportID != nil {
		arrival = *req.ArrivalAirportID
	}
	if departure != current.DepartureAirportID || arrival != current.ArrivalAirportID {
		if err := s.checkPair(ctx, departure, arrival, id); err != nil {
			return models.Route{}, err
		}
	}

	updated, err := s.routes.UpdateRoute(ctx, id, models.RoutePatch{
		Name:               req.Name,
		DepartureAirportID: req.DepartureAirportID,
		ArrivalAirportID:   req.ArrivalAirportID,
		DistanceKM:         req.DistanceKM,
		DurationMinutes:    req.DurationMinutes,
		Status:             req.Status,
		BasePrice:          req.BasePrice,
		Description:        trimmed(req.Description),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Route{}, notFound("route %d not found", id)
		}
		return models.Route{}, writeRouteError("update route", err)
	}
	return updated, nil
}

// Delete removes a route no flight references.
func (s *Routes) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	flights, err := s.routes.CountFlightsForRoute(ctx, id)
	if err != nil {
		return fmt.Errorf("count route flights: %w", err)
	}
	if flights > 0 {
		return conflict("route %d is used by %d flights", id, flights)
	}

	if err := s.routes.DeleteRoute(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return notFound("route %d not found", id)
		case errors.Is(err, storage.ErrInUse):
			return conflict("route %d is used by flights", id)
		}
		return fmt.Errorf("delete route: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"event":    "route_deleted",
		"route_id": id,
	}).Info("route deleted")
	return nil
}

// Statistics returns per-route aggregates for routes matching filter.
func (s *Routes) Statistics(ctx context.Context, filter dto.RouteStatisticsFilter) ([]dto.RouteStatistics, error) {
	tallies, err := s.routes.RouteTallies(ctx, models.RouteFilter{
		Status:           filter.Status,
		DepartureCountry: filter.DepartureCountry,
		ArrivalCountry:   filter.ArrivalCountry,
	})
	if err != nil {
		return nil, fmt.Errorf("route tallies: %w", err)
	}

	out := make([]dto.RouteStatistics, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, BuildRouteStatistics(t))
	}
	return out, nil
}

// Popular ranks routes by popularity score and returns at most limit of them.
func (s *Routes) Popular(ctx context.Context, limit int, departureCountry, arrivalCountry string) ([]dto.PopularRoute, error) {
	tallies, err := s.routes.RouteTallies(ctx, models.RouteFilter{
		DepartureCountry: departureCountry,
		ArrivalCountry:   arrivalCountry,
	})
	if err != nil {
		return nil, fmt.Errorf("route tallies: %w", err)
	}
	return RankPopularRoutes(tallies, limit), nil
}

// checkPair validates a would-be airport pair: both airports exist, no other
// route flies it, and it is not a self-route.
func (s *Routes) checkPair(ctx context.Context, departureID, arrivalID, excludeID int64) error {
	for _, id := range []int64{departureID, arrivalID} {
		if _, err := s.routes.AirportByID(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound("airport %d not found", id)
			}
			return fmt.Errorf("find airport: %w", err)
		}
	}

	exists, err := s.routes.RouteExistsForPair(ctx, departureID, arrivalID, excludeID)
	if err != nil {
		return fmt.Errorf("check route pair: %w", err)
	}
	if exists {
		return conflict("a route from airport %d to airport %d already exists", departureID, arrivalID)
	}
	if departureID == arrivalID {
		return conflict("departure and arrival airports must differ")
	}
	return nil
}

func validateRouteFields(distance, duration *int, status *models.RouteStatus, price *decimal.Decimal) error {
	if distance != nil && *distance < 0 {
		return badRequest("distance_km cannot be negative")
	}
	if duration != nil && *duration < 0 {
		return badRequest("duration_minutes cannot be negative")
	}
	if status != nil && !status.Valid() {
		return badRequest("unknown route status %q", *status)
	}
	if price != nil && price.IsNegative() {
		return badRequest("base_price cannot be negative")
	}
	return nil
}

func writeRouteError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return conflict("a route between these airports already exists")
	case errors.Is(err, storage.ErrInUse):
		return notFound("referenced airport does not exist")
	}
	return fmt.Errorf("%s: %w", op, err)
}
