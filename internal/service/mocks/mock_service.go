package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
)

// MockAuthService is a mock implementation of the auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.AuthResponse), args.Error(1)
}

// MockCrewService is a mock implementation of the crew service
type MockCrewService struct {
	mock.Mock
}

func (m *MockCrewService) Create(ctx context.Context, req dto.CreateCrewRequest) (models.CrewAssignment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewService) List(ctx context.Context, filter models.CrewFilter, page models.PageRequest) (models.Page[models.CrewAssignment], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(models.Page[models.CrewAssignment]), args.Error(1)
}

func (m *MockCrewService) Get(ctx context.Context, id int64) (models.CrewAssignment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewService) ByFlight(ctx context.Context, flightID int64) ([]models.CrewAssignment, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewAssignment), args.Error(1)
}

func (m *MockCrewService) ByUser(ctx context.Context, userID int64) ([]models.CrewAssignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewAssignment), args.Error(1)
}

func (m *MockCrewService) Update(ctx context.Context, id int64, req dto.UpdateCrewRequest) (models.CrewAssignment, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCrewService) CheckAvailability(ctx context.Context, userID int64) (dto.Availability, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dto.Availability), args.Error(1)
}

func (m *MockCrewService) Statistics(ctx context.Context, filter models.CrewFilter) (dto.CrewStatistics, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(dto.CrewStatistics), args.Error(1)
}

// MockRouteService is a mock implementation of the route service
type MockRouteService struct {
	mock.Mock
}

func (m *MockRouteService) Create(ctx context.Context, req dto.CreateRouteRequest) (models.Route, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteService) List(ctx context.Context, filter models.RouteFilter, page models.PageRequest) (models.Page[models.Route], error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).(models.Page[models.Route]), args.Error(1)
}

func (m *MockRouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteService) ByDeparture(ctx context.Context, airportID int64) ([]models.Route, error) {
	args := m.Called(ctx, airportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockRouteService) ByArrival(ctx context.Context, airportID int64) ([]models.Route, error) {
	args := m.Called(ctx, airportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockRouteService) Update(ctx context.Context, id int64, req dto.UpdateRouteRequest) (models.Route, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRouteService) Statistics(ctx context.Context, filter dto.RouteStatisticsFilter) ([]dto.RouteStatistics, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RouteStatistics), args.Error(1)
}

func (m *MockRouteService) Popular(ctx context.Context, limit int, departureCountry, arrivalCountry string) ([]dto.PopularRoute, error) {
	args := m.Called(ctx, limit, departureCountry, arrivalCountry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PopularRoute), args.Error(1)
}
