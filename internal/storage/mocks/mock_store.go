package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Munionn/Airport-sub002/internal/models"
)

// MockUserStore is a mock implementation of storage.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, user models.User, passenger models.Passenger, role string) (models.User, error) {
	args := m.Called(ctx, user, passenger, role)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) RolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Role), args.Error(1)
}

// MockCrewStore is a mock implementation of storage.CrewStore
type MockCrewStore struct {
	mock.Mock
}

func (m *MockCrewStore) FlightByID(ctx context.Context, id int64) (models.Flight, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Flight), args.Error(1)
}

func (m *MockCrewStore) CreateAssignment(ctx context.Context, in models.NewCrewAssignment) (models.CrewAssignment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) AssignmentByID(ctx context.Context, id int64) (models.CrewAssignment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) ListAssignments(ctx context.Context, filter models.CrewFilter, page models.PageRequest) ([]models.CrewAssignment, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.CrewAssignment), args.Int(1), args.Error(2)
}

func (m *MockCrewStore) FindAssignments(ctx context.Context, filter models.CrewFilter) ([]models.CrewAssignment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) PositionTaken(ctx context.Context, flightID int64, position models.Position, excludeID int64) (bool, error) {
	args := m.Called(ctx, flightID, position, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCrewStore) UserOnFlight(ctx context.Context, flightID, userID, excludeID int64) (bool, error) {
	args := m.Called(ctx, flightID, userID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCrewStore) ActiveAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) FlownAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) UpdateAssignment(ctx context.Context, id int64, patch models.CrewPatch) (models.CrewAssignment, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.CrewAssignment), args.Error(1)
}

func (m *MockCrewStore) DeleteAssignment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCrewStore) CrewTallies(ctx context.Context, filter models.CrewFilter) ([]models.CrewMemberTally, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrewMemberTally), args.Error(1)
}

func (m *MockCrewStore) PositionCounts(ctx context.Context, filter models.CrewFilter) (map[models.Position]int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Position]int), args.Error(1)
}

// MockRouteStore is a mock implementation of storage.RouteStore
type MockRouteStore struct {
	mock.Mock
}

func (m *MockRouteStore) AirportByID(ctx context.Context, id int64) (models.AirportSummary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.AirportSummary), args.Error(1)
}

func (m *MockRouteStore) RouteExistsForPair(ctx context.Context, departureID, arrivalID, excludeID int64) (bool, error) {
	args := m.Called(ctx, departureID, arrivalID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRouteStore) CreateRoute(ctx context.Context, in models.NewRoute) (models.Route, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteStore) RouteByID(ctx context.Context, id int64) (models.Route, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteStore) ListRoutes(ctx context.Context, filter models.RouteFilter, page models.PageRequest) ([]models.Route, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Route), args.Int(1), args.Error(2)
}

func (m *MockRouteStore) FindRoutes(ctx context.Context, filter models.RouteFilter) ([]models.Route, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockRouteStore) UpdateRoute(ctx context.Context, id int64, patch models.RoutePatch) (models.Route, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.Route), args.Error(1)
}

func (m *MockRouteStore) CountFlightsForRoute(ctx context.Context, routeID int64) (int, error) {
	args := m.Called(ctx, routeID)
	return args.Int(0), args.Error(1)
}

func (m *MockRouteStore) DeleteRoute(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRouteStore) RouteTallies(ctx context.Context, filter models.RouteFilter) ([]models.RouteTally, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RouteTally), args.Error(1)
}
