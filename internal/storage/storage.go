package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Munionn/Airport-sub002/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInUse indicates the record is still referenced by other rows.
var ErrInUse = errors.New("record is referenced by other records")

// ErrLocked indicates the record can no longer be changed in its current state.
var ErrLocked = errors.New("record is locked")

// UserStore captures persistence operations for users, roles and passengers.
type UserStore interface {
	// CreateUser inserts the user, grants role and inserts the passenger
	// profile in a single transaction.
	CreateUser(ctx context.Context, user models.User, passenger models.Passenger, role string) (models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	FindActiveByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	RolesForUser(ctx context.Context, userID int64) ([]models.Role, error)
}

// CrewStore captures persistence operations for flight-crew assignments.
type CrewStore interface {
	FlightByID(ctx context.Context, id int64) (models.Flight, error)
	CreateAssignment(ctx context.Context, in models.NewCrewAssignment) (models.CrewAssignment, error)
	AssignmentByID(ctx context.Context, id int64) (models.CrewAssignment, error)
	ListAssignments(ctx context.Context, filter models.CrewFilter, page models.PageRequest) ([]models.CrewAssignment, int, error)
	FindAssignments(ctx context.Context, filter models.CrewFilter) ([]models.CrewAssignment, error)
	// PositionTaken and UserOnFlight ignore the assignment with id excludeID.
	PositionTaken(ctx context.Context, flightID int64, position models.Position, excludeID int64) (bool, error)
	UserOnFlight(ctx context.Context, flightID, userID, excludeID int64) (bool, error)
	// ActiveAssignments returns assignments on scheduled, boarding or departed
	// flights departing at or after since, earliest first.
	ActiveAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error)
	// FlownAssignments returns assignments on departed or arrived flights
	// departing at or after since.
	FlownAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error)
	UpdateAssignment(ctx context.Context, id int64, patch models.CrewPatch) (models.CrewAssignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	CrewTallies(ctx context.Context, filter models.CrewFilter) ([]models.CrewMemberTally, error)
	PositionCounts(ctx context.Context, filter models.CrewFilter) (map[models.Position]int, error)
}

// RouteStore captures persistence operations for routes and their aggregates.
type RouteStore interface {
	AirportByID(ctx context.Context, id int64) (models.AirportSummary, error)
	RouteExistsForPair(ctx context.Context, departureID, arrivalID, excludeID int64) (bool, error)
	CreateRoute(ctx context.Context, in models.NewRoute) (models.Route, error)
	RouteByID(ctx context.Context, id int64) (models.Route, error)
	ListRoutes(ctx context.Context, filter models.RouteFilter, page models.PageRequest) ([]models.Route, int, error)
	FindRoutes(ctx context.Context, filter models.RouteFilter) ([]models.Route, error)
	UpdateRoute(ctx context.Context, id int64, patch models.RoutePatch) (models.Route, error)
	CountFlightsForRoute(ctx context.Context, routeID int64) (int, error)
	DeleteRoute(ctx context.Context, id int64) error
	RouteTallies(ctx context.Context, filter models.RouteFilter) ([]models.RouteTally, error)
}
