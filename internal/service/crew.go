package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/models/dto"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

// Crew manages flight-crew assignments and crew availability.
type Crew struct {
	crew  storage.CrewStore
	users storage.UserStore
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewCrew constructs the crew service.
func NewCrew(crew storage.CrewStore, users storage.UserStore, log logrus.FieldLogger) *Crew {
	return &Crew{crew: crew, users: users, log: log, now: time.Now}
}

// Create assigns a crew member to a flight position.
func (c *Crew) Create(ctx context.Context, req dto.CreateCrewRequest) (models.CrewAssignment, error) {
	if req.FlightID <= 0 || req.UserID <= 0 {
		return models.CrewAssignment{}, badRequest("flight_id and user_id are required")
	}
	if !req.Position.Valid() {
		return models.CrewAssignment{}, badRequest("unknown position %q", req.Position)
	}

	if err := c.requireUser(ctx, req.UserID); err != nil {
		return models.CrewAssignment{}, err
	}
	if err := c.requireFlight(ctx, req.FlightID); err != nil {
		return models.CrewAssignment{}, err
	}
	if err := c.checkConflicts(ctx, req.FlightID, req.UserID, req.Position, 0); err != nil {
		return models.CrewAssignment{}, err
	}

	if err := c.requireAvailable(ctx, req.UserID, 0); err != nil {
		return models.CrewAssignment{}, err
	}

	created, err := c.crew.CreateAssignment(ctx, models.NewCrewAssignment{
		FlightID: req.FlightID,
		UserID:   req.UserID,
		Position: req.Position,
		Notes:    optional(req.Notes),
	})
	if err != nil {
		return models.CrewAssignment{}, c.writeError("create assignment", err)
	}

	c.log.WithFields(logrus.Fields{
		"event":         "crew_assigned",
		"assignment_id": created.ID,
		"flight_id":     created.FlightID,
		"user_id":       created.UserID,
		"position":      created.Position,
	}).Info("crew assigned")
	return created, nil
}

// List returns one page of assignments.
func (c *Crew) List(ctx context.Context, filter models.CrewFilter, page models.PageRequest) (models.Page[models.CrewAssignment], error) {
	page = page.Normalize()
	list, total, err := c.crew.ListAssignments(ctx, filter, page)
	if err != nil {
		return models.Page[models.CrewAssignment]{}, fmt.Errorf("list assignments: %w", err)
	}
	return models.NewPage(list, total, page), nil
}

// Get returns one assignment.
func (c *Crew) Get(ctx context.Context, id int64) (models.CrewAssignment, error) {
	a, err := c.crew.AssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.CrewAssignment{}, notFound("crew assignment %d not found", id)
		}
		return models.CrewAssignment{}, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// ByFlight returns the crew of a flight.
func (c *Crew) ByFlight(ctx context.Context, flightID int64) ([]models.CrewAssignment, error) {
	list, err := c.crew.FindAssignments(ctx, models.CrewFilter{FlightID: &flightID})
	if err != nil {
		return nil, fmt.Errorf("find flight crew: %w", err)
	}
	return list, nil
}

// ByUser returns every assignment of a crew member.
func (c *Crew) ByUser(ctx context.Context, userID int64) ([]models.CrewAssignment, error) {
	list, err := c.crew.FindAssignments(ctx, models.CrewFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("find user assignments: %w", err)
	}
	return list, nil
}

// Update applies a partial update. Conflict checks run against the resulting
// flight, user and position, ignoring the assignment itself. Moving the
// assignment to another user or flight also requires that user to be available.
func (c *Crew) Update(ctx context.Context, id int64, req dto.UpdateCrewRequest) (models.CrewAssignment, error) {
	current, err := c.Get(ctx, id)
	if err != nil {
		return models.CrewAssignment{}, err
	}

	flightID, userID, position := current.FlightID, current.UserID, current.Position
	if req.FlightID != nil && *req.FlightID != flightID {
		if err := c.requireFlight(ctx, *req.FlightID); err != nil {
			return models.CrewAssignment{}, err
		}
		flightID = *req.FlightID
	}
	if req.UserID != nil && *req.UserID != userID {
		if err := c.requireUser(ctx, *req.UserID); err != nil {
			return models.CrewAssignment{}, err
		}
		userID = *req.UserID
	}
	if req.Position != nil {
		if !req.Position.Valid() {
			return models.CrewAssignment{}, badRequest("unknown position %q", *req.Position)
		}
		position = *req.Position
	}
	if err := c.checkConflicts(ctx, flightID, userID, position, id); err != nil {
		return models.CrewAssignment{}, err
	}
	if userID != current.UserID || flightID != current.FlightID {
		if err := c.requireAvailable(ctx, userID, id); err != nil {
			return models.CrewAssignment{}, err
		}
	}

	updated, err := c.crew.UpdateAssignment(ctx, id, models.CrewPatch{
		FlightID: req.FlightID,
		UserID:   req.UserID,
		Position: req.Position,
		Notes:    trimmed(req.Notes),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.CrewAssignment{}, notFound("crew assignment %d not found", id)
		}
		return models.CrewAssignment{}, c.writeError("update assignment", err)
	}
	return updated, nil
}

// Delete removes an assignment whose flight has not yet departed.
func (c *Crew) Delete(ctx context.Context, id int64) error {
	current, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	if locked(current.FlightStatus) {
		return badRequest("cannot remove crew from a flight that has %s", current.FlightStatus)
	}

	if err := c.crew.DeleteAssignment(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return notFound("crew assignment %d not found", id)
		case errors.Is(err, storage.ErrLocked):
			return badRequest("cannot remove crew from a flight that has departed")
		}
		return fmt.Errorf("delete assignment: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"event":         "crew_removed",
		"assignment_id": id,
		"flight_id":     current.FlightID,
	}).Info("crew removed")
	return nil
}

// CheckAvailability reports whether the user can take another assignment.
func (c *Crew) CheckAvailability(ctx context.Context, userID int64) (dto.Availability, error) {
	if userID <= 0 {
		return dto.Availability{}, badRequest("user_id is required")
	}
	if err := c.requireUser(ctx, userID); err != nil {
		return dto.Availability{}, err
	}
	return c.availability(ctx, userID, 0)
}

// Statistics aggregates assignments matching filter.
func (c *Crew) Statistics(ctx context.Context, filter models.CrewFilter) (dto.CrewStatistics, error) {
	tallies, err := c.crew.CrewTallies(ctx, filter)
	if err != nil {
		return dto.CrewStatistics{}, fmt.Errorf("crew tallies: %w", err)
	}
	counts, err := c.crew.PositionCounts(ctx, filter)
	if err != nil {
		return dto.CrewStatistics{}, fmt.Errorf("position counts: %w", err)
	}
	return BuildCrewStatistics(tallies, counts), nil
}

// availability computes the user's availability, leaving out the assignment
// excludeID (0 excludes nothing).
func (c *Crew) availability(ctx context.Context, userID, excludeID int64) (dto.Availability, error) {
	now := c.now()
	active, err := c.crew.ActiveAssignments(ctx, userID, now.Add(-activeWindow))
	if err != nil {
		return dto.Availability{}, fmt.Errorf("active assignments: %w", err)
	}
	flown, err := c.crew.FlownAssignments(ctx, userID, now.Add(-flownWindow))
	if err != nil {
		return dto.Availability{}, fmt.Errorf("flown assignments: %w", err)
	}
	if excludeID > 0 {
		self := func(a models.CrewAssignment) bool { return a.ID == excludeID }
		active = slices.DeleteFunc(active, self)
		flown = slices.DeleteFunc(flown, self)
	}
	return ComputeAvailability(userID, active, flown, now), nil
}

func (c *Crew) requireAvailable(ctx context.Context, userID, excludeID int64) error {
	availability, err := c.availability(ctx, userID, excludeID)
	if err != nil {
		return err
	}
	if !availability.IsAvailable {
		return badRequest("crew member %d is not available until %s",
			userID, availability.NextAvailable.Format(time.RFC3339))
	}
	return nil
}

func (c *Crew) checkConflicts(ctx context.Context, flightID, userID int64, position models.Position, excludeID int64) error {
	taken, err := c.crew.PositionTaken(ctx, flightID, position, excludeID)
	if err != nil {
		return fmt.Errorf("check position: %w", err)
	}
	if taken {
		return conflict("position %s is already filled on flight %d", position, flightID)
	}
	onFlight, err := c.crew.UserOnFlight(ctx, flightID, userID, excludeID)
	if err != nil {
		return fmt.Errorf("check crew member: %w", err)
	}
	if onFlight {
		return conflict("user %d is already assigned to flight %d", userID, flightID)
	}
	return nil
}

func (c *Crew) requireUser(ctx context.Context, id int64) error {
	if _, err := c.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("user %d not found", id)
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func (c *Crew) requireFlight(ctx context.Context, id int64) error {
	if _, err := c.crew.FlightByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("flight %d not found", id)
		}
		return fmt.Errorf("find flight: %w", err)
	}
	return nil
}

// writeError translates constraint violations raised by a write.
func (c *Crew) writeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return conflict("flight position or crew member is already assigned")
	case errors.Is(err, storage.ErrInUse):
		return notFound("referenced flight or user no longer exists")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// locked reports whether crew can no longer be removed from a flight.
func locked(status models.FlightStatus) bool {
	return status == models.FlightDeparted || status == models.FlightArrived
}
