package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

const assignmentSelect = `
	SELECT fc.id, fc.flight_id, fc.user_id, fc.position, fc.notes, fc.assigned_at, fc.updated_at,
	       f.flight_number, f.status, f.scheduled_departure, f.scheduled_arrival,
	       u.username, TRIM(u.first_name || ' ' || u.last_name)
	FROM flight_crew fc
	JOIN flights f ON f.id = fc.flight_id
	JOIN users u ON u.id = fc.user_id`

const onTimeArrival = `f.actual_arrival IS NOT NULL AND f.actual_arrival <= f.scheduled_arrival + INTERVAL '15 minutes'`

// FlightByID returns a flight by id.
func (s *Store) FlightByID(ctx context.Context, id int64) (models.Flight, error) {
	var f models.Flight
	err := s.pool.QueryRow(ctx, `
		SELECT id, route_id, flight_number, scheduled_departure, scheduled_arrival,
		       actual_departure, actual_arrival, status
		FROM flights
		WHERE id = $1
	`, id).Scan(
		&f.ID, &f.RouteID, &f.FlightNumber, &f.ScheduledDeparture, &f.ScheduledArrival,
		&f.ActualDeparture, &f.ActualArrival, &f.Status,
	)
	if err != nil {
		return models.Flight{}, translate(err)
	}
	return f, nil
}

// CreateAssignment inserts an assignment and returns it with its flight and
// crew details. A duplicate position or crew member on the flight yields
// storage.ErrAlreadyExists.
func (s *Store) CreateAssignment(ctx context.Context, in models.NewCrewAssignment) (models.CrewAssignment, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO flight_crew (flight_id, user_id, position, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.FlightID, in.UserID, in.Position, in.Notes).Scan(&id)
	if err != nil {
		return models.CrewAssignment{}, translate(err)
	}
	return s.AssignmentByID(ctx, id)
}

// AssignmentByID returns one assignment.
func (s *Store) AssignmentByID(ctx context.Context, id int64) (models.CrewAssignment, error) {
	a, err := scanAssignment(s.pool.QueryRow(ctx, assignmentSelect+` WHERE fc.id = $1`, id))
	if err != nil {
		return models.CrewAssignment{}, translate(err)
	}
	return a, nil
}

// ListAssignments returns one page of assignments plus the total match count.
func (s *Store) ListAssignments(ctx context.Context, filter models.CrewFilter, page models.PageRequest) ([]models.CrewAssignment, int, error) {
	where := crewWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM flight_crew fc
		JOIN flights f ON f.id = fc.flight_id
		JOIN users u ON u.id = fc.user_id` + where.sql()
	if err := s.pool.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	query := assignmentSelect + where.sql() + ` ORDER BY f.scheduled_departure DESC, fc.id`
	query += ` LIMIT ` + where.next(page.Limit) + ` OFFSET ` + where.next(page.Offset())

	list, err := s.queryAssignments(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindAssignments returns every assignment matching filter, by departure time.
func (s *Store) FindAssignments(ctx context.Context, filter models.CrewFilter) ([]models.CrewAssignment, error) {
	where := crewWhere(filter)
	query := assignmentSelect + where.sql() + ` ORDER BY f.scheduled_departure, fc.position`
	return s.queryAssignments(ctx, query, where.args...)
}

// PositionTaken reports whether position is already filled on the flight.
func (s *Store) PositionTaken(ctx context.Context, flightID int64, position models.Position, excludeID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM flight_crew WHERE flight_id = $1 AND position = $2 AND id <> $3)
	`, flightID, position, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check position: %w", err)
	}
	return exists, nil
}

// UserOnFlight reports whether the user already holds a position on the flight.
func (s *Store) UserOnFlight(ctx context.Context, flightID, userID, excludeID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM flight_crew WHERE flight_id = $1 AND user_id = $2 AND id <> $3)
	`, flightID, userID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check crew member: %w", err)
	}
	return exists, nil
}

// ActiveAssignments returns the user's assignments on flights that are not
// yet over, departing at or after since.
func (s *Store) ActiveAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error) {
	query := assignmentSelect + `
		WHERE fc.user_id = $1
		  AND f.status IN ('scheduled', 'boarding', 'departed')
		  AND f.scheduled_departure >= $2
		ORDER BY f.scheduled_departure`
	return s.queryAssignments(ctx, query, userID, since)
}

// FlownAssignments returns the user's assignments on departed or arrived
// flights departing at or after since.
func (s *Store) FlownAssignments(ctx context.Context, userID int64, since time.Time) ([]models.CrewAssignment, error) {
	query := assignmentSelect + `
		WHERE fc.user_id = $1
		  AND f.status IN ('departed', 'arrived')
		  AND f.scheduled_departure >= $2
		ORDER BY f.scheduled_departure`
	return s.queryAssignments(ctx, query, userID, since)
}

// UpdateAssignment applies patch and returns the updated assignment.
func (s *Store) UpdateAssignment(ctx context.Context, id int64, patch models.CrewPatch) (models.CrewAssignment, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE flight_crew SET
			flight_id = COALESCE($2, flight_id),
			user_id = COALESCE($3, user_id),
			position = COALESCE($4, position),
			notes = NULLIF(COALESCE($5, notes), ''),
			updated_at = NOW()
		WHERE id = $1
	`, id, patch.FlightID, patch.UserID, patch.Position, patch.Notes)
	if err != nil {
		return models.CrewAssignment{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return models.CrewAssignment{}, storage.ErrNotFound
	}
	return s.AssignmentByID(ctx, id)
}

// DeleteAssignment removes an assignment unless its flight has departed or
// arrived, in which case storage.ErrLocked is returned.
func (s *Store) DeleteAssignment(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM flight_crew fc
		USING flights f
		WHERE fc.id = $1
		  AND f.id = fc.flight_id
		  AND f.status NOT IN ('departed', 'arrived')
	`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := s.AssignmentByID(ctx, id); err != nil {
		return err
	}
	return storage.ErrLocked
}

// CrewTallies aggregates assignments per crew member, ordered by user id.
func (s *Store) CrewTallies(ctx context.Context, filter models.CrewFilter) ([]models.CrewMemberTally, error) {
	where := crewWhere(filter)
	query := `
		SELECT u.id, u.username, TRIM(u.first_name || ' ' || u.last_name),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE f.status IN ('arrived', 'completed')),
		       COUNT(*) FILTER (WHERE f.status IN ('arrived', 'completed') AND ` + onTimeArrival + `)
		FROM flight_crew fc
		JOIN flights f ON f.id = fc.flight_id
		JOIN users u ON u.id = fc.user_id` + where.sql() + `
		GROUP BY u.id, u.username, u.first_name, u.last_name
		ORDER BY u.id`

	rows, err := s.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("query crew tallies: %w", err)
	}
	defer rows.Close()

	var tallies []models.CrewMemberTally
	for rows.Next() {
		var t models.CrewMemberTally
		if err := rows.Scan(&t.UserID, &t.Username, &t.FullName, &t.Assignments, &t.CompletedFlights, &t.OnTimeArrivals); err != nil {
			return nil, fmt.Errorf("scan crew tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// PositionCounts counts assignments per position. Positions without
// assignments are absent from the map.
func (s *Store) PositionCounts(ctx context.Context, filter models.CrewFilter) (map[models.Position]int, error) {
	where := crewWhere(filter)
	query := `SELECT fc.position, COUNT(*)
		FROM flight_crew fc
		JOIN flights f ON f.id = fc.flight_id
		JOIN users u ON u.id = fc.user_id` + where.sql() + `
		GROUP BY fc.position`

	rows, err := s.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("query position counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Position]int)
	for rows.Next() {
		var position models.Position
		var n int
		if err := rows.Scan(&position, &n); err != nil {
			return nil, fmt.Errorf("scan position count: %w", err)
		}
		counts[position] = n
	}
	return counts, rows.Err()
}

func (s *Store) queryAssignments(ctx context.Context, query string, args ...any) ([]models.CrewAssignment, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assignments: %w", err)
	}
	defer rows.Close()

	list := []models.CrewAssignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func crewWhere(filter models.CrewFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.FlightID != nil {
		w.add("fc.flight_id = $%d", *filter.FlightID)
	}
	if filter.UserID != nil {
		w.add("fc.user_id = $%d", *filter.UserID)
	}
	if filter.Position != nil {
		w.add("fc.position = $%d", string(*filter.Position))
	}
	if filter.FlightNumber != "" {
		w.add("f.flight_number ILIKE $%d", "%"+filter.FlightNumber+"%")
	}
	if filter.CrewName != "" {
		w.add("(u.first_name || ' ' || u.last_name || ' ' || u.username) ILIKE $%d", "%"+filter.CrewName+"%")
	}
	return w
}

func scanAssignment(row pgx.Row) (models.CrewAssignment, error) {
	var a models.CrewAssignment
	err := row.Scan(
		&a.ID, &a.FlightID, &a.UserID, &a.Position, &a.Notes, &a.AssignedAt, &a.UpdatedAt,
		&a.FlightNumber, &a.FlightStatus, &a.ScheduledDeparture, &a.ScheduledArrival,
		&a.Username, &a.CrewName,
	)
	return a, err
}
