package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Munionn/Airport-sub002/internal/models"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

const routeColumns = `
	r.id, r.name, r.departure_airport_id, r.arrival_airport_id, r.distance_km, r.duration_minutes,
	r.status, r.base_price, r.description, r.created_at, r.updated_at,
	da.id, da.iata_code, COALESCE(da.icao_code, ''), da.name, dc.name, dc.country,
	aa.id, aa.iata_code, COALESCE(aa.icao_code, ''), aa.name, ac.name, ac.country`

const routeJoins = `
	FROM routes r
	JOIN airports da ON da.id = r.departure_airport_id
	JOIN cities dc ON dc.id = da.city_id
	JOIN airports aa ON aa.id = r.arrival_airport_id
	JOIN cities ac ON ac.id = aa.city_id`

const onTimeDeparture = `f.actual_departure IS NOT NULL AND f.actual_departure <= f.scheduled_departure + INTERVAL '15 minutes'`

// AirportByID returns an airport with its city and country.
func (s *Store) AirportByID(ctx context.Context, id int64) (models.AirportSummary, error) {
	var a models.AirportSummary
	err := s.pool.QueryRow(ctx, `
		SELECT a.id, a.iata_code, COALESCE(a.icao_code, ''), a.name, c.name, c.country
		FROM airports a
		JOIN cities c ON c.id = a.city_id
		WHERE a.id = $1
	`, id).Scan(&a.ID, &a.IATACode, &a.ICAOCode, &a.Name, &a.City, &a.Country)
	if err != nil {
		return models.AirportSummary{}, translate(err)
	}
	return a, nil
}

// RouteExistsForPair reports whether a route already flies departureID → arrivalID.
func (s *Store) RouteExistsForPair(ctx context.Context, departureID, arrivalID, excludeID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM routes
			WHERE departure_airport_id = $1 AND arrival_airport_id = $2 AND id <> $3
		)
	`, departureID, arrivalID, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check route pair: %w", err)
	}
	return exists, nil
}

// CreateRoute inserts a route. A duplicate airport pair yields storage.ErrAlreadyExists.
func (s *Store) CreateRoute(ctx context.Context, in models.NewRoute) (models.Route, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO routes (name, departure_airport_id, arrival_airport_id, distance_km,
		                    duration_minutes, status, base_price, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, in.Name, in.DepartureAirportID, in.ArrivalAirportID, in.DistanceKM,
		in.DurationMinutes, in.Status, in.BasePrice, in.Description).Scan(&id)
	if err != nil {
		return models.Route{}, translate(err)
	}
	return s.RouteByID(ctx, id)
}

// RouteByID returns a route with both airports.
func (s *Store) RouteByID(ctx context.Context, id int64) (models.Route, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+routeColumns+routeJoins+` WHERE r.id = $1`, id)
	route, err := scanRoute(row)
	if err != nil {
		return models.Route{}, translate(err)
	}
	return route, nil
}

// ListRoutes returns one page of routes plus the total match count.
func (s *Store) ListRoutes(ctx context.Context, filter models.RouteFilter, page models.PageRequest) ([]models.Route, int, error) {
	where := routeWhere(filter)

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*)`+routeJoins+where.sql(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count routes: %w", err)
	}

	query := `SELECT ` + routeColumns + routeJoins + where.sql() + ` ORDER BY r.name, r.id`
	query += ` LIMIT ` + where.next(page.Limit) + ` OFFSET ` + where.next(page.Offset())

	routes, err := s.queryRoutes(ctx, query, where.args...)
	if err != nil {
		return nil, 0, err
	}
	return routes, total, nil
}

// FindRoutes returns every route matching filter.
func (s *Store) FindRoutes(ctx context.Context, filter models.RouteFilter) ([]models.Route, error) {
	where := routeWhere(filter)
	return s.queryRoutes(ctx, `SELECT `+routeColumns+routeJoins+where.sql()+` ORDER BY r.name, r.id`, where.args...)
}

// UpdateRoute applies patch and returns the updated route.
func (s *Store) UpdateRoute(ctx context.Context, id int64, patch models.RoutePatch) (models.Route, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE routes SET
			name = COALESCE($2, name),
			departure_airport_id = COALESCE($3, departure_airport_id),
			arrival_airport_id = COALESCE($4, arrival_airport_id),
			distance_km = COALESCE($5, distance_km),
			duration_minutes = COALESCE($6, duration_minutes),
			status = COALESCE($7, status),
			base_price = COALESCE($8, base_price),
			description = NULLIF(COALESCE($9, description), ''),
			updated_at = NOW()
		WHERE id = $1
	`, id, patch.Name, patch.DepartureAirportID, patch.ArrivalAirportID, patch.DistanceKM,
		patch.DurationMinutes, patch.Status, patch.BasePrice, patch.Description)
	if err != nil {
		return models.Route{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Route{}, storage.ErrNotFound
	}
	return s.RouteByID(ctx, id)
}

// CountFlightsForRoute counts flights referencing the route.
func (s *Store) CountFlightsForRoute(ctx context.Context, routeID int64) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE route_id = $1`, routeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count route flights: %w", err)
	}
	return n, nil
}

// DeleteRoute removes a route. Routes still referenced by flights yield storage.ErrInUse.
func (s *Store) DeleteRoute(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RouteTallies aggregates flights and active tickets per route, ordered by route id.
func (s *Store) RouteTallies(ctx context.Context, filter models.RouteFilter) ([]models.RouteTally, error) {
	where := routeWhere(filter)
	query := `SELECT ` + routeColumns + `,
		       COUNT(DISTINCT f.id),
		       COUNT(t.id) FILTER (WHERE t.status = 'active'),
		       COALESCE(SUM(t.price) FILTER (WHERE t.status = 'active'), 0),
		       COALESCE(AVG(t.price) FILTER (WHERE t.status = 'active'), 0),
		       COUNT(DISTINCT f.id) FILTER (WHERE f.status IN ('arrived', 'completed')),
		       COUNT(DISTINCT f.id) FILTER (WHERE f.status IN ('arrived', 'completed') AND ` + onTimeDeparture + `)` +
		routeJoins + `
		LEFT JOIN flights f ON f.route_id = r.id
		LEFT JOIN tickets t ON t.flight_id = f.id` + where.sql() + `
		GROUP BY r.id, da.id, dc.id, aa.id, ac.id
		ORDER BY r.id`

	rows, err := s.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("query route tallies: %w", err)
	}
	defer rows.Close()

	var tallies []models.RouteTally
	index := make(map[int64]int)
	for rows.Next() {
		var t models.RouteTally
		dest := append(routeDest(&t.Route),
			&t.FlightCount, &t.PassengerCount, &t.TotalRevenue, &t.AvgTicketPrice,
			&t.CompletedFlights, &t.OnTimeDepartures,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan route tally: %w", err)
		}
		t.MonthlyFlights = make(map[time.Month]int)
		t.WeekdayFlights = make(map[time.Weekday]int)
		index[t.Route.ID] = len(tallies)
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tallies) == 0 {
		return tallies, nil
	}

	ids := make([]int64, 0, len(tallies))
	for _, t := range tallies {
		ids = append(ids, t.Route.ID)
	}
	if err := s.fillFlightCalendar(ctx, ids, tallies, index); err != nil {
		return nil, err
	}
	return tallies, nil
}

// fillFlightCalendar counts flights per month and per weekday of scheduled departure.
func (s *Store) fillFlightCalendar(ctx context.Context, routeIDs []int64, tallies []models.RouteTally, index map[int64]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT route_id,
		       EXTRACT(MONTH FROM scheduled_departure)::int,
		       EXTRACT(DOW FROM scheduled_departure)::int,
		       COUNT(*)
		FROM flights
		WHERE route_id = ANY($1)
		GROUP BY 1, 2, 3
	`, routeIDs)
	if err != nil {
		return fmt.Errorf("query flight calendar: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var routeID int64
		var month, weekday, n int
		if err := rows.Scan(&routeID, &month, &weekday, &n); err != nil {
			return fmt.Errorf("scan flight calendar: %w", err)
		}
		i, ok := index[routeID]
		if !ok {
			continue
		}
		tallies[i].MonthlyFlights[time.Month(month)] += n
		tallies[i].WeekdayFlights[time.Weekday(weekday)] += n
	}
	return rows.Err()
}

func (s *Store) queryRoutes(ctx context.Context, query string, args ...any) ([]models.Route, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func routeWhere(filter models.RouteFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Status != nil {
		w.add("r.status = $%d", string(*filter.Status))
	}
	if filter.DepartureAirportID != nil {
		w.add("r.departure_airport_id = $%d", *filter.DepartureAirportID)
	}
	if filter.ArrivalAirportID != nil {
		w.add("r.arrival_airport_id = $%d", *filter.ArrivalAirportID)
	}
	if filter.DepartureCountry != "" {
		w.add("dc.country ILIKE $%d", filter.DepartureCountry)
	}
	if filter.ArrivalCountry != "" {
		w.add("ac.country ILIKE $%d", filter.ArrivalCountry)
	}
	if filter.Search != "" {
		w.add("(r.name || ' ' || da.iata_code || ' ' || aa.iata_code || ' ' || dc.name || ' ' || ac.name) ILIKE $%d", "%"+filter.Search+"%")
	}
	return w
}

func routeDest(r *models.Route) []any {
	r.DepartureAirport = &models.AirportSummary{}
	r.ArrivalAirport = &models.AirportSummary{}
	d, a := r.DepartureAirport, r.ArrivalAirport
	return []any{
		&r.ID, &r.Name, &r.DepartureAirportID, &r.ArrivalAirportID, &r.DistanceKM, &r.DurationMinutes,
		&r.Status, &r.BasePrice, &r.Description, &r.CreatedAt, &r.UpdatedAt,
		&d.ID, &d.IATACode, &d.ICAOCode, &d.Name, &d.City, &d.Country,
		&a.ID, &a.IATACode, &a.ICAOCode, &a.Name, &a.City, &a.Country,
	}
}

func scanRoute(row pgx.Row) (models.Route, error) {
	var r models.Route
	err := row.Scan(routeDest(&r)...)
	return r, err
}
