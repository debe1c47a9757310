package postgres

// schema is applied in order on startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		country TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS airports (
		id BIGSERIAL PRIMARY KEY,
		iata_code TEXT UNIQUE NOT NULL,
		icao_code TEXT UNIQUE,
		name TEXT NOT NULL,
		city_id BIGINT NOT NULL REFERENCES cities(id)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		phone TEXT,
		date_of_birth DATE,
		passport_number TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS roles (
		id BIGSERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		permissions TEXT[] NOT NULL DEFAULT '{}'
	);`,
	`INSERT INTO roles (name, description, permissions) VALUES
		('admin', 'Administrator', '{flights:read,flights:manage,crew:read,crew:write,routes:read,routes:manage,tickets:book,users:manage}'),
		('staff', 'Operations staff', '{flights:read,flights:manage,crew:read,crew:write,routes:read,routes:manage}'),
		('crew', 'Flight crew member', '{flights:read,crew:read,routes:read}'),
		('passenger', 'Passenger', '{flights:read,routes:read,tickets:book}')
	ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, permissions = EXCLUDED.permissions;`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id BIGINT NOT NULL REFERENCES roles(id),
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, role_id)
	);`,
	`CREATE TABLE IF NOT EXISTS passengers (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		phone TEXT,
		date_of_birth DATE,
		passport_number TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS routes (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		departure_airport_id BIGINT NOT NULL REFERENCES airports(id),
		arrival_airport_id BIGINT NOT NULL REFERENCES airports(id),
		distance_km INTEGER NOT NULL DEFAULT 0,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		base_price NUMERIC(12,2) NOT NULL DEFAULT 0,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT routes_airport_pair_key UNIQUE (departure_airport_id, arrival_airport_id),
		CONSTRAINT routes_distinct_airports CHECK (departure_airport_id <> arrival_airport_id)
	);`,
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(id) ON DELETE RESTRICT,
		flight_number TEXT NOT NULL,
		scheduled_departure TIMESTAMPTZ NOT NULL,
		scheduled_arrival TIMESTAMPTZ NOT NULL,
		actual_departure TIMESTAMPTZ,
		actual_arrival TIMESTAMPTZ,
		status TEXT NOT NULL DEFAULT 'scheduled'
	);`,
	`CREATE INDEX IF NOT EXISTS flights_route_id_idx ON flights (route_id);`,
	`CREATE TABLE IF NOT EXISTS flight_crew (
		id BIGSERIAL PRIMARY KEY,
		flight_id BIGINT NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id),
		position TEXT NOT NULL,
		notes TEXT,
		assigned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT flight_crew_position_key UNIQUE (flight_id, position),
		CONSTRAINT flight_crew_member_key UNIQUE (flight_id, user_id)
	);`,
	`CREATE INDEX IF NOT EXISTS flight_crew_user_id_idx ON flight_crew (user_id);`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id BIGSERIAL PRIMARY KEY,
		flight_id BIGINT NOT NULL REFERENCES flights(id),
		passenger_id BIGINT NOT NULL REFERENCES passengers(id),
		price NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS tickets_flight_id_idx ON tickets (flight_id);`,
}
