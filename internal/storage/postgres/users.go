package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Munionn/Airport-sub002/internal/models"
)

const userColumns = `u.id, u.username, u.email, u.first_name, u.last_name, u.phone, u.date_of_birth,
	u.passport_number, u.is_active, u.password_hash, u.created_at, u.updated_at`

// CreateUser inserts the user, grants role and inserts the linked passenger
// profile. Either all three rows are written or none.
func (s *Store) CreateUser(ctx context.Context, user models.User, passenger models.Passenger, role string) (models.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users AS u (username, email, password_hash, first_name, last_name, phone, date_of_birth, passport_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns
	row := tx.QueryRow(ctx, insertUser,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Phone, user.DateOfBirth, user.PassportNumber,
	)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, translate(err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, r.id FROM roles r WHERE r.name = $2
	`, created.ID, role)
	if err != nil {
		return models.User{}, fmt.Errorf("grant role: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return models.User{}, fmt.Errorf("grant role: role %q is not seeded", role)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO passengers (user_id, first_name, last_name, email, phone, date_of_birth, passport_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, created.ID, passenger.FirstName, passenger.LastName, passenger.Email,
		passenger.Phone, passenger.DateOfBirth, passenger.PassportNumber)
	if err != nil {
		return models.User{}, fmt.Errorf("create passenger: %w", translate(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, fmt.Errorf("commit user: %w", err)
	}
	return created, nil
}

// ExistsByEmailOrUsername reports whether either identifier is taken.
func (s *Store) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)
	`, email, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// FindActiveByEmail fetches an active user by email address.
func (s *Store) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1 AND u.is_active`
	user, err := scanUser(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// FindByID fetches a user by id regardless of status.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	user, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}

// RolesForUser lists the roles granted to a user, ordered by role id.
// Permission tags outside the known set are skipped.
func (s *Store) RolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.name, r.description, r.permissions
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		var tags []string
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &tags); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		role.Permissions = make([]models.Permission, 0, len(tags))
		for _, tag := range tags {
			if p, ok := models.ParsePermission(tag); ok {
				role.Permissions = append(role.Permissions, p)
			}
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.DateOfBirth,
		&u.PassportNumber, &u.IsActive, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
