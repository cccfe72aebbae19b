package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `
	id, full_name, email, password_hash, role, enabled, locked,
	age, gender, profile_picture, last_connected_at, specialty,
	created_at, updated_at
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, full_name, email, password_hash, role, enabled, locked,
			age, gender, profile_picture, specialty, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Enabled,
		user.Locked,
		user.Age,
		user.Gender,
		user.ProfilePicture,
		user.Specialty,
	)
	return err
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Enabled,
		&user.Locked,
		&user.Age,
		&user.Gender,
		&user.ProfilePicture,
		&user.LastConnectedAt,
		&user.Specialty,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `SELECT` + userColumns + `FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT` + userColumns + `FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT` + userColumns + `FROM users ORDER BY created_at, id`
	return r.queryUsers(ctx, query)
}

func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	const query = `SELECT` + userColumns + `FROM users WHERE role = $1 ORDER BY created_at, id`
	return r.queryUsers(ctx, query, role)
}

// FirstDoctor returns the earliest-created doctor in the system. Ordering by
// (created_at, id) keeps fallback alert routing deterministic.
func (r *UserRepository) FirstDoctor(ctx context.Context) (models.User, error) {
	const query = `
		SELECT` + userColumns + `
		FROM users WHERE role = 'DOCTOR'
		ORDER BY created_at, id
		LIMIT 1
	`
	return scanUser(r.pool.QueryRow(ctx, query))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	const query = `
		UPDATE users
		SET full_name = $2,
		    email = $3,
		    age = $4,
		    gender = $5,
		    profile_picture = $6,
		    specialty = $7,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.Age,
		user.Gender,
		user.ProfilePicture,
		user.Specialty,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetLockedByEmail(ctx context.Context, email string, locked bool) error {
	const query = `UPDATE users SET locked = $2, updated_at = NOW() WHERE email = $1`
	_, err := r.pool.Exec(ctx, query, email, locked)
	return err
}

func (r *UserRepository) TouchLastConnected(ctx context.Context, id string) error {
	const query = `UPDATE users SET last_connected_at = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
