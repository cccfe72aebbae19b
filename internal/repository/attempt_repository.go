package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"emocare/api/internal/models"
)

var ErrAttemptNotFound = errors.New("login attempt not found")

type LoginAttemptRepository struct {
	pool *pgxpool.Pool
}

func NewLoginAttemptRepository(pool *pgxpool.Pool) *LoginAttemptRepository {
	return &LoginAttemptRepository{pool: pool}
}

func (r *LoginAttemptRepository) FindByEmail(ctx context.Context, email string) (models.LoginAttempt, error) {
	const query = `
		SELECT email, attempt_count, last_attempt_at, locked, locked_until
		FROM login_attempts WHERE email = $1
	`
	var attempt models.LoginAttempt
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&attempt.Email,
		&attempt.Count,
		&attempt.LastAttemptAt,
		&attempt.Locked,
		&attempt.LockedUntil,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LoginAttempt{}, ErrAttemptNotFound
		}
		return models.LoginAttempt{}, err
	}
	return attempt, nil
}

func (r *LoginAttemptRepository) Upsert(ctx context.Context, attempt models.LoginAttempt) error {
	const query = `
		INSERT INTO login_attempts (email, attempt_count, last_attempt_at, locked, locked_until)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET
			attempt_count = EXCLUDED.attempt_count,
			last_attempt_at = EXCLUDED.last_attempt_at,
			locked = EXCLUDED.locked,
			locked_until = EXCLUDED.locked_until
	`
	_, err := r.pool.Exec(ctx, query,
		attempt.Email,
		attempt.Count,
		attempt.LastAttemptAt,
		attempt.Locked,
		attempt.LockedUntil,
	)
	return err
}

// ClearExpiredLocks releases locks whose deadline has passed and resets their
// counters. Returns the affected emails so the caller can unlock the users.
func (r *LoginAttemptRepository) ClearExpiredLocks(ctx context.Context, now time.Time) ([]string, error) {
	const query = `
		UPDATE login_attempts
		SET locked = FALSE, locked_until = NULL, attempt_count = 0
		WHERE locked = TRUE AND locked_until IS NOT NULL AND locked_until < $1
		RETURNING email
	`
	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// DeleteStale removes attempt rows untouched since the cutoff.
func (r *LoginAttemptRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		DELETE FROM login_attempts
		WHERE locked = FALSE AND last_attempt_at < $1
	`
	cmd, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
