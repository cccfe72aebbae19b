package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
)

// LockoutService tracks failed logins per email and applies a time-boxed
// lockout once the threshold is reached. A missing attempt row always means
// "never attempted", never an error.
type LockoutService struct {
	attempts LoginAttemptStore
	users    UserStore
	cfg      config.SecurityConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewLockoutService(attempts LoginAttemptStore, users UserStore, cfg config.SecurityConfig, log zerolog.Logger) *LockoutService {
	return &LockoutService{
		attempts: attempts,
		users:    users,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *LockoutService) RecordFailure(ctx context.Context, email string) error {
	attempt, err := s.attempts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrAttemptNotFound) {
			return err
		}
		attempt = models.LoginAttempt{Email: email}
	}

	now := s.now()
	attempt.Count++
	attempt.LastAttemptAt = now

	if attempt.Count >= s.cfg.MaxLoginFails {
		until := now.Add(s.cfg.LockoutDuration)
		attempt.Locked = true
		attempt.LockedUntil = &until

		if err := s.users.SetLockedByEmail(ctx, email, true); err != nil {
			return err
		}

		s.log.Warn().
			Str("email", email).
			Int("attempts", attempt.Count).
			Time("locked_until", until).
			Msg("account locked after repeated login failures")
	}

	return s.attempts.Upsert(ctx, attempt)
}

func (s *LockoutService) RecordSuccess(ctx context.Context, email string) error {
	attempt, err := s.attempts.FindByEmail(ctx, email)
	if err == nil {
		attempt.Count = 0
		attempt.Locked = false
		attempt.LockedUntil = nil
		if err := s.attempts.Upsert(ctx, attempt); err != nil {
			return err
		}
	} else if !errors.Is(err, repository.ErrAttemptNotFound) {
		return err
	}

	return s.users.SetLockedByEmail(ctx, email, false)
}

// IsLocked reports whether the email is currently locked out. An expired
// lock is cleared lazily on read.
func (s *LockoutService) IsLocked(ctx context.Context, email string) (bool, error) {
	attempt, err := s.attempts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAttemptNotFound) {
			return false, nil
		}
		return false, err
	}

	if attempt.Locked && attempt.LockedUntil != nil && s.now().After(*attempt.LockedUntil) {
		attempt.Locked = false
		attempt.LockedUntil = nil
		attempt.Count = 0
		if err := s.attempts.Upsert(ctx, attempt); err != nil {
			return false, err
		}
		if err := s.users.SetLockedByEmail(ctx, email, false); err != nil {
			return false, err
		}
		s.log.Info().Str("email", email).Msg("lockout expired, account unlocked")
		return false, nil
	}

	return attempt.Locked, nil
}

func (s *LockoutService) RemainingAttempts(ctx context.Context, email string) (int, error) {
	attempt, err := s.attempts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAttemptNotFound) {
			return s.cfg.MaxLoginFails, nil
		}
		return 0, err
	}

	remaining := s.cfg.MaxLoginFails - attempt.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *LockoutService) LockedUntil(ctx context.Context, email string) (*time.Time, error) {
	attempt, err := s.attempts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAttemptNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return attempt.LockedUntil, nil
}
