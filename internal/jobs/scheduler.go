package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"emocare/api/internal/repository"
)

// Scheduler runs the periodic maintenance of the login lockout table.
// Expired locks are otherwise cleared lazily on the next login attempt,
// so the hourly sweep only matters for accounts that never come back.
type Scheduler struct {
	cron     *cron.Cron
	attempts *repository.LoginAttemptRepository
	users    *repository.UserRepository
	log      zerolog.Logger
}

func NewScheduler(attempts *repository.LoginAttemptRepository, users *repository.UserRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		attempts: attempts,
		users:    users,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.releaseExpiredLocks); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.purgeStaleAttempts); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out waiting for running jobs")
	}
}

func (s *Scheduler) releaseExpiredLocks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	emails, err := s.attempts.ClearExpiredLocks(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("clear expired locks failed")
		return
	}

	for _, email := range emails {
		if err := s.users.SetLockedByEmail(ctx, email, false); err != nil {
			s.log.Error().Err(err).Str("email", email).Msg("unlock user failed")
		}
	}

	if len(emails) > 0 {
		s.log.Info().Int("count", len(emails)).Msg("released expired account locks")
	}
}

func (s *Scheduler) purgeStaleAttempts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	deleted, err := s.attempts.DeleteStale(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("purge stale login attempts failed")
		return
	}

	if deleted > 0 {
		s.log.Info().Int64("count", deleted).Msg("purged stale login attempts")
	}
}
