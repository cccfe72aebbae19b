package service

import (
	"context"
	"testing"
	"time"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
)

func newLockoutFixture(t *testing.T) (*LockoutService, *fakeAttemptStore, *fakeUserStore) {
	t.Helper()
	attempts := newFakeAttemptStore()
	users := &fakeUserStore{}
	users.users = append(users.users, models.User{
		ID:    "u1",
		Email: "patient@example.com",
		Role:  models.RolePatient,
	})

	svc := NewLockoutService(attempts, users, config.SecurityConfig{
		MaxLoginFails:   5,
		LockoutDuration: 30 * time.Minute,
	}, testLogger())
	return svc, attempts, users
}

func TestLockoutThreshold(t *testing.T) {
	svc, _, users := newLockoutFixture(t)
	ctx := context.Background()
	email := "patient@example.com"

	for i := 0; i < 4; i++ {
		if err := svc.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure %d: %v", i+1, err)
		}
		locked, err := svc.IsLocked(ctx, email)
		if err != nil {
			t.Fatalf("is locked: %v", err)
		}
		if locked {
			t.Fatalf("locked after %d failures, want threshold 5", i+1)
		}
	}

	remaining, err := svc.RemainingAttempts(ctx, email)
	if err != nil {
		t.Fatalf("remaining attempts: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}

	if err := svc.RecordFailure(ctx, email); err != nil {
		t.Fatalf("record fifth failure: %v", err)
	}

	locked, err := svc.IsLocked(ctx, email)
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if !locked {
		t.Fatalf("expected lock after 5 failures")
	}

	until, err := svc.LockedUntil(ctx, email)
	if err != nil {
		t.Fatalf("locked until: %v", err)
	}
	if until == nil {
		t.Fatalf("expected a lock deadline")
	}

	if !users.users[0].Locked {
		t.Fatalf("expected user row flagged locked")
	}
}

func TestLockoutLazyExpiry(t *testing.T) {
	svc, attempts, users := newLockoutFixture(t)
	ctx := context.Background()
	email := "patient@example.com"

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for i := 0; i < 5; i++ {
		if err := svc.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	if locked, _ := svc.IsLocked(ctx, email); !locked {
		t.Fatalf("expected lock")
	}

	// Just before the deadline the lock still holds.
	svc.now = func() time.Time { return base.Add(29 * time.Minute) }
	if locked, _ := svc.IsLocked(ctx, email); !locked {
		t.Fatalf("lock should still hold before the deadline")
	}

	// Past the deadline the read clears the lock and resets the counter.
	svc.now = func() time.Time { return base.Add(31 * time.Minute) }
	locked, err := svc.IsLocked(ctx, email)
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if locked {
		t.Fatalf("lock should expire after the window")
	}

	attempt := attempts.attempts[email]
	if attempt.Count != 0 || attempt.Locked || attempt.LockedUntil != nil {
		t.Fatalf("expected counter reset on expiry, got %+v", attempt)
	}
	if users.users[0].Locked {
		t.Fatalf("expected user row unlocked on expiry")
	}
}

func TestLockoutSuccessResetsCounter(t *testing.T) {
	svc, attempts, _ := newLockoutFixture(t)
	ctx := context.Background()
	email := "patient@example.com"

	for i := 0; i < 3; i++ {
		if err := svc.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	if err := svc.RecordSuccess(ctx, email); err != nil {
		t.Fatalf("record success: %v", err)
	}

	if attempts.attempts[email].Count != 0 {
		t.Fatalf("expected counter reset after success")
	}

	remaining, err := svc.RemainingAttempts(ctx, email)
	if err != nil {
		t.Fatalf("remaining attempts: %v", err)
	}
	if remaining != 5 {
		t.Fatalf("remaining = %d, want full threshold", remaining)
	}
}

func TestLockoutUnknownEmailNotLocked(t *testing.T) {
	svc, _, _ := newLockoutFixture(t)
	ctx := context.Background()

	locked, err := svc.IsLocked(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("is locked: %v", err)
	}
	if locked {
		t.Fatalf("unknown email must not be locked")
	}

	remaining, err := svc.RemainingAttempts(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("remaining attempts: %v", err)
	}
	if remaining != 5 {
		t.Fatalf("remaining = %d, want full threshold for unknown email", remaining)
	}
}
