package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
)

type authFixture struct {
	svc     *AuthService
	lockout *LockoutService
	users   *fakeUserStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := &fakeUserStore{}
	assignments := &fakeAssignmentStore{users: users}
	attempts := newFakeAttemptStore()

	secCfg := config.SecurityConfig{
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		MaxLoginFails:   5,
		LockoutDuration: 30 * time.Minute,
	}

	userSvc := NewUserService(users, assignments, testLogger())
	lockout := NewLockoutService(attempts, users, secCfg, testLogger())
	svc := NewAuthService(users, userSvc, lockout, secCfg, testLogger())

	if _, err := userSvc.Register(context.Background(), RegisterInput{
		FullName: "Pat One",
		Email:    "pat@example.com",
		Password: "Abcdef1!",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &authFixture{svc: svc, lockout: lockout, users: users}
}

func TestLoginIssuesToken(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Login(context.Background(), "Pat@Example.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User.Email != "pat@example.com" {
		t.Fatalf("user = %+v", result.User)
	}
	if f.users.users[0].LastConnectedAt == nil {
		t.Fatalf("expected last connected timestamp after login")
	}
}

func TestLoginWrongPasswordCountsDown(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "pat@example.com", "nope")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	remaining, err := f.lockout.RemainingAttempts(ctx, "pat@example.com")
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 4 {
		t.Fatalf("remaining = %d, want 4", remaining)
	}
}

func TestLoginLocksAfterFiveFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = f.svc.Login(ctx, "pat@example.com", "nope")
	}
	if !errors.Is(lastErr, ErrAccountLocked) {
		t.Fatalf("fifth failure err = %v, want ErrAccountLocked", lastErr)
	}

	// Even the right password is refused while the lock holds.
	_, err := f.svc.Login(ctx, "pat@example.com", "Abcdef1!")
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("err = %v, want ErrAccountLocked with correct password", err)
	}
}

func TestLoginAfterLockExpiry(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.lockout.now = func() time.Time { return base }

	for i := 0; i < 5; i++ {
		_, _ = f.svc.Login(ctx, "pat@example.com", "nope")
	}

	f.lockout.now = func() time.Time { return base.Add(31 * time.Minute) }
	result, err := f.svc.Login(ctx, "pat@example.com", "Abcdef1!")
	if err != nil {
		t.Fatalf("login after expiry: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token after lock expiry")
	}
}

func TestLoginUnknownEmailStillCounts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "ghost@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	remaining, err := f.lockout.RemainingAttempts(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 4 {
		t.Fatalf("remaining = %d, want 4 for unknown email", remaining)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.users.users[0].Enabled = false

	_, err := f.svc.Login(context.Background(), "pat@example.com", "Abcdef1!")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for disabled account", err)
	}
}

func TestRegisterReturnsToken(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Register(context.Background(), RegisterInput{
		FullName: "Doc One",
		Email:    "doc@example.com",
		Password: "Abcdef1!",
		Role:     models.RoleDoctor,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User.Role != models.RoleDoctor {
		t.Fatalf("role = %s, want DOCTOR", result.User.Role)
	}
}
