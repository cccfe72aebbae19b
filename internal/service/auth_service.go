package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"emocare/api/internal/config"
	"emocare/api/internal/models"
	"emocare/api/internal/repository"
	"emocare/api/internal/security"
)

// AuthService issues access tokens and enforces the login lockout policy.
type AuthService struct {
	users   UserStore
	userSvc *UserService
	lockout *LockoutService
	cfg     config.SecurityConfig
	log     zerolog.Logger
}

func NewAuthService(users UserStore, userSvc *UserService, lockout *LockoutService, cfg config.SecurityConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		userSvc: userSvc,
		lockout: lockout,
		cfg:     cfg,
		log:     log,
	}
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	user, err := s.userSvc.Register(ctx, input)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	locked, err := s.lockout.IsLocked(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if locked {
		s.log.Warn().Str("email", email).Msg("login blocked for locked account")
		return AuthResult{}, ErrAccountLocked
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, s.failLogin(ctx, email)
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, s.failLogin(ctx, email)
	}

	if !user.Enabled {
		return AuthResult{}, ErrForbidden
	}

	if err := s.lockout.RecordSuccess(ctx, email); err != nil {
		return AuthResult{}, err
	}
	if err := s.users.TouchLastConnected(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("touch last connected failed")
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return s.issueToken(user)
}

// failLogin records the failure and reports how many attempts remain, or
// that the account just got locked.
func (s *AuthService) failLogin(ctx context.Context, email string) error {
	if err := s.lockout.RecordFailure(ctx, email); err != nil {
		return err
	}

	locked, err := s.lockout.IsLocked(ctx, email)
	if err != nil {
		return err
	}
	if locked {
		return ErrAccountLocked
	}

	remaining, err := s.lockout.RemainingAttempts(ctx, email)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w (%d attempt(s) remaining)", ErrInvalidCredentials, remaining)
}

func (s *AuthService) issueToken(user models.User) (AuthResult, error) {
	token, err := security.GenerateAccessToken(
		s.cfg.JWTSecret,
		user.ID,
		user.Email,
		string(user.Role),
		s.cfg.JWTTTL,
	)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}
