package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo         portsrepo.UserRepositoryFacade
	maxLoginAttempts int
	lockoutDuration  time.Duration
}

// UserServiceOption is a function that configures a userService
type UserServiceOption func(*userService)

// WithLoginLockout sets how many failed PIN attempts lock the user out and for how long.
func WithLoginLockout(maxAttempts int, lockout time.Duration) UserServiceOption {
	return func(s *userService) {
		if maxAttempts > 0 {
			s.maxLoginAttempts = maxAttempts
		}
		if lockout > 0 {
			s.lockoutDuration = lockout
		}
	}
}

// WithUserClock overrides the time source.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.clock = now
	}
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:         userRepo,
		maxLoginAttempts: 3,
		lockoutDuration:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, bool, error) {
	if !domain.IsValidMobileNumber(req.MobileNumber) {
		return nil, false, fmt.Errorf("%w: invalid mobile number", apperrors.ErrValidation)
	}
	if !utils.IsValidPINFormat(req.PIN) {
		return nil, false, fmt.Errorf("%w: PIN must be exactly 6 digits", apperrors.ErrValidation)
	}

	hash, err := utils.HashPIN(req.PIN)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash PIN: %w", err)
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		FullName:     req.FullName,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		PINHash:      hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, false, fmt.Errorf("%w: mobile number already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to register user")
		return nil, false, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, utils.IsWeakPIN(req.PIN), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// AuthenticateUser verifies the login PIN. After maxLoginAttempts consecutive failures the
// user is locked out for lockoutDuration; a success clears the counter.
func (s *userService) AuthenticateUser(ctx context.Context, mobile, pin string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	now := s.Now()
	if user.IsLocked(now) {
		s.LogWarn(ctx, "Login attempt while locked", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrAccountLocked
	}

	if utils.VerifyPIN(pin, user.PINHash) {
		if user.FailedAttempts > 0 || user.LockoutUntil != nil {
			if err := s.userRepo.ResetLoginFailures(ctx, user.UserID, now); err != nil {
				return nil, fmt.Errorf("failed to reset login failures: %w", err)
			}
			user.FailedAttempts = 0
			user.LockoutUntil = nil
		}
		return user, nil
	}

	// An expired lockout starts a fresh count.
	attempts := user.FailedAttempts + 1
	if user.LockoutUntil != nil {
		attempts = 1
	}
	var lockoutUntil *time.Time
	if attempts >= s.maxLoginAttempts {
		until := now.Add(s.lockoutDuration)
		lockoutUntil = &until
		attempts = 0
	}
	if err := s.userRepo.RecordLoginFailure(ctx, user.UserID, attempts, lockoutUntil, now); err != nil {
		return nil, fmt.Errorf("failed to record login failure: %w", err)
	}

	if lockoutUntil != nil {
		s.LogWarn(ctx, "User locked out", slog.String("user_id", user.UserID), slog.Duration("lockout", s.lockoutDuration))
		return nil, apperrors.ErrAccountLocked
	}
	return nil, apperrors.ErrUnauthorized
}

func (s *userService) ChangePIN(ctx context.Context, userID, currentPIN, newPIN string) (bool, error) {
	if !utils.IsValidPINFormat(newPIN) {
		return false, fmt.Errorf("%w: PIN must be exactly 6 digits", apperrors.ErrValidation)
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !utils.VerifyPIN(currentPIN, user.PINHash) {
		return false, nil
	}

	hash, err := utils.HashPIN(newPIN)
	if err != nil {
		return false, fmt.Errorf("failed to hash PIN: %w", err)
	}
	if err := s.userRepo.UpdatePINHash(ctx, userID, hash, s.Now()); err != nil {
		return false, fmt.Errorf("failed to update PIN: %w", err)
	}
	return true, nil
}
