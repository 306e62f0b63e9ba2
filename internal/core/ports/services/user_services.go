package services

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
)

// UserSvcFacade defines user registration and PIN authentication.
type UserSvcFacade interface {
	// RegisterUser creates a user. The bool is the weak PIN advisory.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, bool, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser checks the PIN, applying the failed attempt lockout.
	AuthenticateUser(ctx context.Context, mobile, pin string) (*domain.User, error)

	ChangePIN(ctx context.Context, userID, currentPIN, newPIN string) (bool, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
