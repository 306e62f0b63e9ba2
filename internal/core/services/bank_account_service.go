package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/google/uuid"
)

type bankAccountService struct {
	BaseService
	accountRepo portsrepo.BankAccountRepositoryFacade
}

// BankAccountServiceOption is a function that configures a bankAccountService
type BankAccountServiceOption func(*bankAccountService)

// WithBankAccountClock overrides the time source.
func WithBankAccountClock(now func() time.Time) BankAccountServiceOption {
	return func(s *bankAccountService) {
		s.clock = now
	}
}

func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade, opts ...BankAccountServiceOption) portssvc.BankAccountSvcFacade {
	svc := &bankAccountService{accountRepo: accountRepo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func applyBankAccountRequest(a *domain.BankAccount, req dto.BankAccountRequest) {
	a.BankName = strings.TrimSpace(req.BankName)
	a.AccountNumber = strings.TrimSpace(req.AccountNumber)
	a.AccountHolderName = strings.TrimSpace(req.AccountHolderName)
	a.IFSCCode = strings.ToUpper(strings.TrimSpace(req.IFSCCode))
}

func (s *bankAccountService) LinkBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error) {
	now := s.Now()
	account := domain.BankAccount{
		AccountID:        uuid.NewString(),
		UserID:           userID,
		IsPrimary:        true,
		SimulatedBalance: domain.DefaultSimulatedBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	applyBankAccountRequest(&account, req)
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a bank account is already linked", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to link bank account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account linked", slog.String("user_id", userID), slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *bankAccountService) GetPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	account, err := s.accountRepo.FindPrimaryBankAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return account, nil
}

func (s *bankAccountService) UpdateBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error) {
	account, err := s.GetPrimaryBankAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyBankAccountRequest(account, req)
	if err := account.Validate(); err != nil {
		return nil, err
	}
	account.LastUpdatedAt = s.Now()

	if err := s.accountRepo.UpdateBankAccount(ctx, *account); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update bank account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}
	return account, nil
}
