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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit   = 20
	maxListLimit       = 100
	defaultRecentLimit = 10
)

type ledgerService struct {
	BaseService
	vaultRepo        portsrepo.VaultRepositoryFacade
	txnRepo          portsrepo.TransactionRepositoryFacade
	reassignmentRepo portsrepo.ReassignmentRepository
}

// LedgerServiceOption is a function that configures a ledgerService
type LedgerServiceOption func(*ledgerService)

// WithLedgerClock overrides the time source.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.clock = now
	}
}

// NewLedgerService creates a new LedgerService with the given repositories.
func NewLedgerService(
	vaultRepo portsrepo.VaultRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	reassignmentRepo portsrepo.ReassignmentRepository,
	opts ...LedgerServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		vaultRepo:        vaultRepo,
		txnRepo:          txnRepo,
		reassignmentRepo: reassignmentRepo,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// --- payments ---

func (s *ledgerService) Pay(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	switch req.Method {
	case domain.MethodVaultBased:
		return s.ProcessPayment(ctx, userID, req)
	case domain.MethodInstantPay:
		return s.ProcessInstantPayment(ctx, userID, req)
	case domain.MethodEmergency:
		return s.ProcessEmergencyPayment(ctx, userID, req)
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.Method)
	}
}

func (s *ledgerService) ProcessPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	vault, err := s.ownedVault(ctx, userID, req.VaultID)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, userID, req, domain.MethodVaultBased, vault, "")
}

func (s *ledgerService) ProcessInstantPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	vault, err := s.vaultRepo.FindDefaultInstantPayVault(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		vault, err = s.vaultRepo.FindVaultByCategory(ctx, userID, domain.CategoryLifestyle)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return s.settle(ctx, userID, req, domain.MethodInstantPay, nil, domain.ReasonNoDefaultVault)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve instant pay vault", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to resolve instant pay vault: %w", err)
	}
	return s.settle(ctx, userID, req, domain.MethodInstantPay, vault, "")
}

func (s *ledgerService) ProcessEmergencyPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	var (
		vault *domain.Vault
		err   error
	)
	if req.VaultID == "" {
		vault, err = s.vaultRepo.FindEmergencyVault(ctx, userID)
		if errors.Is(err, apperrors.ErrNotFound) {
			vault, err = nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve emergency vault: %w", err)
		}
	} else {
		vault, err = s.ownedVault(ctx, userID, req.VaultID)
		if err != nil {
			return nil, err
		}
	}

	if vault != nil && !vault.IsEmergency {
		return s.settle(ctx, userID, req, domain.MethodEmergency, vault, domain.ReasonNotEmergencyVault)
	}
	return s.settle(ctx, userID, req, domain.MethodEmergency, vault, "")
}

// settle records the attempt. An empty reason means the vault is checked and debited.
func (s *ledgerService) settle(ctx context.Context, userID string, req dto.PaymentRequest, method domain.PaymentMethod, vault *domain.Vault, reason string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx)

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		MerchantName:    req.MerchantName,
		Amount:          req.Amount,
		TransactionType: domain.Debit,
		PaymentMethod:   method,
		Description:     req.Description,
		TransactionDate: s.Now(),
	}
	if vault != nil {
		txn.VaultID = vault.VaultID
	}

	if reason == "" {
		reason = affordabilityReason(vault, req.Amount)
	}

	if reason == "" {
		txn.Status = domain.StatusSuccess
		if err := txn.Validate(); err != nil {
			return nil, err
		}

		err := s.txnRepo.SaveSuccessfulPayment(ctx, txn)
		if err == nil {
			logger.Info("Payment recorded",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("vault_id", txn.VaultID),
				slog.String("method", string(method)),
				slog.String("amount", txn.Amount.String()))
			return &txn, nil
		}
		if !errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogError(ctx, err, "Failed to save payment", slog.String("vault_id", txn.VaultID))
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}

		// The vault changed between the read and the conditional debit.
		fresh, ferr := s.ownedVault(ctx, userID, txn.VaultID)
		if ferr != nil {
			return nil, ferr
		}
		reason = affordabilityReason(fresh, req.Amount)
		if reason == "" {
			reason = domain.InsufficientBalanceReason(decimal.Zero)
		}
	}

	return s.recordFailure(ctx, txn, reason)
}

func (s *ledgerService) recordFailure(ctx context.Context, txn domain.Transaction, reason string) (*domain.Transaction, error) {
	txn.Status = domain.StatusFailed
	txn.Description = domain.FailedDescription(txn.Description, reason)
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveFailedTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save failed payment", slog.String("reason", reason))
		return nil, fmt.Errorf("failed to save failed payment: %w", err)
	}

	s.LogInfo(ctx, "Payment refused",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("vault_id", txn.VaultID),
		slog.String("reason", reason))
	return &txn, nil
}

// ownedVault loads a vault belonging to userID. Missing and foreign vaults both come back nil.
func (s *ledgerService) ownedVault(ctx context.Context, userID, vaultID string) (*domain.Vault, error) {
	if vaultID == "" {
		return nil, nil
	}
	vault, err := s.vaultRepo.FindVaultByID(ctx, vaultID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load vault %s: %w", vaultID, err)
	}
	if vault.UserID != userID {
		s.LogWarn(ctx, "Vault owned by another user", slog.String("vault_id", vaultID))
		return nil, nil
	}
	return vault, nil
}

func affordabilityReason(vault *domain.Vault, amount decimal.Decimal) string {
	switch {
	case vault == nil:
		return domain.ReasonVaultNotFound
	case !vault.IsActive:
		return domain.ReasonVaultInactive
	case !amount.IsPositive(), !domain.HasMoneyScale(amount):
		return domain.ReasonInvalidAmount
	case !vault.CanAfford(amount):
		return domain.InsufficientBalanceReason(decimal.Max(vault.Remaining(), decimal.Zero))
	default:
		return ""
	}
}

// --- validation ---

func (s *ledgerService) ValidatePayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error) {
	vault, err := s.ownedVault(ctx, userID, vaultID)
	if err != nil {
		return false, "", err
	}
	reason := affordabilityReason(vault, amount)
	return reason == "", reason, nil
}

func (s *ledgerService) ValidateEmergencyPayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error) {
	vault, err := s.ownedVault(ctx, userID, vaultID)
	if err != nil {
		return false, "", err
	}
	if vault != nil && !vault.IsEmergency {
		return false, domain.ReasonNotEmergencyVault, nil
	}
	reason := affordabilityReason(vault, amount)
	return reason == "", reason, nil
}

// --- reassignment ---

// ReassignTransactionVault moves a successful transaction onto newVaultID. The new vault's
// limit is not enforced: reassignment corrects attribution, it is not a new spend decision.
func (s *ledgerService) ReassignTransactionVault(ctx context.Context, transactionID, newVaultID, actingUserID string) (bool, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("transaction_id", transactionID),
		slog.String("new_vault_id", newVaultID))

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Reassignment refused: transaction not found")
			return false, nil
		}
		return false, fmt.Errorf("failed to load transaction: %w", err)
	}

	if txn.UserID != actingUserID {
		logger.Warn("Reassignment refused: transaction owned by another user")
		return false, nil
	}
	if !txn.CanBeReassigned() {
		logger.Info("Reassignment refused: transaction not successful", slog.String("status", string(txn.Status)))
		return false, nil
	}
	if txn.VaultID == newVaultID {
		logger.Info("Reassignment refused: same vault")
		return false, nil
	}

	newVault, err := s.ownedVault(ctx, actingUserID, newVaultID)
	if err != nil {
		return false, err
	}
	if newVault == nil || !newVault.IsActive {
		logger.Info("Reassignment refused: target vault missing or inactive")
		return false, nil
	}

	plan := domain.NewReassignmentPlan(*txn, newVaultID, uuid.NewString(), actingUserID, s.Now())
	if err := s.txnRepo.ReassignTransaction(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Reassignment refused: stored state changed", slog.String("error", err.Error()))
			return false, nil
		}
		logger.Error("Reassignment rolled back", slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to reassign transaction: %w", err)
	}

	logger.Info("Transaction reassigned",
		slog.String("from_vault_id", plan.FromVaultID),
		slog.String("amount", plan.Amount.String()))
	return true, nil
}

func (s *ledgerService) GetReassignmentHistory(ctx context.Context, userID, transactionID string) ([]domain.Reassignment, error) {
	if _, err := s.GetTransaction(ctx, userID, transactionID); err != nil {
		return nil, err
	}
	records, err := s.reassignmentRepo.ListReassignmentsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reassignments: %w", err)
	}
	return records, nil
}

func (s *ledgerService) ListUserReassignments(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error) {
	records, err := s.reassignmentRepo.ListReassignmentsByUser(ctx, userID, clampLimit(limit, defaultListLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reassignments: %w", err)
	}
	return records, nil
}

// --- history ---

func (s *ledgerService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter := domain.TransactionFilter{
		VaultID:        params.VaultID,
		ReassignedOnly: params.Reassigned,
	}
	if params.Method != "" {
		method, err := domain.ParsePaymentMethod(params.Method)
		if err != nil {
			return nil, nil, err
		}
		filter.PaymentMethod = method
	}
	if params.Status != "" {
		status, err := domain.ParseTransactionStatus(params.Status)
		if err != nil {
			return nil, nil, err
		}
		filter.Status = status
	}

	txns, next, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter, clampLimit(params.Limit, defaultListLimit), params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, next, nil
}

func (s *ledgerService) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListRecentTransactions(ctx, userID, clampLimit(limit, defaultRecentLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return txns, nil
}

func (s *ledgerService) ListReassignedTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	filter := domain.TransactionFilter{ReassignedOnly: true}
	txns, next, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter, clampLimit(limit, defaultListLimit), nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reassigned transactions: %w", err)
	}
	return txns, next, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
