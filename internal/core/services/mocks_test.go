package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock VaultRepository ---
type MockVaultRepository struct {
	mock.Mock
}

var _ portsrepo.VaultRepositoryFacade = (*MockVaultRepository)(nil)

func (m *MockVaultRepository) vault(args mock.Arguments) (*domain.Vault, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultRepository) vaults(args mock.Arguments) ([]domain.Vault, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vault), args.Error(1)
}

func (m *MockVaultRepository) FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error) {
	return m.vault(m.Called(ctx, vaultID))
}

func (m *MockVaultRepository) ListVaultsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	return m.vaults(m.Called(ctx, userID, includeInactive))
}

func (m *MockVaultRepository) FindDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return m.vault(m.Called(ctx, userID))
}

func (m *MockVaultRepository) FindVaultByCategory(ctx context.Context, userID string, category domain.VaultCategory) (*domain.Vault, error) {
	return m.vault(m.Called(ctx, userID, category))
}

func (m *MockVaultRepository) FindEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return m.vault(m.Called(ctx, userID))
}

func (m *MockVaultRepository) CategoryExists(ctx context.Context, userID string, category domain.VaultCategory) (bool, error) {
	args := m.Called(ctx, userID, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockVaultRepository) CountActiveVaults(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockVaultRepository) FindLowBalanceVaults(ctx context.Context, userID string, threshold decimal.Decimal) ([]domain.Vault, error) {
	return m.vaults(m.Called(ctx, userID, threshold))
}

func (m *MockVaultRepository) SumAvailable(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockVaultRepository) SumLimits(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockVaultRepository) ListUsersWithVaults(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockVaultRepository) SaveVault(ctx context.Context, vault domain.Vault) error {
	return m.Called(ctx, vault).Error(0)
}

func (m *MockVaultRepository) UpdateVault(ctx context.Context, vault domain.Vault) error {
	return m.Called(ctx, vault).Error(0)
}

func (m *MockVaultRepository) DeactivateVault(ctx context.Context, vaultID string, now time.Time) error {
	return m.Called(ctx, vaultID, now).Error(0)
}

func (m *MockVaultRepository) UpdateEmergencyPINHash(ctx context.Context, vaultID string, pinHash string, now time.Time) error {
	return m.Called(ctx, vaultID, pinHash, now).Error(0)
}

func (m *MockVaultRepository) SetDefaultInstantPay(ctx context.Context, userID, vaultID string, now time.Time) error {
	return m.Called(ctx, userID, vaultID, now).Error(0)
}

func (m *MockVaultRepository) ResetVaultsIfDue(ctx context.Context, userID string, now time.Time, nextResetDate time.Time) (int, error) {
	args := m.Called(ctx, userID, now, nextResetDate)
	return args.Int(0), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumSpentByVault(ctx context.Context, vaultID string, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, vaultID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveFailedTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) SaveSuccessfulPayment(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) ReassignTransaction(ctx context.Context, plan domain.ReassignmentPlan) error {
	return m.Called(ctx, plan).Error(0)
}

// --- Mock ReassignmentRepository ---
type MockReassignmentRepository struct {
	mock.Mock
}

var _ portsrepo.ReassignmentRepository = (*MockReassignmentRepository)(nil)

func (m *MockReassignmentRepository) ListReassignmentsByTransaction(ctx context.Context, transactionID string) ([]domain.Reassignment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reassignment), args.Error(1)
}

func (m *MockReassignmentRepository) ListReassignmentsByUser(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reassignment), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) RecordLoginFailure(ctx context.Context, userID string, attempts int, lockoutUntil *time.Time, now time.Time) error {
	return m.Called(ctx, userID, attempts, lockoutUntil, now).Error(0)
}

func (m *MockUserRepository) ResetLoginFailures(ctx context.Context, userID string, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

func (m *MockUserRepository) UpdatePINHash(ctx context.Context, userID string, pinHash string, now time.Time) error {
	return m.Called(ctx, userID, pinHash, now).Error(0)
}

// --- Mock VaultService (as used by the monitor) ---
type MockVaultService struct {
	mock.Mock
}

var _ portssvc.VaultSvcFacade = (*MockVaultService)(nil)

func (m *MockVaultService) CreateVault(ctx context.Context, userID string, req dto.CreateVaultRequest) (*domain.Vault, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) CreateCustomVault(ctx context.Context, userID string, req dto.CreateCustomVaultRequest) (*domain.Vault, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) CreateEmergencyVault(ctx context.Context, userID string, pin string) (*domain.Vault, bool, error) {
	args := m.Called(ctx, userID, pin)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Vault), args.Bool(1), args.Error(2)
}

func (m *MockVaultService) GetVault(ctx context.Context, userID, vaultID string) (*domain.Vault, error) {
	args := m.Called(ctx, userID, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) ListVaults(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	args := m.Called(ctx, userID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vault), args.Error(1)
}

func (m *MockVaultService) ListSelectableVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vault), args.Error(1)
}

func (m *MockVaultService) GetEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) GetDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) GetLowBalanceVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vault), args.Error(1)
}

func (m *MockVaultService) GetSummary(ctx context.Context, userID string) (*domain.VaultSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VaultSummary), args.Error(1)
}

func (m *MockVaultService) UpdateVault(ctx context.Context, userID, vaultID string, req dto.UpdateVaultRequest) (*domain.Vault, error) {
	args := m.Called(ctx, userID, vaultID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func (m *MockVaultService) DeleteVault(ctx context.Context, userID, vaultID string) error {
	return m.Called(ctx, userID, vaultID).Error(0)
}

func (m *MockVaultService) SetDefaultInstantPayVault(ctx context.Context, userID, vaultID string) error {
	return m.Called(ctx, userID, vaultID).Error(0)
}

func (m *MockVaultService) ResetMonthlyVaults(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVaultService) NeedsReset(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVaultService) VerifyEmergencyPIN(ctx context.Context, userID, vaultID, pin string) (bool, error) {
	args := m.Called(ctx, userID, vaultID, pin)
	return args.Bool(0), args.Error(1)
}

func (m *MockVaultService) UpdateEmergencyPIN(ctx context.Context, userID, vaultID, currentPIN, newPIN string) (bool, error) {
	args := m.Called(ctx, userID, vaultID, currentPIN, newPIN)
	return args.Bool(0), args.Error(1)
}

// --- Mock BankAccountRepository ---
type MockBankAccountRepository struct {
	mock.Mock
}

var _ portsrepo.BankAccountRepositoryFacade = (*MockBankAccountRepository)(nil)

func (m *MockBankAccountRepository) FindPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	return m.Called(ctx, account).Error(0)
}
