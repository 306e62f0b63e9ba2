package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func txnResult(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func vaultResult(args mock.Arguments) (*domain.Vault, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

func vaultsResult(args mock.Arguments) ([]domain.Vault, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vault), args.Error(1)
}

func nextTokenArg(args mock.Arguments, i int) *string {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*string)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) ProcessPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	return txnResult(m.Called(ctx, userID, req))
}

func (m *MockLedgerService) ProcessInstantPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	return txnResult(m.Called(ctx, userID, req))
}

func (m *MockLedgerService) ProcessEmergencyPayment(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	return txnResult(m.Called(ctx, userID, req))
}

func (m *MockLedgerService) Pay(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Transaction, error) {
	return txnResult(m.Called(ctx, userID, req))
}

func (m *MockLedgerService) ValidatePayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error) {
	args := m.Called(ctx, userID, vaultID, amount)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLedgerService) ValidateEmergencyPayment(ctx context.Context, userID, vaultID string, amount decimal.Decimal) (bool, string, error) {
	args := m.Called(ctx, userID, vaultID, amount)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLedgerService) ReassignTransactionVault(ctx context.Context, transactionID, newVaultID, actingUserID string) (bool, error) {
	args := m.Called(ctx, transactionID, newVaultID, actingUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) GetReassignmentHistory(ctx context.Context, userID, transactionID string) ([]domain.Reassignment, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reassignment), args.Error(1)
}

func (m *MockLedgerService) ListUserReassignments(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reassignment), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return txnResult(m.Called(ctx, userID, transactionID))
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), nextTokenArg(args, 1), args.Error(2)
}

func (m *MockLedgerService) ListRecentTransactions(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListReassignedTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), nextTokenArg(args, 1), args.Error(2)
}

// --- Mock VaultService ---
type MockVaultService struct {
	mock.Mock
}

var _ portssvc.VaultSvcFacade = (*MockVaultService)(nil)

func (m *MockVaultService) CreateVault(ctx context.Context, userID string, req dto.CreateVaultRequest) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID, req))
}

func (m *MockVaultService) CreateCustomVault(ctx context.Context, userID string, req dto.CreateCustomVaultRequest) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID, req))
}

func (m *MockVaultService) CreateEmergencyVault(ctx context.Context, userID string, pin string) (*domain.Vault, bool, error) {
	args := m.Called(ctx, userID, pin)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Vault), args.Bool(1), args.Error(2)
}

func (m *MockVaultService) GetVault(ctx context.Context, userID, vaultID string) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID, vaultID))
}

func (m *MockVaultService) ListVaults(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	return vaultsResult(m.Called(ctx, userID, includeInactive))
}

func (m *MockVaultService) ListSelectableVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	return vaultsResult(m.Called(ctx, userID))
}

func (m *MockVaultService) GetEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID))
}

func (m *MockVaultService) GetDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID))
}

func (m *MockVaultService) GetLowBalanceVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	return vaultsResult(m.Called(ctx, userID))
}

func (m *MockVaultService) GetSummary(ctx context.Context, userID string) (*domain.VaultSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VaultSummary), args.Error(1)
}

func (m *MockVaultService) UpdateVault(ctx context.Context, userID, vaultID string, req dto.UpdateVaultRequest) (*domain.Vault, error) {
	return vaultResult(m.Called(ctx, userID, vaultID, req))
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

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, mobile, pin string) (*domain.User, error) {
	args := m.Called(ctx, mobile, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChangePIN(ctx context.Context, userID, currentPIN, newPIN string) (bool, error) {
	args := m.Called(ctx, userID, currentPIN, newPIN)
	return args.Bool(0), args.Error(1)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

func bankAccountResult(args mock.Arguments) (*domain.BankAccount, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) LinkBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error) {
	return bankAccountResult(m.Called(ctx, userID, req))
}

func (m *MockBankAccountService) GetPrimaryBankAccount(ctx context.Context, userID string) (*domain.BankAccount, error) {
	return bankAccountResult(m.Called(ctx, userID))
}

func (m *MockBankAccountService) UpdateBankAccount(ctx context.Context, userID string, req dto.BankAccountRequest) (*domain.BankAccount, error) {
	return bankAccountResult(m.Called(ctx, userID, req))
}
