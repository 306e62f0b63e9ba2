package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/core/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BankAccountServiceTestSuite struct {
	suite.Suite
	repo    *MockBankAccountRepository
	service portssvc.BankAccountSvcFacade
	ctx     context.Context
	now     time.Time
}

func (s *BankAccountServiceTestSuite) SetupTest() {
	s.repo = new(MockBankAccountRepository)
	s.now = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	s.service = services.NewBankAccountService(s.repo,
		services.WithBankAccountClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *BankAccountServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}

func bankAccountRequest() dto.BankAccountRequest {
	return dto.BankAccountRequest{
		BankName:          "State Bank",
		AccountNumber:     "123456789012",
		AccountHolderName: "Asha Rao",
		IFSCCode:          "sbin0001234",
	}
}

func (s *BankAccountServiceTestSuite) stored() *domain.BankAccount {
	created := s.now.Add(-24 * time.Hour)
	return &domain.BankAccount{
		AccountID:         "acc-1",
		UserID:            "user-1",
		BankName:          "State Bank",
		AccountNumber:     "123456789012",
		AccountHolderName: "Asha Rao",
		IFSCCode:          "SBIN0001234",
		IsPrimary:         true,
		SimulatedBalance:  decimal.NewFromInt(41250),
		AuditFields:       domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
	}
}

func (s *BankAccountServiceTestSuite) TestLinkBankAccount_Success() {
	s.repo.On("SaveBankAccount", s.ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.UserID == "user-1" && a.AccountID != "" && a.IsPrimary &&
			a.IFSCCode == "SBIN0001234" && a.SimulatedBalance.Equal(domain.DefaultSimulatedBalance)
	})).Return(nil).Once()

	account, err := s.service.LinkBankAccount(s.ctx, "user-1", bankAccountRequest())

	s.Require().NoError(err)
	s.True(account.IsPrimary)
	s.Equal(s.now, account.CreatedAt)
	s.True(account.SimulatedBalance.Equal(decimal.NewFromInt(50000)))
}

func (s *BankAccountServiceTestSuite) TestLinkBankAccount_AlreadyLinked() {
	s.repo.On("SaveBankAccount", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.LinkBankAccount(s.ctx, "user-1", bankAccountRequest())

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *BankAccountServiceTestSuite) TestLinkBankAccount_InvalidIFSC() {
	req := bankAccountRequest()
	req.IFSCCode = "SBIN1001234"

	_, err := s.service.LinkBankAccount(s.ctx, "user-1", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "SaveBankAccount", mock.Anything, mock.Anything)
}

func (s *BankAccountServiceTestSuite) TestLinkBankAccount_StoreFailure() {
	s.repo.On("SaveBankAccount", s.ctx, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := s.service.LinkBankAccount(s.ctx, "user-1", bankAccountRequest())

	s.Error(err)
	s.NotErrorIs(err, apperrors.ErrDuplicate)
}

func (s *BankAccountServiceTestSuite) TestGetPrimaryBankAccount_NotLinked() {
	s.repo.On("FindPrimaryBankAccount", s.ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetPrimaryBankAccount(s.ctx, "user-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BankAccountServiceTestSuite) TestUpdateBankAccount_KeepsBalance() {
	s.repo.On("FindPrimaryBankAccount", s.ctx, "user-1").Return(s.stored(), nil).Once()
	s.repo.On("UpdateBankAccount", s.ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.AccountID == "acc-1" && a.BankName == "HDFC Bank" && a.IFSCCode == "HDFC0000001" &&
			a.SimulatedBalance.Equal(decimal.NewFromInt(41250)) && a.LastUpdatedAt.Equal(s.now)
	})).Return(nil).Once()

	req := dto.BankAccountRequest{
		BankName: "HDFC Bank", AccountNumber: "50100012345678", AccountHolderName: "Asha Rao", IFSCCode: "HDFC0000001",
	}
	account, err := s.service.UpdateBankAccount(s.ctx, "user-1", req)

	s.Require().NoError(err)
	s.Equal("HDFC Bank", account.BankName)
	s.True(account.SimulatedBalance.Equal(decimal.NewFromInt(41250)))
}

func (s *BankAccountServiceTestSuite) TestUpdateBankAccount_InvalidAccountNumber() {
	s.repo.On("FindPrimaryBankAccount", s.ctx, "user-1").Return(s.stored(), nil).Once()

	req := bankAccountRequest()
	req.AccountNumber = "12AB"
	_, err := s.service.UpdateBankAccount(s.ctx, "user-1", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.repo.AssertNotCalled(s.T(), "UpdateBankAccount", mock.Anything, mock.Anything)
}
