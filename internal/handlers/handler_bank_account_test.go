package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) newBankAccount() *domain.BankAccount {
	return &domain.BankAccount{
		AccountID:         "acc-1",
		UserID:            suite.userID,
		BankName:          "State Bank",
		AccountNumber:     "123456789012",
		AccountHolderName: "Asha Rao",
		IFSCCode:          "SBIN0001234",
		IsPrimary:         true,
		SimulatedBalance:  domain.DefaultSimulatedBalance,
		AuditFields:       domain.AuditFields{CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func bankAccountBody() dto.BankAccountRequest {
	return dto.BankAccountRequest{
		BankName: "State Bank", AccountNumber: "123456789012", AccountHolderName: "Asha Rao", IFSCCode: "SBIN0001234",
	}
}

func (suite *HandlerTestSuite) TestLinkBankAccount_MasksAccountNumber() {
	suite.mockBank.On("LinkBankAccount", mock.Anything, suite.userID, bankAccountBody()).Return(suite.newBankAccount(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts", bankAccountBody())

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.BankAccountResponse
	suite.decode(w, &res)
	suite.Equal("XXXXXXXX9012", res.AccountNumber)
	suite.True(res.SimulatedBalance.Equal(decimal.NewFromInt(50000)))
	suite.NotContains(w.Body.String(), "123456789012")
	suite.mockBank.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLinkBankAccount_AlreadyLinked() {
	suite.mockBank.On("LinkBankAccount", mock.Anything, suite.userID, bankAccountBody()).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts", bankAccountBody())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestLinkBankAccount_RejectsMalformedBody() {
	req := bankAccountBody()
	req.AccountNumber = "12AB5678901"

	w := suite.do(http.MethodPost, "/api/v1/bank-accounts", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBank.AssertNotCalled(suite.T(), "LinkBankAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetPrimaryBankAccount() {
	suite.mockBank.On("GetPrimaryBankAccount", mock.Anything, suite.userID).Return(suite.newBankAccount(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/primary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.BankAccountResponse
	suite.decode(w, &res)
	suite.Equal("acc-1", res.AccountID)
	suite.True(res.IsPrimary)
}

func (suite *HandlerTestSuite) TestGetPrimaryBankAccount_NotLinked() {
	suite.mockBank.On("GetPrimaryBankAccount", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts/primary", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateBankAccount() {
	updated := suite.newBankAccount()
	updated.BankName = "HDFC Bank"
	req := bankAccountBody()
	req.BankName = "HDFC Bank"
	suite.mockBank.On("UpdateBankAccount", mock.Anything, suite.userID, req).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/bank-accounts/primary", req)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.BankAccountResponse
	suite.decode(w, &res)
	suite.Equal("HDFC Bank", res.BankName)
}
