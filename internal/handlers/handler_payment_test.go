package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestPay_FailedPaymentIsCreated() {
	vault := suite.newVault(domain.CategoryFood)
	failed := suite.newTxn(vault.VaultID, domain.StatusFailed)
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.PaymentRequest) bool {
		return r.VaultID == vault.VaultID && r.Method == domain.MethodVaultBased
	})).Return(failed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		VaultID: vault.VaultID, MerchantName: "Cafe", Amount: decimal.NewFromInt(5000), Method: domain.MethodVaultBased,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.TransactionResponse
	suite.decode(w, &res)
	suite.Equal(domain.StatusFailed, res.Status)
	suite.mockVault.AssertNotCalled(suite.T(), "VerifyEmergencyPIN", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPay_UnknownMethodRejected() {
	w := suite.do(http.MethodPost, "/api/v1/payments", map[string]any{
		"merchantName": "Cafe", "amount": "10", "method": "card",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Pay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPay_EmergencyWrongPIN() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("GetEmergencyVault", mock.Anything, suite.userID).Return(vault, nil).Once()
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "000001").Return(false, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		MerchantName: "Hospital", Amount: decimal.NewFromInt(300), Method: domain.MethodEmergency, EmergencyPIN: "000001",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Pay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPay_EmergencyMissingPIN() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("GetVault", mock.Anything, suite.userID, vault.VaultID).Return(vault, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		VaultID: vault.VaultID, MerchantName: "Hospital", Amount: decimal.NewFromInt(300), Method: domain.MethodEmergency,
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Pay", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPay_EmergencyCorrectPIN() {
	vault := suite.newVault(domain.CategoryEmergency)
	txn := suite.newTxn(vault.VaultID, domain.StatusSuccess)
	txn.PaymentMethod = domain.MethodEmergency
	suite.mockVault.On("GetVault", mock.Anything, suite.userID, vault.VaultID).Return(vault, nil).Once()
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "482913").Return(true, nil).Once()
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.Anything).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		VaultID: vault.VaultID, MerchantName: "Hospital", Amount: decimal.NewFromInt(120), Method: domain.MethodEmergency, EmergencyPIN: "482913",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.TransactionResponse
	suite.decode(w, &res)
	suite.Equal(domain.StatusSuccess, res.Status)
	suite.Equal(domain.MethodEmergency, res.PaymentMethod)
}

func (suite *HandlerTestSuite) TestPay_EmergencyOnOrdinaryVaultLeftToLedger() {
	vault := suite.newVault(domain.CategoryFood)
	failed := suite.newTxn(vault.VaultID, domain.StatusFailed)
	suite.mockVault.On("GetVault", mock.Anything, suite.userID, vault.VaultID).Return(vault, nil).Once()
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.Anything).Return(failed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		VaultID: vault.VaultID, MerchantName: "Cafe", Amount: decimal.NewFromInt(120), Method: domain.MethodEmergency,
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockVault.AssertNotCalled(suite.T(), "VerifyEmergencyPIN", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPay_EmergencyWithoutVaultLeftToLedger() {
	failed := suite.newTxn("", domain.StatusFailed)
	suite.mockVault.On("GetEmergencyVault", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.Anything).Return(failed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		MerchantName: "Hospital", Amount: decimal.NewFromInt(120), Method: domain.MethodEmergency, EmergencyPIN: "482913",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.TransactionResponse
	suite.decode(w, &res)
	suite.Empty(res.VaultID)
}

func (suite *HandlerTestSuite) TestPay_EmergencyThrottledAfterWrongPINs() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("GetEmergencyVault", mock.Anything, suite.userID).Return(vault, nil).Times(pinAttempts)
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, mock.Anything).Return(false, nil).Times(pinAttempts)
	req := dto.PaymentRequest{MerchantName: "Hospital", Amount: decimal.NewFromInt(300), Method: domain.MethodEmergency}

	for i := 0; i < pinAttempts; i++ {
		req.EmergencyPIN = fmt.Sprintf("%06d", i)
		suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/api/v1/payments", req).Code, "attempt %d", i+1)
	}

	req.EmergencyPIN = "482913"
	w := suite.do(http.MethodPost, "/api/v1/payments", req)

	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.mockVault.AssertNumberOfCalls(suite.T(), "VerifyEmergencyPIN", pinAttempts)
	suite.mockLedger.AssertNotCalled(suite.T(), "Pay", mock.Anything, mock.Anything, mock.Anything)

	// Ordinary payments are not affected by the exhausted PIN attempts.
	food := suite.newVault(domain.CategoryFood)
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.Anything).Return(suite.newTxn(food.VaultID, domain.StatusSuccess), nil).Once()
	w = suite.do(http.MethodPost, "/api/v1/payments", dto.PaymentRequest{
		VaultID: food.VaultID, MerchantName: "Cafe", Amount: decimal.NewFromInt(20), Method: domain.MethodVaultBased,
	})
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestPay_MissingPINIsNotCountedAsAGuess() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("GetVault", mock.Anything, suite.userID, vault.VaultID).Return(vault, nil)
	req := dto.PaymentRequest{VaultID: vault.VaultID, MerchantName: "Hospital", Amount: decimal.NewFromInt(300), Method: domain.MethodEmergency}

	for i := 0; i < pinAttempts+1; i++ {
		suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/api/v1/payments", req).Code)
	}
	suite.mockVault.AssertNotCalled(suite.T(), "VerifyEmergencyPIN", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	txn := suite.newTxn(vault.VaultID, domain.StatusSuccess)
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "482913").Return(true, nil).Once()
	suite.mockLedger.On("Pay", mock.Anything, suite.userID, mock.Anything).Return(txn, nil).Once()
	req.EmergencyPIN = "482913"
	suite.Equal(http.StatusCreated, suite.do(http.MethodPost, "/api/v1/payments", req).Code)
}

func (suite *HandlerTestSuite) TestValidatePayment() {
	vault := suite.newVault(domain.CategoryFood)
	suite.mockLedger.On("ValidatePayment", mock.Anything, suite.userID, vault.VaultID, amountIs(900)).
		Return(false, "insufficient balance", nil).Once()
	suite.mockLedger.On("ValidateEmergencyPayment", mock.Anything, suite.userID, vault.VaultID, amountIs(10)).
		Return(false, domain.ReasonNotEmergencyVault, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments/validate", dto.ValidatePaymentRequest{VaultID: vault.VaultID, Amount: decimal.NewFromInt(900)})
	suite.Equal(http.StatusOK, w.Code)
	var res dto.ValidatePaymentResponse
	suite.decode(w, &res)
	suite.False(res.Valid)
	suite.Equal("insufficient balance", res.Reason)

	w = suite.do(http.MethodPost, "/api/v1/payments/validate", dto.ValidatePaymentRequest{VaultID: vault.VaultID, Amount: decimal.NewFromInt(10), Emergency: true})
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &res)
	suite.Equal(domain.ReasonNotEmergencyVault, res.Reason)
	suite.mockLedger.AssertExpectations(suite.T())
}
