package handlers_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateVault_Success() {
	req := dto.CreateVaultRequest{Name: "Groceries", Category: domain.CategoryFood, Color: "#A1B2C3", MonthlyLimit: decimal.NewFromInt(1000)}
	vault := suite.newVault(domain.CategoryFood)
	suite.mockVault.On("CreateVault", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateVaultRequest) bool {
		return r.Category == domain.CategoryFood && r.MonthlyLimit.Equal(decimal.NewFromInt(1000))
	})).Return(vault, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vaults", req)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.VaultResponse
	suite.decode(w, &res)
	suite.Equal(vault.VaultID, res.VaultID)
	suite.True(res.Remaining.Equal(decimal.NewFromInt(750)))
	suite.Equal(int64(25), res.SpendingPercentage)
}

func (suite *HandlerTestSuite) TestCreateVault_RejectedByBinding() {
	cases := []dto.CreateVaultRequest{
		{Name: "Pets", Category: domain.CategoryCustom, MonthlyLimit: decimal.NewFromInt(100)},
		{Name: "Rainy day", Category: domain.CategoryEmergency, MonthlyLimit: decimal.NewFromInt(100)},
		{Name: "Food", Category: domain.CategoryFood, Color: "red", MonthlyLimit: decimal.NewFromInt(100)},
	}
	for _, req := range cases {
		w := suite.do(http.MethodPost, "/api/v1/vaults", req)
		suite.Equal(http.StatusBadRequest, w.Code, "request %+v", req)
	}
	suite.mockVault.AssertNotCalled(suite.T(), "CreateVault", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateVault_ConflictStatuses() {
	for _, err := range []error{apperrors.ErrDuplicateCategory, apperrors.ErrVaultLimitReached} {
		suite.mockVault.On("CreateVault", mock.Anything, suite.userID, mock.Anything).Return(nil, err).Once()
		w := suite.do(http.MethodPost, "/api/v1/vaults", dto.CreateVaultRequest{Name: "Food", Category: domain.CategoryFood, MonthlyLimit: decimal.NewFromInt(100)})
		suite.Equal(http.StatusConflict, w.Code)
	}
}

func (suite *HandlerTestSuite) TestCreateEmergencyVault_WeakPIN() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("CreateEmergencyVault", mock.Anything, suite.userID, "111111").Return(vault, true, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vaults/emergency", dto.CreateEmergencyVaultRequest{PIN: "111111"})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.EmergencyVaultResponse
	suite.decode(w, &res)
	suite.True(res.WeakPIN)
	suite.True(res.IsEmergency)
}

func (suite *HandlerTestSuite) TestListVaults_IncludeInactive() {
	vaults := []domain.Vault{*suite.newVault(domain.CategoryFood), *suite.newVault(domain.CategoryTravel)}
	suite.mockVault.On("ListVaults", mock.Anything, suite.userID, true).Return(vaults, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults?includeInactive=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListVaultsResponse
	suite.decode(w, &res)
	suite.Len(res.Vaults, 2)
	suite.mockVault.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetVault_NotFound() {
	suite.mockVault.On("GetVault", mock.Anything, suite.userID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetSummary_InternalErrorIsHidden() {
	suite.mockVault.On("GetSummary", mock.Anything, suite.userID).Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults/summary", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestGetSummary_ReportsOverdueReset() {
	summary := &domain.VaultSummary{
		VaultCount:     2,
		TotalLimit:     decimal.NewFromInt(2000),
		TotalSpent:     decimal.NewFromInt(500),
		TotalAvailable: decimal.NewFromInt(1500),
	}
	suite.mockVault.On("GetSummary", mock.Anything, suite.userID).Return(summary, nil).Once()
	suite.mockVault.On("NeedsReset", mock.Anything, suite.userID).Return(true, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.VaultSummaryResponse
	suite.decode(w, &res)
	suite.True(res.NeedsReset)
	suite.Equal(2, res.VaultCount)
	suite.True(res.TotalAvailable.Equal(decimal.NewFromInt(1500)))
}

func (suite *HandlerTestSuite) TestVaultResponse_FlagsExceededVault() {
	exhausted := suite.newVault(domain.CategoryTravel)
	exhausted.CurrentSpent = decimal.NewFromInt(1000)
	vaults := []domain.Vault{*suite.newVault(domain.CategoryFood), *exhausted}
	suite.mockVault.On("ListVaults", mock.Anything, suite.userID, false).Return(vaults, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListVaultsResponse
	suite.decode(w, &res)
	suite.Require().Len(res.Vaults, 2)
	suite.False(res.Vaults[0].Exceeded)
	suite.True(res.Vaults[1].Exceeded)
}

func (suite *HandlerTestSuite) TestGetDefaultInstantPayVault() {
	vault := suite.newVault(domain.CategoryLifestyle)
	vault.IsDefaultInstantPay = true
	suite.mockVault.On("GetDefaultInstantPayVault", mock.Anything, suite.userID).Return(vault, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults/default", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.VaultResponse
	suite.decode(w, &res)
	suite.Equal(vault.VaultID, res.VaultID)
	suite.True(res.IsDefaultInstantPay)
	suite.mockVault.AssertNotCalled(suite.T(), "GetVault", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetDefaultInstantPayVault_NoneSet() {
	suite.mockVault.On("GetDefaultInstantPayVault", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/vaults/default", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteVault() {
	emergency := suite.newVault(domain.CategoryEmergency)
	food := suite.newVault(domain.CategoryFood)
	suite.mockVault.On("DeleteVault", mock.Anything, suite.userID, emergency.VaultID).Return(apperrors.ErrEmergencyVaultProtected).Once()
	suite.mockVault.On("DeleteVault", mock.Anything, suite.userID, food.VaultID).Return(nil).Once()

	suite.Equal(http.StatusConflict, suite.do(http.MethodDelete, "/api/v1/vaults/"+emergency.VaultID, nil).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, "/api/v1/vaults/"+food.VaultID, nil).Code)
}

func (suite *HandlerTestSuite) TestSetDefaultInstantPayVault() {
	vault := suite.newVault(domain.CategoryLifestyle)
	suite.mockVault.On("SetDefaultInstantPayVault", mock.Anything, suite.userID, vault.VaultID).Return(nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/vaults/"+vault.VaultID+"/default", nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockVault.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResetMonthlyVaults() {
	suite.mockVault.On("ResetMonthlyVaults", mock.Anything, suite.userID).Return(true, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vaults/reset", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ResetVaultsResponse
	suite.decode(w, &res)
	suite.True(res.Reset)
}

func (suite *HandlerTestSuite) TestEmergencyPIN_VerifyAndUpdate() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "482913").Return(true, nil).Once()
	suite.mockVault.On("UpdateEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "000001", "739164").Return(false, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin/verify", dto.VerifyEmergencyPINRequest{PIN: "482913"})
	suite.Equal(http.StatusOK, w.Code)
	var res dto.VerifyEmergencyPINResponse
	suite.decode(w, &res)
	suite.True(res.Valid)

	w = suite.do(http.MethodPut, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin", dto.UpdateEmergencyPINRequest{CurrentPIN: "000001", NewPIN: "739164"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestEmergencyPIN_ThrottledAcrossRoutes() {
	vault := suite.newVault(domain.CategoryEmergency)
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, mock.Anything).Return(false, nil).Times(pinAttempts - 1)
	suite.mockVault.On("UpdateEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "000009", "739164").Return(false, nil).Once()

	for i := 0; i < pinAttempts-1; i++ {
		w := suite.do(http.MethodPost, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin/verify", dto.VerifyEmergencyPINRequest{PIN: fmt.Sprintf("%06d", i)})
		suite.Equal(http.StatusOK, w.Code)
	}
	w := suite.do(http.MethodPut, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin", dto.UpdateEmergencyPINRequest{CurrentPIN: "000009", NewPIN: "739164"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin/verify", dto.VerifyEmergencyPINRequest{PIN: "482913"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	w = suite.do(http.MethodPut, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin", dto.UpdateEmergencyPINRequest{CurrentPIN: "482913", NewPIN: "739164"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.mockVault.AssertNumberOfCalls(suite.T(), "VerifyEmergencyPIN", pinAttempts-1)
	suite.mockVault.AssertNumberOfCalls(suite.T(), "UpdateEmergencyPIN", 1)

	// The counter is per user.
	other := uuid.NewString()
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, other, vault.VaultID, "482913").Return(false, nil).Once()
	w = suite.doAs(http.MethodPost, "/api/v1/vaults/"+vault.VaultID+"/emergency-pin/verify", dto.VerifyEmergencyPINRequest{PIN: "482913"}, suite.generateTestToken(other))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestEmergencyPIN_CorrectEntryClearsAttempts() {
	vault := suite.newVault(domain.CategoryEmergency)
	path := "/api/v1/vaults/" + vault.VaultID + "/emergency-pin/verify"
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "000001").Return(false, nil)
	suite.mockVault.On("VerifyEmergencyPIN", mock.Anything, suite.userID, vault.VaultID, "482913").Return(true, nil)

	for round := 0; round < 2; round++ {
		for i := 0; i < pinAttempts-1; i++ {
			suite.Equal(http.StatusOK, suite.do(http.MethodPost, path, dto.VerifyEmergencyPINRequest{PIN: "000001"}).Code)
		}
		w := suite.do(http.MethodPost, path, dto.VerifyEmergencyPINRequest{PIN: "482913"})
		suite.Equal(http.StatusOK, w.Code)
		var res dto.VerifyEmergencyPINResponse
		suite.decode(w, &res)
		suite.True(res.Valid, "round %d", round)
	}
}
