package handlers_test

import (
	"bytes"
	"net/http"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
)

func (suite *HandlerTestSuite) TestListTransactions_PassesFilters() {
	vault := suite.newVault(domain.CategoryFood)
	txns := []domain.Transaction{*suite.newTxn(vault.VaultID, domain.StatusSuccess)}
	next := "cursor-2"
	suite.mockLedger.On("ListTransactions", mock.Anything, suite.userID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.VaultID == vault.VaultID && p.Status == "success" && p.Reassigned && p.Limit == 5 &&
			p.NextToken != nil && *p.NextToken == "cursor-1"
	})).Return(txns, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?vaultID="+vault.VaultID+"&status=success&reassigned=true&limit=5&nextToken=cursor-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListTransactionsResponse
	suite.decode(w, &res)
	suite.Len(res.Transactions, 1)
	suite.Require().NotNil(res.NextToken)
	suite.Equal(next, *res.NextToken)
}

func (suite *HandlerTestSuite) TestListReassignedTransactions() {
	moved := suite.newTxn("vault-b", domain.StatusSuccess)
	moved.OriginalVaultID = "vault-a"
	moved.VaultChanged = true
	next := "cursor-9"
	suite.mockLedger.On("ListReassignedTransactions", mock.Anything, suite.userID, 5, mock.MatchedBy(func(token *string) bool {
		return token != nil && *token == "cursor-8"
	})).Return([]domain.Transaction{*moved}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/reassigned?limit=5&nextToken=cursor-8", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListTransactionsResponse
	suite.decode(w, &res)
	suite.Require().Len(res.Transactions, 1)
	suite.Equal(moved.TransactionID, res.Transactions[0].TransactionID)
	suite.Require().NotNil(res.NextToken)
	suite.Equal(next, *res.NextToken)
	suite.mockLedger.AssertNotCalled(suite.T(), "GetTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListReassignedTransactions_FirstPage() {
	suite.mockLedger.On("ListReassignedTransactions", mock.Anything, suite.userID, 20, (*string)(nil)).
		Return([]domain.Transaction{}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/reassigned", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_InvalidLimit() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReassign_PreconditionFails() {
	txn := suite.newTxn("vault-a", domain.StatusFailed)
	suite.mockLedger.On("ReassignTransactionVault", mock.Anything, txn.TransactionID, "vault-b", suite.userID).Return(false, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/"+txn.TransactionID+"/vault", dto.ReassignTransactionRequest{VaultID: "vault-b"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.JSONEq(`{"reassigned": false}`, w.Body.String())
	suite.mockLedger.AssertNotCalled(suite.T(), "GetTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReassign_Success() {
	txn := suite.newTxn("vault-b", domain.StatusSuccess)
	txn.OriginalVaultID = "vault-a"
	txn.VaultChanged = true
	suite.mockLedger.On("ReassignTransactionVault", mock.Anything, txn.TransactionID, "vault-b", suite.userID).Return(true, nil).Once()
	suite.mockLedger.On("GetTransaction", mock.Anything, suite.userID, txn.TransactionID).Return(txn, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/"+txn.TransactionID+"/vault", dto.ReassignTransactionRequest{VaultID: "vault-b"})

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ReassignTransactionResponse
	suite.decode(w, &res)
	suite.True(res.Reassigned)
	suite.Require().NotNil(res.Transaction)
	suite.Equal("vault-b", res.Transaction.VaultID)
	suite.Equal("vault-a", res.Transaction.OriginalVaultID)
	suite.True(res.Transaction.VaultChanged)
}

func (suite *HandlerTestSuite) TestReassignmentHistory() {
	txnID := "txn-1"
	records := []domain.Reassignment{
		{ReassignmentID: "r1", TransactionID: txnID, FromVaultID: "a", ToVaultID: "b", ChangedByUserID: suite.userID},
		{ReassignmentID: "r2", TransactionID: txnID, FromVaultID: "b", ToVaultID: "c", ChangedByUserID: suite.userID},
	}
	suite.mockLedger.On("GetReassignmentHistory", mock.Anything, suite.userID, txnID).Return(records, nil).Once()
	suite.mockLedger.On("ListUserReassignments", mock.Anything, suite.userID, 20).Return(records[1:], nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/"+txnID+"/reassignments", nil)
	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListReassignmentsResponse
	suite.decode(w, &res)
	suite.Len(res.Reassignments, 2)
	suite.Equal("c", res.Reassignments[1].ToVaultID)

	w = suite.do(http.MethodGet, "/api/v1/reassignments", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &res)
	suite.Len(res.Reassignments, 1)
}

func (suite *HandlerTestSuite) TestRecentTransactions() {
	txns := []domain.Transaction{*suite.newTxn("v", domain.StatusSuccess)}
	suite.mockLedger.On("ListRecentTransactions", mock.Anything, suite.userID, 3).Return(txns, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/recent?limit=3", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestExportTransactions_WalksAllPages() {
	food := suite.newVault(domain.CategoryFood)
	travel := suite.newVault(domain.CategoryTravel)
	first := suite.newTxn(food.VaultID, domain.StatusSuccess)
	second := suite.newTxn(travel.VaultID, domain.StatusSuccess)
	second.OriginalVaultID = food.VaultID
	second.MerchantName = "Airline"
	cursor := "page-2"

	suite.mockVault.On("ListVaults", mock.Anything, suite.userID, true).Return([]domain.Vault{*food, *travel}, nil).Once()
	suite.mockLedger.On("ListTransactions", mock.Anything, suite.userID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.NextToken == nil && p.Limit == 100
	})).Return([]domain.Transaction{*first}, &cursor, nil).Once()
	suite.mockLedger.On("ListTransactions", mock.Anything, suite.userID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.NextToken != nil && *p.NextToken == cursor
	})).Return([]domain.Transaction{*second}, nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment; filename=transactions_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	suite.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows("Transactions")
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal("Merchant", rows[0][1])
	suite.Equal("Cafe", rows[1][1])
	suite.Equal("Food", rows[1][2])
	suite.Equal("Airline", rows[2][1])
	suite.Equal("Travel", rows[2][2])
	suite.Equal("Food", rows[2][3])
	suite.mockLedger.AssertExpectations(suite.T())
}
