package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportPageSize = 100
	maxExportRows  = 10000
	exportSheet    = "Transactions"
)

// transactionHandler handles transaction history and reassignment.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	vaultService  portssvc.VaultSvcFacade
}

func newTransactionHandler(ls portssvc.LedgerSvcFacade, vs portssvc.VaultSvcFacade) *transactionHandler {
	return &transactionHandler{ledgerService: ls, vaultService: vs}
}

// registerTransactionRoutes registers routes related to transactions and the reassignment log.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, vaultService portssvc.VaultSvcFacade) {
	h := newTransactionHandler(ledgerService, vaultService)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.GET("/recent", h.listRecentTransactions)
		txns.GET("/reassigned", h.listReassignedTransactions)
		txns.GET("/export", h.exportTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID/vault", h.reassignTransaction)
		txns.GET("/:transactionID/reassignments", h.getReassignmentHistory)
	}
	rg.GET("/reassignments", h.listReassignments)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's transactions, newest first, with cursor pagination.
// @Tags transactions
// @Produce json
// @Param vaultID query string false "Only transactions currently on this vault"
// @Param method query string false "Payment method" Enums(vault_based, instant_pay, emergency)
// @Param status query string false "Transaction status" Enums(success, failed, pending)
// @Param reassigned query bool false "Only reassigned transactions"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns, next))
}

// listRecentTransactions godoc
// @Summary Recent transactions
// @Tags transactions
// @Produce json
// @Param limit query int false "Number of transactions" default(10)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/recent [get]
func (h *transactionHandler) listRecentTransactions(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ListRecentTransactions(c.Request.Context(), userID, queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns, nil))
}

// listReassignedTransactions godoc
// @Summary Reassigned transactions
// @Description Lists transactions whose vault was changed after payment, newest first.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/reassigned [get]
func (h *transactionHandler) listReassignedTransactions(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	txns, next, err := h.ledgerService.ListReassignedTransactions(c.Request.Context(), userID, queryInt(c, "limit", 20), nextToken)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns, next))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// reassignTransaction godoc
// @Summary Move a transaction to another vault
// @Description Moves a successful transaction's amount from its current vault to another active vault.
// @Description The target may go over its limit.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param target body dto.ReassignTransactionRequest true "Target vault"
// @Success 200 {object} dto.ReassignTransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} dto.ReassignTransactionResponse "Transaction cannot be moved to that vault"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/vault [put]
func (h *transactionHandler) reassignTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.ReassignTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	transactionID := c.Param("transactionID")
	moved, err := h.ledgerService.ReassignTransactionVault(c.Request.Context(), transactionID, req.VaultID, userID)
	if err != nil {
		respondError(c, err, "Failed to reassign transaction")
		return
	}
	if !moved {
		c.JSON(http.StatusConflict, dto.ReassignTransactionResponse{Reassigned: false})
		return
	}

	logger.Info("Transaction reassigned", slog.String("transaction_id", transactionID), slog.String("to_vault_id", req.VaultID))

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	res := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, dto.ReassignTransactionResponse{Reassigned: true, Transaction: &res})
}

// getReassignmentHistory godoc
// @Summary Reassignment history of a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ListReassignmentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/reassignments [get]
func (h *transactionHandler) getReassignmentHistory(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	records, err := h.ledgerService.GetReassignmentHistory(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve reassignment history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReassignmentResponse(records))
}

// listReassignments godoc
// @Summary Recent reassignments
// @Description Lists the user's reassignment log, newest first.
// @Tags transactions
// @Produce json
// @Param limit query int false "Number of entries" default(20)
// @Success 200 {object} dto.ListReassignmentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reassignments [get]
func (h *transactionHandler) listReassignments(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	records, err := h.ledgerService.ListUserReassignments(c.Request.Context(), userID, queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, err, "Failed to list reassignments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReassignmentResponse(records))
}

// exportTransactions godoc
// @Summary Export transactions
// @Description Downloads the transaction history as an Excel workbook. Accepts the same filters as the list.
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param vaultID query string false "Only transactions currently on this vault"
// @Param method query string false "Payment method"
// @Param status query string false "Transaction status"
// @Param reassigned query bool false "Only reassigned transactions"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/export [get]
func (h *transactionHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	params.Limit = exportPageSize
	params.NextToken = nil

	vaults, err := h.vaultService.ListVaults(c.Request.Context(), userID, true)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}
	vaultNames := make(map[string]string, len(vaults))
	for i := range vaults {
		vaultNames[vaults[i].VaultID] = vaults[i].DisplayName()
	}

	var txns []domain.Transaction
	for len(txns) < maxExportRows {
		page, next, err := h.ledgerService.ListTransactions(c.Request.Context(), userID, params)
		if err != nil {
			respondError(c, err, "Failed to export transactions")
			return
		}
		txns = append(txns, page...)
		if next == nil {
			break
		}
		params.NextToken = next
	}
	if len(txns) > maxExportRows {
		txns = txns[:maxExportRows]
	}

	f, err := buildTransactionWorkbook(txns, vaultNames)
	if err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write workbook", slog.String("error", err.Error()))
		return
	}
	logger.Info("Transactions exported", slog.Int("rows", len(txns)))
}

var exportHeaders = []string{"Date", "Merchant", "Vault", "Original Vault", "Amount", "Type", "Method", "Status", "Description"}

// buildTransactionWorkbook lays out one row per transaction under a header row.
func buildTransactionWorkbook(txns []domain.Transaction, vaultNames map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i := range txns {
		t := &txns[i]
		values := []any{
			t.TransactionDate.Format(time.RFC3339),
			t.MerchantName,
			vaultNames[t.VaultID],
			vaultNames[t.OriginalVaultID],
			t.Amount.InexactFloat64(),
			string(t.TransactionType),
			string(t.PaymentMethod),
			string(t.Status),
			t.Description,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// queryInt reads an integer query parameter, falling back to def when absent or malformed.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
