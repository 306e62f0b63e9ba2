package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler handles the user's linked funding account.
type bankAccountHandler struct {
	accountService portssvc.BankAccountSvcFacade
}

func registerBankAccountRoutes(rg *gin.RouterGroup, accountService portssvc.BankAccountSvcFacade) {
	h := &bankAccountHandler{accountService: accountService}

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.linkBankAccount)
		accounts.GET("/primary", h.getPrimaryBankAccount)
		accounts.PUT("/primary", h.updateBankAccount)
	}
}

// linkBankAccount godoc
// @Summary Link a bank account
// @Description Links the user's primary funding account with a simulated starting balance.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.BankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A bank account is already linked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankAccountHandler) linkBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.BankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.LinkBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to link bank account")
		return
	}

	logger.Info("Bank account linked", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// getPrimaryBankAccount godoc
// @Summary Get the primary bank account
// @Tags bank-accounts
// @Produce json
// @Success 200 {object} dto.BankAccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No account linked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/primary [get]
func (h *bankAccountHandler) getPrimaryBankAccount(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetPrimaryBankAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// updateBankAccount godoc
// @Summary Update the primary bank account
// @Description Replaces the account details. The simulated balance is kept.
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.BankAccountRequest true "Account details"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No account linked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /bank-accounts/primary [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.BankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.UpdateBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}
