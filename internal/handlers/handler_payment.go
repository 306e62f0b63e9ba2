package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payment attempts and dry runs.
type paymentHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	vaultService  portssvc.VaultSvcFacade
	pinGuard      *middleware.AttemptGuard
}

func newPaymentHandler(ls portssvc.LedgerSvcFacade, vs portssvc.VaultSvcFacade, pinGuard *middleware.AttemptGuard) *paymentHandler {
	return &paymentHandler{ledgerService: ls, vaultService: vs, pinGuard: pinGuard}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, vaultService portssvc.VaultSvcFacade, pinGuard *middleware.AttemptGuard) {
	h := newPaymentHandler(ledgerService, vaultService, pinGuard)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.pay)
		payments.POST("/validate", h.validatePayment)
	}
}

// pay godoc
// @Summary Make a payment
// @Description Records a payment attempt against a vault. Rule failures such as an insufficient balance
// @Description are recorded and returned with status failed. Emergency payments require the vault PIN.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Emergency PIN missing or wrong"
// @Failure 429 {object} ErrorResponse "Too many wrong emergency PINs"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) pay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Method == domain.MethodEmergency {
		if pinAttemptsExhausted(c, h.pinGuard, userID) {
			return
		}
		checked, allowed, err := h.emergencyPINGate(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err, "Failed to verify emergency PIN")
			return
		}
		if checked {
			recordPINAttempt(c, h.pinGuard, userID, allowed)
		}
		if !allowed {
			logger.Warn("Emergency payment refused: PIN check failed", slog.String("user_id", userID))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Emergency PIN is incorrect"})
			return
		}
	}

	txn, err := h.ledgerService.Pay(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to process payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
		slog.String("method", string(txn.PaymentMethod)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// emergencyPINGate checks the PIN when the payment resolves to an active emergency vault.
// Any other resolution is left to the ledger, which records the failure. checked is
// true only when a supplied PIN was compared against the stored hash.
func (h *paymentHandler) emergencyPINGate(ctx context.Context, userID string, req dto.PaymentRequest) (checked, allowed bool, err error) {
	var vault *domain.Vault
	if req.VaultID == "" {
		vault, err = h.vaultService.GetEmergencyVault(ctx, userID)
	} else {
		vault, err = h.vaultService.GetVault(ctx, userID, req.VaultID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, true, nil
	}
	if err != nil {
		return false, false, err
	}
	if !vault.IsEmergency || !vault.IsActive {
		return false, true, nil
	}
	if req.EmergencyPIN == "" {
		return false, false, nil
	}
	allowed, err = h.vaultService.VerifyEmergencyPIN(ctx, userID, vault.VaultID, req.EmergencyPIN)
	if err != nil {
		return false, false, err
	}
	return true, allowed, nil
}

// validatePayment godoc
// @Summary Check a payment
// @Description Reports whether the vault could fund the amount right now. Nothing is recorded.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.ValidatePaymentRequest true "Vault and amount"
// @Success 200 {object} dto.ValidatePaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/validate [post]
func (h *paymentHandler) validatePayment(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.ValidatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		valid  bool
		reason string
		err    error
	)
	if req.Emergency {
		valid, reason, err = h.ledgerService.ValidateEmergencyPayment(c.Request.Context(), userID, req.VaultID, req.Amount)
	} else {
		valid, reason, err = h.ledgerService.ValidatePayment(c.Request.Context(), userID, req.VaultID, req.Amount)
	}
	if err != nil {
		respondError(c, err, "Failed to validate payment")
		return
	}
	c.JSON(http.StatusOK, dto.ValidatePaymentResponse{Valid: valid, Reason: reason})
}
