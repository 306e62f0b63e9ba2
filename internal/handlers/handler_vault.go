package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vaultHandler handles HTTP requests related to vaults.
type vaultHandler struct {
	vaultService portssvc.VaultSvcFacade
	pinGuard     *middleware.AttemptGuard
}

func newVaultHandler(vs portssvc.VaultSvcFacade, pinGuard *middleware.AttemptGuard) *vaultHandler {
	return &vaultHandler{vaultService: vs, pinGuard: pinGuard}
}

// registerVaultRoutes registers routes related to vaults.
func registerVaultRoutes(rg *gin.RouterGroup, vaultService portssvc.VaultSvcFacade, pinGuard *middleware.AttemptGuard) {
	h := newVaultHandler(vaultService, pinGuard)

	vaults := rg.Group("/vaults")
	{
		vaults.GET("", h.listVaults)
		vaults.POST("", h.createVault)
		vaults.GET("/selectable", h.listSelectableVaults)
		vaults.GET("/default", h.getDefaultInstantPayVault)
		vaults.POST("/custom", h.createCustomVault)
		vaults.POST("/emergency", h.createEmergencyVault)
		vaults.GET("/summary", h.getSummary)
		vaults.GET("/low-balance", h.listLowBalanceVaults)
		vaults.POST("/reset", h.resetMonthlyVaults)

		vaults.GET("/:vaultID", h.getVault)
		vaults.PUT("/:vaultID", h.updateVault)
		vaults.DELETE("/:vaultID", h.deleteVault)
		vaults.PUT("/:vaultID/default", h.setDefaultInstantPayVault)
		vaults.POST("/:vaultID/emergency-pin/verify", h.verifyEmergencyPIN)
		vaults.PUT("/:vaultID/emergency-pin", h.updateEmergencyPIN)
	}
}

// listVaults godoc
// @Summary List vaults
// @Description Lists the user's vaults, oldest first.
// @Tags vaults
// @Produce json
// @Param includeInactive query bool false "Include deactivated vaults"
// @Success 200 {object} dto.ListVaultsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults [get]
func (h *vaultHandler) listVaults(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	includeInactive := c.Query("includeInactive") == "true"
	vaults, err := h.vaultService.ListVaults(c.Request.Context(), userID, includeInactive)
	if err != nil {
		respondError(c, err, "Failed to list vaults")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVaultResponse(vaults))
}

// listSelectableVaults godoc
// @Summary List selectable vaults
// @Description Lists active non-emergency vaults a payment or reassignment can target.
// @Tags vaults
// @Produce json
// @Success 200 {object} dto.ListVaultsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/selectable [get]
func (h *vaultHandler) listSelectableVaults(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	vaults, err := h.vaultService.ListSelectableVaults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list vaults")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVaultResponse(vaults))
}

// createVault godoc
// @Summary Create a vault
// @Description Creates a standard category vault. Only one active vault per category is allowed.
// @Tags vaults
// @Accept json
// @Produce json
// @Param vault body dto.CreateVaultRequest true "Vault details"
// @Success 201 {object} dto.VaultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Category already used or vault limit reached"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults [post]
func (h *vaultHandler) createVault(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateVaultRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultService.CreateVault(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create vault")
		return
	}

	logger.Info("Vault created", slog.String("vault_id", vault.VaultID), slog.String("category", string(vault.Category)))
	c.JSON(http.StatusCreated, dto.ToVaultResponse(vault))
}

// createCustomVault godoc
// @Summary Create a custom vault
// @Description Creates a vault with a user-named category. Several custom vaults may coexist.
// @Tags vaults
// @Accept json
// @Produce json
// @Param vault body dto.CreateCustomVaultRequest true "Custom vault details"
// @Success 201 {object} dto.VaultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Vault limit reached"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/custom [post]
func (h *vaultHandler) createCustomVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateCustomVaultRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultService.CreateCustomVault(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create vault")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVaultResponse(vault))
}

// createEmergencyVault godoc
// @Summary Create the emergency vault
// @Description Creates the user's PIN-protected emergency vault.
// @Tags vaults
// @Accept json
// @Produce json
// @Param vault body dto.CreateEmergencyVaultRequest true "Emergency PIN"
// @Success 201 {object} dto.EmergencyVaultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Emergency vault already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/emergency [post]
func (h *vaultHandler) createEmergencyVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateEmergencyVaultRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, weak, err := h.vaultService.CreateEmergencyVault(c.Request.Context(), userID, req.PIN)
	if err != nil {
		respondError(c, err, "Failed to create emergency vault")
		return
	}
	c.JSON(http.StatusCreated, dto.EmergencyVaultResponse{VaultResponse: dto.ToVaultResponse(vault), WeakPIN: weak})
}

// getSummary godoc
// @Summary Vault totals
// @Description Returns limit, spent and available totals across active vaults, and whether a monthly reset is overdue.
// @Tags vaults
// @Produce json
// @Success 200 {object} dto.VaultSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/summary [get]
func (h *vaultHandler) getSummary(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	summary, err := h.vaultService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build vault summary")
		return
	}
	needsReset, err := h.vaultService.NeedsReset(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build vault summary")
		return
	}
	c.JSON(http.StatusOK, dto.VaultSummaryResponse{VaultSummary: *summary, NeedsReset: needsReset})
}

// getDefaultInstantPayVault godoc
// @Summary Get the default instant pay vault
// @Description Returns the vault instant payments are charged to.
// @Tags vaults
// @Produce json
// @Success 200 {object} dto.VaultResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No default vault set"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/default [get]
func (h *vaultHandler) getDefaultInstantPayVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	vault, err := h.vaultService.GetDefaultInstantPayVault(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve default vault")
		return
	}
	c.JSON(http.StatusOK, dto.ToVaultResponse(vault))
}

// listLowBalanceVaults godoc
// @Summary List low balance vaults
// @Description Lists active vaults whose remaining amount is at or below the low balance threshold.
// @Tags vaults
// @Produce json
// @Success 200 {object} dto.ListVaultsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/low-balance [get]
func (h *vaultHandler) listLowBalanceVaults(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	vaults, err := h.vaultService.GetLowBalanceVaults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list low balance vaults")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVaultResponse(vaults))
}

// resetMonthlyVaults godoc
// @Summary Run the monthly reset
// @Description Zeroes spending on all active vaults when any reset date has passed.
// @Tags vaults
// @Produce json
// @Success 200 {object} dto.ResetVaultsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/reset [post]
func (h *vaultHandler) resetMonthlyVaults(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	reset, err := h.vaultService.ResetMonthlyVaults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to reset vaults")
		return
	}
	c.JSON(http.StatusOK, dto.ResetVaultsResponse{Reset: reset})
}

// getVault godoc
// @Summary Get a vault
// @Tags vaults
// @Produce json
// @Param vaultID path string true "Vault ID"
// @Success 200 {object} dto.VaultResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID} [get]
func (h *vaultHandler) getVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	vault, err := h.vaultService.GetVault(c.Request.Context(), userID, c.Param("vaultID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve vault")
		return
	}
	c.JSON(http.StatusOK, dto.ToVaultResponse(vault))
}

// updateVault godoc
// @Summary Update a vault
// @Description Updates name, custom category, icon, color or monthly limit.
// @Tags vaults
// @Accept json
// @Produce json
// @Param vaultID path string true "Vault ID"
// @Param vault body dto.UpdateVaultRequest true "Fields to update"
// @Success 200 {object} dto.VaultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID} [put]
func (h *vaultHandler) updateVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateVaultRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultService.UpdateVault(c.Request.Context(), userID, c.Param("vaultID"), req)
	if err != nil {
		respondError(c, err, "Failed to update vault")
		return
	}
	c.JSON(http.StatusOK, dto.ToVaultResponse(vault))
}

// deleteVault godoc
// @Summary Delete a vault
// @Description Deactivates a vault. The emergency vault cannot be deleted.
// @Tags vaults
// @Param vaultID path string true "Vault ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Emergency vault is protected"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID} [delete]
func (h *vaultHandler) deleteVault(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	vaultID := c.Param("vaultID")
	if err := h.vaultService.DeleteVault(c.Request.Context(), userID, vaultID); err != nil {
		respondError(c, err, "Failed to delete vault")
		return
	}

	logger.Info("Vault deactivated", slog.String("vault_id", vaultID))
	c.Status(http.StatusNoContent)
}

// setDefaultInstantPayVault godoc
// @Summary Set the instant pay vault
// @Description Makes the vault the default for instant payments, clearing any previous default.
// @Tags vaults
// @Param vaultID path string true "Vault ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID}/default [put]
func (h *vaultHandler) setDefaultInstantPayVault(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.vaultService.SetDefaultInstantPayVault(c.Request.Context(), userID, c.Param("vaultID")); err != nil {
		respondError(c, err, "Failed to set default vault")
		return
	}
	c.Status(http.StatusNoContent)
}

// verifyEmergencyPIN godoc
// @Summary Verify emergency PIN
// @Tags vaults
// @Accept json
// @Produce json
// @Param vaultID path string true "Emergency vault ID"
// @Param pin body dto.VerifyEmergencyPINRequest true "PIN"
// @Success 200 {object} dto.VerifyEmergencyPINResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many wrong PINs"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID}/emergency-pin/verify [post]
func (h *vaultHandler) verifyEmergencyPIN(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.VerifyEmergencyPINRequest
	if !bindJSON(c, &req) {
		return
	}
	if pinAttemptsExhausted(c, h.pinGuard, userID) {
		return
	}

	valid, err := h.vaultService.VerifyEmergencyPIN(c.Request.Context(), userID, c.Param("vaultID"), req.PIN)
	if err != nil {
		respondError(c, err, "Failed to verify PIN")
		return
	}
	recordPINAttempt(c, h.pinGuard, userID, valid)
	c.JSON(http.StatusOK, dto.VerifyEmergencyPINResponse{Valid: valid})
}

// updateEmergencyPIN godoc
// @Summary Change emergency PIN
// @Tags vaults
// @Accept json
// @Produce json
// @Param vaultID path string true "Emergency vault ID"
// @Param pin body dto.UpdateEmergencyPINRequest true "Current and new PIN"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Current PIN is wrong"
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many wrong PINs"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vaults/{vaultID}/emergency-pin [put]
func (h *vaultHandler) updateEmergencyPIN(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateEmergencyPINRequest
	if !bindJSON(c, &req) {
		return
	}
	if pinAttemptsExhausted(c, h.pinGuard, userID) {
		return
	}

	changed, err := h.vaultService.UpdateEmergencyPIN(c.Request.Context(), userID, c.Param("vaultID"), req.CurrentPIN, req.NewPIN)
	if err != nil {
		respondError(c, err, "Failed to update PIN")
		return
	}
	recordPINAttempt(c, h.pinGuard, userID, changed)
	if !changed {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Current PIN is incorrect"})
		return
	}
	c.Status(http.StatusNoContent)
}
