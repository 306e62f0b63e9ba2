package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/vault_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pinAttemptsExhausted writes 429 when the user has no emergency PIN attempts left
// in the current window. The counter is keyed by user, not vault.
func pinAttemptsExhausted(c *gin.Context, guard *middleware.AttemptGuard, userID string) bool {
	blocked, err := guard.Blocked(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to verify emergency PIN")
		return true
	}
	if blocked {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Emergency PIN attempts exhausted", slog.String("user_id", userID))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many wrong emergency PIN attempts. Please try again later."})
		return true
	}
	return false
}

// recordPINAttempt counts a wrong PIN against the user and clears the count on a correct one.
func recordPINAttempt(c *gin.Context, guard *middleware.AttemptGuard, userID string, correct bool) {
	var err error
	if correct {
		err = guard.Clear(c.Request.Context(), userID)
	} else {
		err = guard.Fail(c.Request.Context(), userID)
	}
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update emergency PIN attempts",
			slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}
