package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
)

// vaultMonitor periodically resets overdue vaults, reports low balances and
// cross-checks each vault's running spend against its payment records.
type vaultMonitor struct {
	BaseService
	vaultRepo portsrepo.VaultReader
	txnRepo   portsrepo.TransactionReader
	vaults    portssvc.VaultSvcFacade
	interval  time.Duration
}

// NewVaultMonitor creates the background sweep. interval <= 0 defaults to one hour.
func NewVaultMonitor(vaultRepo portsrepo.VaultReader, txnRepo portsrepo.TransactionReader, vaults portssvc.VaultSvcFacade, interval time.Duration) portssvc.VaultMonitorSvc {
	if interval <= 0 {
		interval = time.Hour
	}
	return &vaultMonitor{
		vaultRepo: vaultRepo,
		txnRepo:   txnRepo,
		vaults:    vaults,
		interval:  interval,
	}
}

var _ portssvc.VaultMonitorSvc = (*vaultMonitor)(nil)

// Start runs one sweep immediately and then one per tick until ctx is done.
func (m *vaultMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		m.RunOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce sweeps every user once. Per-user failures are logged and skipped.
func (m *vaultMonitor) RunOnce(ctx context.Context) int {
	logger := m.GetLogger(ctx).With(slog.String("component", "vault_monitor"))

	userIDs, err := m.vaultRepo.ListUsersWithVaults(ctx)
	if err != nil {
		logger.Error("failed to list users for vault sweep", slog.String("error", err.Error()))
		return 0
	}

	resets := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return resets
		}

		reset, err := m.vaults.ResetMonthlyVaults(ctx, userID)
		if err != nil {
			logger.Error("monthly reset failed", slog.String("user_id", userID), slog.String("error", err.Error()))
			continue
		}
		if reset {
			resets++
		}

		low, err := m.vaults.GetLowBalanceVaults(ctx, userID)
		if err != nil {
			logger.Error("low balance check failed", slog.String("user_id", userID), slog.String("error", err.Error()))
			continue
		}
		for _, v := range low {
			logger.Info("vault running low",
				slog.String("user_id", userID),
				slog.String("vault_id", v.VaultID),
				slog.String("vault", v.DisplayName()),
				slog.String("remaining", v.Remaining().String()),
				slog.Int64("spent_percent", v.SpendingPercentage()))
		}

		m.reconcile(ctx, logger, userID)
	}

	if resets > 0 {
		logger.Info("vault sweep finished", slog.Int("users", len(userIDs)), slog.Int("reset", resets))
	}
	return resets
}

// reconcile compares current_spent with the successful debits of the running cycle.
// Drift is logged, never corrected.
func (m *vaultMonitor) reconcile(ctx context.Context, logger *slog.Logger, userID string) int {
	vaults, err := m.vaults.ListVaults(ctx, userID, false)
	if err != nil {
		logger.Error("spend reconciliation failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		return 0
	}

	drifted := 0
	for _, v := range vaults {
		recorded, err := m.txnRepo.SumSpentByVault(ctx, v.VaultID, v.CycleStart())
		if err != nil {
			logger.Error("spend reconciliation failed", slog.String("vault_id", v.VaultID), slog.String("error", err.Error()))
			continue
		}
		if recorded.Equal(v.CurrentSpent) {
			continue
		}
		drifted++
		logger.Warn("vault spend drift",
			slog.String("user_id", userID),
			slog.String("vault_id", v.VaultID),
			slog.String("current_spent", v.CurrentSpent.String()),
			slog.String("recorded_spent", recorded.String()))
	}
	return drifted
}
