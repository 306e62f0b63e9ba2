package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const vaultColumns = `vault_id, user_id, name, category, custom_category_name, icon, color, monthly_limit,
	current_spent, is_emergency, emergency_pin_hash, is_active, is_default_instant_pay, reset_date,
	created_at, last_updated_at`

type PgxVaultRepository struct {
	BaseRepository
}

func newPgxVaultRepository(pool *pgxpool.Pool) portsrepo.VaultRepositoryFacade {
	return &PgxVaultRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.VaultRepositoryFacade = (*PgxVaultRepository)(nil)

func scanVault(row pgx.Row) (domain.Vault, error) {
	var m models.Vault
	err := row.Scan(
		&m.VaultID,
		&m.UserID,
		&m.Name,
		&m.Category,
		&m.CustomCategoryName,
		&m.Icon,
		&m.Color,
		&m.MonthlyLimit,
		&m.CurrentSpent,
		&m.IsEmergency,
		&m.EmergencyPINHash,
		&m.IsActive,
		&m.IsDefaultInstantPay,
		&m.ResetDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return domain.Vault{}, err
	}
	return mapping.ToDomainVault(m), nil
}

func (r *PgxVaultRepository) queryVaults(ctx context.Context, query string, args ...any) ([]domain.Vault, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vaults: %w", err)
	}
	defer rows.Close()

	vaults := []domain.Vault{}
	for rows.Next() {
		v, err := scanVault(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vault: %w", err)
		}
		vaults = append(vaults, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vault rows: %w", err)
	}
	return vaults, nil
}

func (r *PgxVaultRepository) queryVault(ctx context.Context, what, query string, args ...any) (*domain.Vault, error) {
	v, err := scanVault(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "%s", what)
	}
	return &v, nil
}

// SaveVault inserts a new vault.
func (r *PgxVaultRepository) SaveVault(ctx context.Context, vault domain.Vault) error {
	m := mapping.ToModelVault(vault)
	query := `
		INSERT INTO vaults (` + vaultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VaultID,
		m.UserID,
		m.Name,
		m.Category,
		m.CustomCategoryName,
		m.Icon,
		m.Color,
		m.MonthlyLimit,
		m.CurrentSpent,
		m.IsEmergency,
		m.EmergencyPINHash,
		m.IsActive,
		m.IsDefaultInstantPay,
		m.ResetDate,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return mapError(err, "save vault %s", m.VaultID)
}

func (r *PgxVaultRepository) FindVaultByID(ctx context.Context, vaultID string) (*domain.Vault, error) {
	return r.queryVault(ctx, "vault "+vaultID,
		`SELECT `+vaultColumns+` FROM vaults WHERE vault_id = $1;`, vaultID)
}

func (r *PgxVaultRepository) ListVaultsByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	return r.queryVaults(ctx, `
		SELECT `+vaultColumns+` FROM vaults
		WHERE user_id = $1 AND (is_active OR $2)
		ORDER BY created_at DESC, vault_id DESC;
	`, userID, includeInactive)
}

func (r *PgxVaultRepository) FindDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return r.queryVault(ctx, "default instant pay vault",
		`SELECT `+vaultColumns+` FROM vaults WHERE user_id = $1 AND is_active AND is_default_instant_pay;`, userID)
}

func (r *PgxVaultRepository) FindVaultByCategory(ctx context.Context, userID string, category domain.VaultCategory) (*domain.Vault, error) {
	return r.queryVault(ctx, "vault with category "+string(category), `
		SELECT `+vaultColumns+` FROM vaults
		WHERE user_id = $1 AND is_active AND category = $2
		ORDER BY created_at LIMIT 1;
	`, userID, string(category))
}

func (r *PgxVaultRepository) FindEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return r.queryVault(ctx, "emergency vault",
		`SELECT `+vaultColumns+` FROM vaults WHERE user_id = $1 AND is_active AND is_emergency;`, userID)
}

func (r *PgxVaultRepository) CategoryExists(ctx context.Context, userID string, category domain.VaultCategory) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM vaults WHERE user_id = $1 AND is_active AND category = $2);`,
		userID, string(category)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vault category: %w", err)
	}
	return exists, nil
}

func (r *PgxVaultRepository) CountActiveVaults(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vaults WHERE user_id = $1 AND is_active;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vaults: %w", err)
	}
	return count, nil
}

func (r *PgxVaultRepository) FindLowBalanceVaults(ctx context.Context, userID string, threshold decimal.Decimal) ([]domain.Vault, error) {
	return r.queryVaults(ctx, `
		SELECT `+vaultColumns+` FROM vaults
		WHERE user_id = $1 AND is_active
		  AND monthly_limit - current_spent > 0
		  AND monthly_limit - current_spent <= $2 * monthly_limit
		ORDER BY (monthly_limit - current_spent) ASC;
	`, userID, threshold)
}

func (r *PgxVaultRepository) sum(ctx context.Context, expr, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+expr+`), 0) FROM vaults WHERE user_id = $1 AND is_active;`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum vaults: %w", err)
	}
	return total, nil
}

func (r *PgxVaultRepository) SumAvailable(ctx context.Context, userID string) (decimal.Decimal, error) {
	return r.sum(ctx, "monthly_limit - current_spent", userID)
}

func (r *PgxVaultRepository) SumLimits(ctx context.Context, userID string) (decimal.Decimal, error) {
	return r.sum(ctx, "monthly_limit", userID)
}

func (r *PgxVaultRepository) ListUsersWithVaults(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT user_id FROM vaults WHERE is_active ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault owners: %w", err)
	}
	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault owners: %w", err)
	}
	return userIDs, nil
}

func (r *PgxVaultRepository) UpdateVault(ctx context.Context, vault domain.Vault) error {
	m := mapping.ToModelVault(vault)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE vaults
		SET name = $2, icon = $3, color = $4, monthly_limit = $5, custom_category_name = $6, last_updated_at = $7
		WHERE vault_id = $1;
	`, m.VaultID, m.Name, m.Icon, m.Color, m.MonthlyLimit, m.CustomCategoryName, m.LastUpdatedAt)
	if err != nil {
		return mapError(err, "update vault %s", m.VaultID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vault %s", apperrors.ErrNotFound, m.VaultID)
	}
	return nil
}

func (r *PgxVaultRepository) DeactivateVault(ctx context.Context, vaultID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE vaults SET is_active = FALSE, is_default_instant_pay = FALSE, last_updated_at = $2
		WHERE vault_id = $1 AND NOT is_emergency;
	`, vaultID, now)
	if err != nil {
		return mapError(err, "deactivate vault %s", vaultID)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var isEmergency bool
	if err := r.Pool.QueryRow(ctx, `SELECT is_emergency FROM vaults WHERE vault_id = $1;`, vaultID).Scan(&isEmergency); err != nil {
		return mapError(err, "vault %s", vaultID)
	}
	if isEmergency {
		return apperrors.ErrEmergencyVaultProtected
	}
	return nil
}

func (r *PgxVaultRepository) UpdateEmergencyPINHash(ctx context.Context, vaultID string, pinHash string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE vaults SET emergency_pin_hash = $2, last_updated_at = $3
		WHERE vault_id = $1 AND is_emergency;
	`, vaultID, pinHash, now)
	if err != nil {
		return mapError(err, "update emergency PIN of vault %s", vaultID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: emergency vault %s", apperrors.ErrNotFound, vaultID)
	}
	return nil
}

// SetDefaultInstantPay clears the previous default and marks vaultID in one transaction.
func (r *PgxVaultRepository) SetDefaultInstantPay(ctx context.Context, userID, vaultID string, now time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE vaults SET is_default_instant_pay = FALSE, last_updated_at = $2
			WHERE user_id = $1 AND is_default_instant_pay;
		`, userID, now); err != nil {
			return mapError(err, "clear default instant pay vault")
		}

		tag, err := tx.Exec(ctx, `
			UPDATE vaults SET is_default_instant_pay = TRUE, last_updated_at = $3
			WHERE vault_id = $1 AND user_id = $2 AND is_active;
		`, vaultID, userID, now)
		if err != nil {
			return mapError(err, "set default instant pay vault %s", vaultID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: active vault %s", apperrors.ErrNotFound, vaultID)
		}
		return nil
	})
}

// ResetVaultsIfDue locks the user's active vaults, and when any is past its reset date
// zeroes all of them and moves their reset date to nextResetDate.
func (r *PgxVaultRepository) ResetVaultsIfDue(ctx context.Context, userID string, now time.Time, nextResetDate time.Time) (int, error) {
	var reset int
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT reset_date FROM vaults WHERE user_id = $1 AND is_active FOR UPDATE;
		`, userID)
		if err != nil {
			return fmt.Errorf("failed to lock vaults for reset: %w", err)
		}
		resetDates, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
		if err != nil {
			return fmt.Errorf("failed to scan reset dates: %w", err)
		}

		due := false
		for _, d := range resetDates {
			if now.After(d) {
				due = true
				break
			}
		}
		if !due {
			return nil
		}

		tag, err := tx.Exec(ctx, `
			UPDATE vaults SET current_spent = 0, reset_date = $2, last_updated_at = $3
			WHERE user_id = $1 AND is_active;
		`, userID, nextResetDate, now)
		if err != nil {
			return fmt.Errorf("failed to reset vaults: %w", err)
		}
		reset = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reset, nil
}
