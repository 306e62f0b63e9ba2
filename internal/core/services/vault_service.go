package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/vault_ledger/internal/apperrors"
	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vault_ledger/internal/core/ports/services"
	"github.com/SscSPs/vault_ledger/internal/dto"
	"github.com/SscSPs/vault_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type vaultService struct {
	BaseService
	vaultRepo           portsrepo.VaultRepositoryFacade
	maxVaults           int
	emergencyLimit      decimal.Decimal
	lowBalanceThreshold decimal.Decimal
}

// VaultServiceOption is a function that configures a vaultService
type VaultServiceOption func(*vaultService)

// WithVaultLimits overrides the per-user vault cap, the emergency vault limit and the low balance threshold.
func WithVaultLimits(maxVaults int, emergencyLimit, lowBalanceThreshold decimal.Decimal) VaultServiceOption {
	return func(s *vaultService) {
		if maxVaults > 0 {
			s.maxVaults = maxVaults
		}
		if emergencyLimit.IsPositive() {
			s.emergencyLimit = emergencyLimit
		}
		if lowBalanceThreshold.IsPositive() {
			s.lowBalanceThreshold = lowBalanceThreshold
		}
	}
}

// WithVaultClock overrides the time source.
func WithVaultClock(now func() time.Time) VaultServiceOption {
	return func(s *vaultService) {
		s.clock = now
	}
}

// NewVaultService creates a new VaultService with the given repository.
func NewVaultService(vaultRepo portsrepo.VaultRepositoryFacade, opts ...VaultServiceOption) portssvc.VaultSvcFacade {
	svc := &vaultService{
		vaultRepo:           vaultRepo,
		maxVaults:           domain.DefaultMaxVaultsPerUser,
		emergencyLimit:      domain.DefaultEmergencyVaultLimit,
		lowBalanceThreshold: domain.DefaultLowBalanceThreshold,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ portssvc.VaultSvcFacade = (*vaultService)(nil)

// --- creation ---

func (s *vaultService) CreateVault(ctx context.Context, userID string, req dto.CreateVaultRequest) (*domain.Vault, error) {
	category, err := domain.ParseVaultCategory(string(req.Category))
	if err != nil {
		return nil, err
	}
	if category == domain.CategoryEmergency || category == domain.CategoryCustom {
		return nil, fmt.Errorf("%w: %s vaults have their own constructor", apperrors.ErrValidation, category)
	}

	if err := s.ensureCapacity(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.vaultRepo.CategoryExists(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to check vault category: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCategory, category)
	}

	vault := s.newVault(userID, req.Name, category, req.Icon, req.Color, req.MonthlyLimit)
	if err := s.save(ctx, vault); err != nil {
		return nil, err
	}
	return &vault, nil
}

func (s *vaultService) CreateCustomVault(ctx context.Context, userID string, req dto.CreateCustomVaultRequest) (*domain.Vault, error) {
	if req.CustomCategoryName == "" {
		return nil, fmt.Errorf("%w: custom category name is required", apperrors.ErrValidation)
	}
	if err := s.ensureCapacity(ctx, userID); err != nil {
		return nil, err
	}

	vault := s.newVault(userID, req.Name, domain.CategoryCustom, req.Icon, req.Color, req.MonthlyLimit)
	vault.CustomCategoryName = req.CustomCategoryName
	if err := s.save(ctx, vault); err != nil {
		return nil, err
	}
	return &vault, nil
}

func (s *vaultService) CreateEmergencyVault(ctx context.Context, userID string, pin string) (*domain.Vault, bool, error) {
	if !utils.IsValidPINFormat(pin) {
		return nil, false, fmt.Errorf("%w: PIN must be exactly 6 digits", apperrors.ErrValidation)
	}
	if err := s.ensureCapacity(ctx, userID); err != nil {
		return nil, false, err
	}

	exists, err := s.vaultRepo.CategoryExists(ctx, userID, domain.CategoryEmergency)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check emergency vault: %w", err)
	}
	if exists {
		return nil, false, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCategory, domain.CategoryEmergency)
	}

	hash, err := utils.HashPIN(pin)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash emergency PIN: %w", err)
	}

	vault := s.newVault(userID, domain.EmergencyVaultName, domain.CategoryEmergency, "", "", s.emergencyLimit)
	vault.IsEmergency = true
	vault.EmergencyPINHash = hash
	if err := s.save(ctx, vault); err != nil {
		return nil, false, err
	}
	return &vault, utils.IsWeakPIN(pin), nil
}

func (s *vaultService) newVault(userID, name string, category domain.VaultCategory, icon, color string, limit decimal.Decimal) domain.Vault {
	defIcon, defColor := category.DefaultStyle()
	if icon == "" {
		icon = defIcon
	}
	if color == "" {
		color = defColor
	}
	now := s.Now()
	return domain.Vault{
		VaultID:      uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Category:     category,
		Icon:         icon,
		Color:        color,
		MonthlyLimit: limit,
		CurrentSpent: decimal.Zero,
		IsActive:     true,
		ResetDate:    domain.NextResetDate(now),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

func (s *vaultService) ensureCapacity(ctx context.Context, userID string) error {
	count, err := s.vaultRepo.CountActiveVaults(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to count vaults: %w", err)
	}
	if count >= s.maxVaults {
		return fmt.Errorf("%w: limit is %d", apperrors.ErrVaultLimitReached, s.maxVaults)
	}
	return nil
}

func (s *vaultService) save(ctx context.Context, vault domain.Vault) error {
	if err := vault.Validate(); err != nil {
		return err
	}
	if err := s.vaultRepo.SaveVault(ctx, vault); err != nil {
		// A unique index caught a concurrent create of the same category.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCategory, vault.Category)
		}
		s.LogError(ctx, err, "Failed to save vault", slog.String("category", string(vault.Category)))
		return fmt.Errorf("failed to save vault: %w", err)
	}
	s.LogInfo(ctx, "Vault created",
		slog.String("vault_id", vault.VaultID),
		slog.String("category", string(vault.Category)),
		slog.String("monthly_limit", vault.MonthlyLimit.String()))
	return nil
}

// --- reads ---

func (s *vaultService) GetVault(ctx context.Context, userID, vaultID string) (*domain.Vault, error) {
	vault, err := s.vaultRepo.FindVaultByID(ctx, vaultID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	if vault.UserID != userID {
		return nil, fmt.Errorf("%w: vault %s", apperrors.ErrNotFound, vaultID)
	}
	return vault, nil
}

func (s *vaultService) ListVaults(ctx context.Context, userID string, includeInactive bool) ([]domain.Vault, error) {
	vaults, err := s.vaultRepo.ListVaultsByUser(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	return vaults, nil
}

func (s *vaultService) ListSelectableVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	vaults, err := s.ListVaults(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	selectable := make([]domain.Vault, 0, len(vaults))
	for _, v := range vaults {
		if !v.IsEmergency {
			selectable = append(selectable, v)
		}
	}
	return selectable, nil
}

func (s *vaultService) GetEmergencyVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return s.vaultRepo.FindEmergencyVault(ctx, userID)
}

func (s *vaultService) GetDefaultInstantPayVault(ctx context.Context, userID string) (*domain.Vault, error) {
	return s.vaultRepo.FindDefaultInstantPayVault(ctx, userID)
}

func (s *vaultService) GetLowBalanceVaults(ctx context.Context, userID string) ([]domain.Vault, error) {
	vaults, err := s.vaultRepo.FindLowBalanceVaults(ctx, userID, s.lowBalanceThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low balance vaults: %w", err)
	}
	return vaults, nil
}

func (s *vaultService) GetSummary(ctx context.Context, userID string) (*domain.VaultSummary, error) {
	vaults, err := s.ListVaults(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	totalLimit, err := s.vaultRepo.SumLimits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum vault limits: %w", err)
	}
	available, err := s.vaultRepo.SumAvailable(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum vault availability: %w", err)
	}

	summary := &domain.VaultSummary{
		VaultCount:     len(vaults),
		TotalLimit:     totalLimit,
		TotalAvailable: available,
		TotalSpent:     totalLimit.Sub(available),
	}
	for _, v := range vaults {
		if v.IsLowBalance(s.lowBalanceThreshold) {
			summary.LowBalanceCount++
		}
	}
	return summary, nil
}

// --- writes ---

func (s *vaultService) UpdateVault(ctx context.Context, userID, vaultID string, req dto.UpdateVaultRequest) (*domain.Vault, error) {
	vault, err := s.GetVault(ctx, userID, vaultID)
	if err != nil {
		return nil, err
	}
	if !vault.IsActive {
		return nil, fmt.Errorf("%w: vault %s is inactive", apperrors.ErrValidation, vaultID)
	}

	if req.Name != nil && !vault.IsEmergency {
		vault.Name = *req.Name
	}
	if req.Icon != nil {
		vault.Icon = *req.Icon
	}
	if req.Color != nil {
		vault.Color = *req.Color
	}
	if req.MonthlyLimit != nil {
		vault.MonthlyLimit = *req.MonthlyLimit
	}
	if req.CustomCategoryName != nil {
		if vault.Category != domain.CategoryCustom {
			return nil, fmt.Errorf("%w: only custom vaults carry a custom category name", apperrors.ErrValidation)
		}
		vault.CustomCategoryName = *req.CustomCategoryName
	}
	vault.LastUpdatedAt = s.Now()

	if err := vault.Validate(); err != nil {
		return nil, err
	}
	if err := s.vaultRepo.UpdateVault(ctx, *vault); err != nil {
		return nil, fmt.Errorf("failed to update vault: %w", err)
	}
	return vault, nil
}

func (s *vaultService) DeleteVault(ctx context.Context, userID, vaultID string) error {
	vault, err := s.GetVault(ctx, userID, vaultID)
	if err != nil {
		return err
	}
	if vault.IsEmergency {
		return apperrors.ErrEmergencyVaultProtected
	}
	if err := s.vaultRepo.DeactivateVault(ctx, vaultID, s.Now()); err != nil {
		return fmt.Errorf("failed to deactivate vault: %w", err)
	}
	s.LogInfo(ctx, "Vault deactivated", slog.String("vault_id", vaultID))
	return nil
}

func (s *vaultService) SetDefaultInstantPayVault(ctx context.Context, userID, vaultID string) error {
	vault, err := s.GetVault(ctx, userID, vaultID)
	if err != nil {
		return err
	}
	if !vault.IsActive {
		return fmt.Errorf("%w: vault %s is inactive", apperrors.ErrValidation, vaultID)
	}
	if err := s.vaultRepo.SetDefaultInstantPay(ctx, userID, vaultID, s.Now()); err != nil {
		return fmt.Errorf("failed to set default instant pay vault: %w", err)
	}
	s.LogInfo(ctx, "Default instant pay vault set", slog.String("vault_id", vaultID))
	return nil
}

// --- monthly cycle ---

// ResetMonthlyVaults resets every active vault of the user together once any one of them is
// past its reset date. Re-running it after a reset is a no-op.
func (s *vaultService) ResetMonthlyVaults(ctx context.Context, userID string) (bool, error) {
	now := s.Now()
	n, err := s.vaultRepo.ResetVaultsIfDue(ctx, userID, now, domain.NextResetDate(now))
	if err != nil {
		s.LogError(ctx, err, "Monthly reset failed", slog.String("user_id", userID))
		return false, fmt.Errorf("failed to reset vaults: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	s.LogInfo(ctx, "Monthly vault reset", slog.String("user_id", userID), slog.Int("vaults", n))
	return true, nil
}

func (s *vaultService) NeedsReset(ctx context.Context, userID string) (bool, error) {
	vaults, err := s.ListVaults(ctx, userID, false)
	if err != nil {
		return false, err
	}
	now := s.Now()
	for _, v := range vaults {
		if v.NeedsReset(now) {
			return true, nil
		}
	}
	return false, nil
}

// --- emergency PIN ---

func (s *vaultService) VerifyEmergencyPIN(ctx context.Context, userID, vaultID, pin string) (bool, error) {
	vault, err := s.GetVault(ctx, userID, vaultID)
	if err != nil {
		return false, err
	}
	if !vault.IsEmergency || !vault.IsActive {
		return false, nil
	}
	if !utils.IsValidPINFormat(pin) {
		return false, nil
	}
	return utils.VerifyPIN(pin, vault.EmergencyPINHash), nil
}

func (s *vaultService) UpdateEmergencyPIN(ctx context.Context, userID, vaultID, currentPIN, newPIN string) (bool, error) {
	if !utils.IsValidPINFormat(newPIN) {
		return false, fmt.Errorf("%w: PIN must be exactly 6 digits", apperrors.ErrValidation)
	}
	ok, err := s.VerifyEmergencyPIN(ctx, userID, vaultID, currentPIN)
	if err != nil || !ok {
		return false, err
	}

	hash, err := utils.HashPIN(newPIN)
	if err != nil {
		return false, fmt.Errorf("failed to hash emergency PIN: %w", err)
	}
	if err := s.vaultRepo.UpdateEmergencyPINHash(ctx, vaultID, hash, s.Now()); err != nil {
		return false, fmt.Errorf("failed to update emergency PIN: %w", err)
	}
	s.LogInfo(ctx, "Emergency PIN changed", slog.String("vault_id", vaultID))
	return true, nil
}
