package embedded

import (
	"context"
	"fmt"

	"github.com/SscSPs/vault_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/vault_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/vault_ledger/internal/models"
	"github.com/SscSPs/vault_ledger/internal/utils/mapping"
	"gorm.io/gorm"
)

type GormReassignmentRepository struct {
	BaseRepository
}

func newGormReassignmentRepository(db *gorm.DB) portsrepo.ReassignmentRepository {
	return &GormReassignmentRepository{BaseRepository{DB: db}}
}

var _ portsrepo.ReassignmentRepository = (*GormReassignmentRepository)(nil)

func (r *GormReassignmentRepository) ListReassignmentsByTransaction(ctx context.Context, transactionID string) ([]domain.Reassignment, error) {
	var ms []models.Reassignment
	err := r.DB.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("changed_at ASC, reassignment_id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reassignments: %w", err)
	}
	return mapping.ToDomainReassignmentSlice(ms), nil
}

func (r *GormReassignmentRepository) ListReassignmentsByUser(ctx context.Context, userID string, limit int) ([]domain.Reassignment, error) {
	var ms []models.Reassignment
	err := r.DB.WithContext(ctx).
		Where("changed_by_user_id = ?", userID).
		Order("changed_at DESC, reassignment_id DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reassignments: %w", err)
	}
	return mapping.ToDomainReassignmentSlice(ms), nil
}
