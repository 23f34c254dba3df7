package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

// ProposalRepository handles database operations for proposals and
// their line items
type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Customer").
		Where("id = ?", id).
		First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Proposal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProposalRepository) List(ctx context.Context, page, pageSize int, status string, customerID *uuid.UUID) ([]domain.Proposal, int64, error) {
	var proposals []domain.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Proposal{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Customer").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&proposals).Error

	return proposals, total, err
}

func (r *ProposalRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

// ReplaceItems swaps the full line item set of a proposal and writes the
// recalculated total in the same transaction. Item order indexes follow
// the slice order.
func (r *ProposalRepository) ReplaceItems(ctx context.Context, proposalID uuid.UUID, items []domain.ProposalItem, totalAmount float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&domain.ProposalItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear proposal items: %w", err)
		}
		for i := range items {
			items[i].ProposalID = proposalID
			items[i].OrderIndex = i
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create proposal item: %w", err)
			}
		}
		return tx.Model(&domain.Proposal{}).
			Where("id = ?", proposalID).
			Update("total_amount", totalAmount).Error
	})
}

// MarkExpired flips every sent proposal whose valid_until has passed to
// expired. Returns the number of rows changed.
func (r *ProposalRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Proposal{}).
		Where("status = ? AND valid_until IS NOT NULL AND valid_until < ?", domain.ProposalStatusSent, now).
		Update("status", domain.ProposalStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *ProposalRepository) CountByStatus(ctx context.Context) (map[domain.ProposalStatus]int, error) {
	var rows []struct {
		Status domain.ProposalStatus
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&domain.Proposal{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.ProposalStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SumAmountByStatus returns the combined total amount of proposals in
// the given status.
func (r *ProposalRepository) SumAmountByStatus(ctx context.Context, status domain.ProposalStatus) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.Proposal{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	return sum, err
}
