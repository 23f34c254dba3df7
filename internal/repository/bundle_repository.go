package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

// BundleRepository handles database operations for service bundles
type BundleRepository struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) *BundleRepository {
	return &BundleRepository{db: db}
}

func (r *BundleRepository) Create(ctx context.Context, bundle *domain.Bundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *BundleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bundle, error) {
	var bundle domain.Bundle
	err := r.db.WithContext(ctx).
		Preload("Items.ServiceItem").
		Where("id = ?", id).
		First(&bundle).Error
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *BundleRepository) Update(ctx context.Context, bundle *domain.Bundle) error {
	return r.db.WithContext(ctx).Save(bundle).Error
}

func (r *BundleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Bundle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BundleRepository) List(ctx context.Context) ([]domain.Bundle, error) {
	var bundles []domain.Bundle
	err := r.db.WithContext(ctx).
		Preload("Items.ServiceItem").
		Order("name ASC").
		Find(&bundles).Error
	return bundles, err
}

// ReplaceItems swaps the full item set of a bundle in one transaction
func (r *BundleRepository) ReplaceItems(ctx context.Context, bundleID uuid.UUID, items []domain.BundleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", bundleID).Delete(&domain.BundleItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear bundle items: %w", err)
		}
		for i := range items {
			items[i].BundleID = bundleID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create bundle item: %w", err)
			}
		}
		return nil
	})
}
