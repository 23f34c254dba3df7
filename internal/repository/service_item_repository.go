package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

type ServiceItemRepository struct {
	db *gorm.DB
}

func NewServiceItemRepository(db *gorm.DB) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

func (r *ServiceItemRepository) Create(ctx context.Context, item *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ServiceItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceItem, error) {
	var item domain.ServiceItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ServiceItemRepository) Update(ctx context.Context, item *domain.ServiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ServiceItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.ServiceItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ServiceItemRepository) List(ctx context.Context, category string, activeOnly bool) ([]domain.ServiceItem, error) {
	var items []domain.ServiceItem

	query := r.db.WithContext(ctx).Model(&domain.ServiceItem{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if activeOnly {
		query = query.Where("is_active = true")
	}

	err := query.Order("category ASC, name ASC").Find(&items).Error
	return items, err
}
