package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

type DeliverableRepository struct {
	db *gorm.DB
}

func NewDeliverableRepository(db *gorm.DB) *DeliverableRepository {
	return &DeliverableRepository{db: db}
}

func (r *DeliverableRepository) Create(ctx context.Context, deliverable *domain.Deliverable) error {
	return r.db.WithContext(ctx).Create(deliverable).Error
}

func (r *DeliverableRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error) {
	var deliverable domain.Deliverable
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&deliverable).Error
	if err != nil {
		return nil, err
	}
	return &deliverable, nil
}

func (r *DeliverableRepository) Update(ctx context.Context, deliverable *domain.Deliverable) error {
	return r.db.WithContext(ctx).Save(deliverable).Error
}

func (r *DeliverableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Deliverable{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DeliverableRepository) ListByShoot(ctx context.Context, shootID uuid.UUID) ([]domain.Deliverable, error) {
	var deliverables []domain.Deliverable
	err := r.db.WithContext(ctx).
		Where("shoot_id = ?", shootID).
		Order("created_at DESC").
		Find(&deliverables).Error
	return deliverables, err
}

// ListByShootIDs returns deliverables across a set of shoots in one query
func (r *DeliverableRepository) ListByShootIDs(ctx context.Context, shootIDs []uuid.UUID) ([]domain.Deliverable, error) {
	var deliverables []domain.Deliverable
	err := r.db.WithContext(ctx).
		Where("shoot_id IN ?", shootIDs).
		Order("created_at DESC").
		Find(&deliverables).Error
	return deliverables, err
}
