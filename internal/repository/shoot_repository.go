package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

// ShootRepository handles database operations for shoots and their scenes
type ShootRepository struct {
	db *gorm.DB
}

func NewShootRepository(db *gorm.DB) *ShootRepository {
	return &ShootRepository{db: db}
}

func (r *ShootRepository) Create(ctx context.Context, shoot *domain.Shoot) error {
	return r.db.WithContext(ctx).Create(shoot).Error
}

func (r *ShootRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shoot, error) {
	var shoot domain.Shoot
	err := r.db.WithContext(ctx).
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("scene_number ASC")
		}).
		Preload("Customer").
		Where("id = ?", id).
		First(&shoot).Error
	if err != nil {
		return nil, err
	}
	return &shoot, nil
}

func (r *ShootRepository) Update(ctx context.Context, shoot *domain.Shoot) error {
	return r.db.WithContext(ctx).Save(shoot).Error
}

func (r *ShootRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Shoot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShootRepository) List(ctx context.Context, page, pageSize int, status string, customerID *uuid.UUID) ([]domain.Shoot, int64, error) {
	var shoots []domain.Shoot
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Shoot{})

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
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("scene_number ASC")
		}).
		Offset(offset).Limit(pageSize).
		Order("shoot_date ASC NULLS LAST, created_at DESC").
		Find(&shoots).Error

	return shoots, total, err
}

func (r *ShootRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Shoot, error) {
	var shoots []domain.Shoot
	err := r.db.WithContext(ctx).
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("scene_number ASC")
		}).
		Where("customer_id = ?", customerID).
		Order("shoot_date DESC NULLS LAST, created_at DESC").
		Find(&shoots).Error
	return shoots, err
}

// ListUpcoming returns shoots dated from today onward, soonest first
func (r *ShootRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Shoot, error) {
	var shoots []domain.Shoot
	err := r.db.WithContext(ctx).
		Where("shoot_date >= ? AND status <> ?", from, domain.ShootStatusCompleted).
		Order("shoot_date ASC").
		Limit(limit).
		Find(&shoots).Error
	return shoots, err
}

func (r *ShootRepository) CreateScene(ctx context.Context, scene *domain.Scene) error {
	return r.db.WithContext(ctx).Create(scene).Error
}

func (r *ShootRepository) GetSceneByID(ctx context.Context, id uuid.UUID) (*domain.Scene, error) {
	var scene domain.Scene
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&scene).Error
	if err != nil {
		return nil, err
	}
	return &scene, nil
}

func (r *ShootRepository) UpdateScene(ctx context.Context, scene *domain.Scene) error {
	return r.db.WithContext(ctx).Save(scene).Error
}

func (r *ShootRepository) DeleteScene(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Scene{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MaxSceneNumber returns the highest scene number within a shoot, 0 when
// the shoot has no scenes.
func (r *ShootRepository) MaxSceneNumber(ctx context.Context, shootID uuid.UUID) (int, error) {
	var maxNumber *int
	err := r.db.WithContext(ctx).
		Model(&domain.Scene{}).
		Where("shoot_id = ?", shootID).
		Select("MAX(scene_number)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	if maxNumber == nil {
		return 0, nil
	}
	return *maxNumber, nil
}
