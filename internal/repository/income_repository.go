package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

type IncomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(ctx context.Context, income *domain.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *IncomeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Income, error) {
	var income domain.Income
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&income).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (r *IncomeRepository) Update(ctx context.Context, income *domain.Income) error {
	return r.db.WithContext(ctx).Save(income).Error
}

func (r *IncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Income{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *IncomeRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.Income, error) {
	var incomes []domain.Income
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC, created_at DESC").
		Find(&incomes).Error
	return incomes, err
}

func (r *IncomeRepository) SumRange(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.Income{}).
		Where("date >= ? AND date <= ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// SumByCategory groups income totals by category for a period
func (r *IncomeRepository) SumByCategory(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	var rows []struct {
		Category string
		Total    float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Income{}).
		Where("date >= ? AND date <= ?", from, to).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

// GetByProposalID finds the income entry written when a proposal was paid
func (r *IncomeRepository) GetByProposalID(ctx context.Context, proposalID uuid.UUID) (*domain.Income, error) {
	var income domain.Income
	err := r.db.WithContext(ctx).Where("proposal_id = ?", proposalID).First(&income).Error
	if err != nil {
		return nil, err
	}
	return &income, nil
}
