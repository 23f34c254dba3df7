package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
)

// TaskRepository handles database operations for planner tasks
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRange returns tasks assigned within [from, to] plus the backlog
// (nil assigned date). Within each bucket the order is position ascending
// with newest created first as the tie-break.
func (r *TaskRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("assigned_date IS NULL OR (assigned_date >= ? AND assigned_date <= ?)", from, to).
		Order("assigned_date ASC NULLS FIRST, position ASC, created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListBacklog(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("assigned_date IS NULL").
		Order("position ASC, created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// MaxPositionInBucket returns the highest position in a day bucket, or in
// the backlog when date is nil. -1 means the bucket is empty, so the next
// insert lands at position 0.
func (r *TaskRepository) MaxPositionInBucket(ctx context.Context, date *time.Time) (int, error) {
	var maxPosition *int
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Select("MAX(position)")
	if date == nil {
		query = query.Where("assigned_date IS NULL")
	} else {
		query = query.Where("assigned_date = ?", *date)
	}
	if err := query.Scan(&maxPosition).Error; err != nil {
		return 0, err
	}
	if maxPosition == nil {
		return -1, nil
	}
	return *maxPosition, nil
}

// Reorder applies a batch of position and bucket updates in one
// transaction. All rows move or none do.
func (r *TaskRepository) Reorder(ctx context.Context, moves []domain.TaskMove) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, move := range moves {
			result := tx.Model(&domain.Task{}).
				Where("id = ?", move.ID).
				Updates(map[string]interface{}{
					"position":      move.Position,
					"assigned_date": move.AssignedDate,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to reorder task %s: %w", move.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("task %s: %w", move.ID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

func (r *TaskRepository) CountOpen(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("is_completed = false").Count(&count).Error
	return int(count), err
}

// CountOverdue counts open tasks dated strictly before the given day
func (r *TaskRepository) CountOverdue(ctx context.Context, before time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("is_completed = false AND assigned_date IS NOT NULL AND assigned_date < ?", before).
		Count(&count).Error
	return int(count), err
}
