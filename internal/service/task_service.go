package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/mapper"
	"github.com/framelight/studio-api/internal/repository"
)

// TaskService manages planner tasks. Tasks live in day buckets keyed by
// assigned date, with a nil date meaning the backlog. Manual ordering
// within a bucket is carried by the position column.
type TaskService struct {
	taskRepo *repository.TaskRepository
	logger   *zap.Logger
}

func NewTaskService(taskRepo *repository.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{taskRepo: taskRepo, logger: logger}
}

// Create inserts a new task at the end of its bucket
func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.TaskDTO, error) {
	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
	}

	var assignedDate *time.Time
	if req.AssignedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.AssignedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid assignedDate", ErrInvalidInput)
		}
		assignedDate = &parsed
	}

	maxPosition, err := s.taskRepo.MaxPositionInBucket(ctx, assignedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	task := &domain.Task{
		Content:      req.Content,
		Description:  req.Description,
		Category:     req.Category,
		Priority:     priority,
		AssignedDate: assignedDate,
		Position:     maxPosition + 1,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

// Update applies a partial update. Moving a task to another bucket via
// this path appends it to the target bucket's end.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateTaskRequest) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if req.Content != nil {
		task.Content = *req.Content
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	if req.AssignedDate != nil {
		var target *time.Time
		if *req.AssignedDate != "" {
			parsed, err := time.Parse("2006-01-02", *req.AssignedDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid assignedDate", ErrInvalidInput)
			}
			target = &parsed
		}
		if bucketChanged(task.AssignedDate, target) {
			maxPosition, err := s.taskRepo.MaxPositionInBucket(ctx, target)
			if err != nil {
				return nil, fmt.Errorf("failed to get max position: %w", err)
			}
			task.Position = maxPosition + 1
		}
		task.AssignedDate = target
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListRange returns tasks for the window plus the backlog
func (s *TaskService) ListRange(ctx context.Context, from, to time.Time) ([]domain.TaskDTO, error) {
	tasks, err := s.taskRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	dtos := make([]domain.TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = mapper.ToTaskDTO(&task)
	}
	return dtos, nil
}

// Reorder applies a drag and drop result in one transaction: every
// listed task gets its new position and bucket, and either all moves
// land or none do.
func (s *TaskService) Reorder(ctx context.Context, req *domain.ReorderTasksRequest) error {
	moves := make([]domain.TaskMove, len(req.Items))
	for i, item := range req.Items {
		move := domain.TaskMove{ID: item.ID, Position: item.Position}
		if item.AssignedDate != nil && *item.AssignedDate != "" {
			parsed, err := time.Parse("2006-01-02", *item.AssignedDate)
			if err != nil {
				return fmt.Errorf("%w: invalid assignedDate", ErrInvalidInput)
			}
			move.AssignedDate = &parsed
		}
		moves[i] = move
	}

	if err := s.taskRepo.Reorder(ctx, moves); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	s.logger.Debug("tasks reordered", zap.Int("count", len(moves)))
	return nil
}

func bucketChanged(current, target *time.Time) bool {
	if current == nil && target == nil {
		return false
	}
	if current == nil || target == nil {
		return true
	}
	return !current.Equal(*target)
}
