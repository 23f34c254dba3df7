package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/internal/service"
	"github.com/framelight/studio-api/tests/testutil"
)

func setupTaskService(t *testing.T) *service.TaskService {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestData(t, db) })
	return service.NewTaskService(repository.NewTaskRepository(db), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	t.Run("first task in a bucket starts at position zero", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateTaskRequest{
			Content:      "Book drone operator",
			AssignedDate: "2026-09-15",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, dto.Position)
		assert.Equal(t, domain.TaskPriorityMedium, dto.Priority)
		require.NotNil(t, dto.AssignedDate)
		assert.Equal(t, "2026-09-15", *dto.AssignedDate)
	})

	t.Run("next task appends to the same bucket", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateTaskRequest{
			Content:      "Charge batteries",
			AssignedDate: "2026-09-15",
			Priority:     "high",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, dto.Position)
		assert.Equal(t, domain.TaskPriorityHigh, dto.Priority)
	})

	t.Run("backlog has its own position sequence", func(t *testing.T) {
		dto, err := svc.Create(ctx, &domain.CreateTaskRequest{
			Content: "Research new gimbal",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, dto.Position)
		assert.Nil(t, dto.AssignedDate)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.CreateTaskRequest{
			Content:      "Bad date",
			AssignedDate: "15.09.2026",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestTaskService_Update(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	monday, err := svc.Create(ctx, &domain.CreateTaskRequest{
		Content: "Monday task", AssignedDate: "2026-09-14",
	})
	require.NoError(t, err)

	// Tuesday already holds two tasks
	_, err = svc.Create(ctx, &domain.CreateTaskRequest{Content: "Tuesday a", AssignedDate: "2026-09-15"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateTaskRequest{Content: "Tuesday b", AssignedDate: "2026-09-15"})
	require.NoError(t, err)

	t.Run("bucket move appends to the target end", func(t *testing.T) {
		updated, err := svc.Update(ctx, monday.ID, &domain.UpdateTaskRequest{
			AssignedDate: strPtr("2026-09-15"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.AssignedDate)
		assert.Equal(t, "2026-09-15", *updated.AssignedDate)
		assert.Equal(t, 2, updated.Position)
	})

	t.Run("same bucket keeps the position", func(t *testing.T) {
		updated, err := svc.Update(ctx, monday.ID, &domain.UpdateTaskRequest{
			Content:      strPtr("Renamed task"),
			AssignedDate: strPtr("2026-09-15"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed task", updated.Content)
		assert.Equal(t, 2, updated.Position)
	})

	t.Run("empty date moves to backlog", func(t *testing.T) {
		updated, err := svc.Update(ctx, monday.ID, &domain.UpdateTaskRequest{
			AssignedDate: strPtr(""),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.AssignedDate)
		assert.Equal(t, 0, updated.Position)
	})

	t.Run("completion toggle", func(t *testing.T) {
		done := true
		updated, err := svc.Update(ctx, monday.ID, &domain.UpdateTaskRequest{
			IsCompleted: &done,
		})
		require.NoError(t, err)
		assert.True(t, updated.IsCompleted)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), &domain.UpdateTaskRequest{})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestTaskService_Reorder(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &domain.CreateTaskRequest{Content: "a", AssignedDate: "2026-09-21"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, &domain.CreateTaskRequest{Content: "b", AssignedDate: "2026-09-21"})
	require.NoError(t, err)

	t.Run("swaps positions and reassigns buckets", func(t *testing.T) {
		err := svc.Reorder(ctx, &domain.ReorderTasksRequest{
			Items: []domain.ReorderTaskItem{
				{ID: a.ID, Position: 1, AssignedDate: strPtr("2026-09-21")},
				{ID: b.ID, Position: 0, AssignedDate: nil},
			},
		})
		require.NoError(t, err)

		movedA, err := svc.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, movedA.Position)

		movedB, err := svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, movedB.AssignedDate)
		assert.Equal(t, 0, movedB.Position)
	})

	t.Run("invalid date fails before any write", func(t *testing.T) {
		err := svc.Reorder(ctx, &domain.ReorderTasksRequest{
			Items: []domain.ReorderTaskItem{
				{ID: a.ID, Position: 0, AssignedDate: strPtr("tomorrow")},
			},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown task surfaces not found", func(t *testing.T) {
		err := svc.Reorder(ctx, &domain.ReorderTasksRequest{
			Items: []domain.ReorderTaskItem{
				{ID: uuid.New(), Position: 0},
			},
		})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("range listing reflects the final order", func(t *testing.T) {
		from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
		tasks, err := svc.ListRange(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		// Backlog first, then the dated bucket
		assert.Equal(t, "b", tasks[0].Content)
		assert.Equal(t, "a", tasks[1].Content)
	})
}
