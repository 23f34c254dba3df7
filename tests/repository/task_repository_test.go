package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/tests/testutil"
)

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db := testutil.SetupCleanTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db
}

func createTask(t *testing.T, repo *repository.TaskRepository, content string, date *time.Time, position int) *domain.Task {
	task := &domain.Task{
		Content:      content,
		Priority:     domain.TaskPriorityMedium,
		AssignedDate: date,
		Position:     position,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestTaskRepository_MaxPositionInBucket(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("empty bucket returns -1", func(t *testing.T) {
		max, err := repo.MaxPositionInBucket(ctx, &day)
		assert.NoError(t, err)
		assert.Equal(t, -1, max)
	})

	t.Run("empty backlog returns -1", func(t *testing.T) {
		max, err := repo.MaxPositionInBucket(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, -1, max)
	})

	t.Run("returns highest position in day bucket", func(t *testing.T) {
		createTask(t, repo, "first", &day, 0)
		createTask(t, repo, "second", &day, 1)
		createTask(t, repo, "third", &day, 2)

		max, err := repo.MaxPositionInBucket(ctx, &day)
		assert.NoError(t, err)
		assert.Equal(t, 2, max)
	})

	t.Run("backlog bucket is independent of day buckets", func(t *testing.T) {
		createTask(t, repo, "backlog item", nil, 5)

		max, err := repo.MaxPositionInBucket(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, 5, max)
	})
}

func TestTaskRepository_ListRange(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	inRange := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	createTask(t, repo, "scheduled b", &inRange, 1)
	createTask(t, repo, "scheduled a", &inRange, 0)
	createTask(t, repo, "next month", &outOfRange, 0)
	createTask(t, repo, "backlog", nil, 0)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	tasks, err := repo.ListRange(ctx, from, to)
	require.NoError(t, err)

	// Backlog is always included, tasks outside the range are not
	require.Len(t, tasks, 3)
	contents := []string{tasks[0].Content, tasks[1].Content, tasks[2].Content}
	assert.NotContains(t, contents, "next month")
	assert.Contains(t, contents, "backlog")

	// Within the day bucket, position ascending wins
	var day []domain.Task
	for _, task := range tasks {
		if task.AssignedDate != nil {
			day = append(day, task)
		}
	}
	require.Len(t, day, 2)
	assert.Equal(t, "scheduled a", day[0].Content)
	assert.Equal(t, "scheduled b", day[1].Content)
}

func TestTaskRepository_Reorder(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	first := createTask(t, repo, "first", &day, 0)
	second := createTask(t, repo, "second", &day, 1)
	backlog := createTask(t, repo, "backlog", nil, 0)

	t.Run("applies position and bucket moves", func(t *testing.T) {
		err := repo.Reorder(ctx, []domain.TaskMove{
			{ID: first.ID, Position: 1, AssignedDate: &day},
			{ID: second.ID, Position: 0, AssignedDate: &day},
			{ID: backlog.ID, Position: 2, AssignedDate: &day},
		})
		require.NoError(t, err)

		moved, err := repo.GetByID(ctx, backlog.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, moved.Position)
		require.NotNil(t, moved.AssignedDate)
		assert.Equal(t, day.Format("2006-01-02"), moved.AssignedDate.Format("2006-01-02"))
	})

	t.Run("moving to backlog clears assigned date", func(t *testing.T) {
		err := repo.Reorder(ctx, []domain.TaskMove{
			{ID: first.ID, Position: 0, AssignedDate: nil},
		})
		require.NoError(t, err)

		moved, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, moved.AssignedDate)
	})

	t.Run("unknown task rolls back the whole batch", func(t *testing.T) {
		before, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)

		err = repo.Reorder(ctx, []domain.TaskMove{
			{ID: second.ID, Position: 9, AssignedDate: nil},
			{ID: uuid.New(), Position: 0, AssignedDate: nil},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		after, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Position, after.Position)
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	task := createTask(t, repo, "to delete", nil, 0)

	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_CountOverdue(t *testing.T) {
	db := setupTaskTestDB(t)
	repo := repository.NewTaskRepository(db)
	ctx := context.Background()

	yesterday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	createTask(t, repo, "overdue", &yesterday, 0)
	createTask(t, repo, "due today", &today, 0)
	createTask(t, repo, "backlog", nil, 0)

	done := &domain.Task{
		Content:      "finished",
		Priority:     domain.TaskPriorityLow,
		IsCompleted:  true,
		AssignedDate: &yesterday,
	}
	require.NoError(t, repo.Create(ctx, done))

	count, err := repo.CountOverdue(ctx, today)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
