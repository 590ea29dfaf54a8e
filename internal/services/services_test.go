package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/engine"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// memoryCache is an in-memory SummaryCache for testing.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *memoryCache) Invalidate(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryCache) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.Task{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func statusPtr(s constants.TaskStatus) *constants.TaskStatus { return &s }

func intPtr(v int) *int { return &v }

func TestTaskService_CreateDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	service := NewTaskService(repo, newMemoryCache())

	ctx := context.Background()
	task, err := service.CreateTask(ctx, repository.CreateTaskParams{
		Title:       "Test Task",
		Description: "Test Description",
		Tags:        []string{"home", "home", " errand "},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, constants.StatusTodo, task.Status)
	assert.Equal(t, constants.PriorityMin, task.Priority)
	assert.False(t, task.Archived)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, model.Tags{"errand", "home"}, task.Tags)

	fetched, err := service.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, fetched.ID)
}

func TestTaskService_StatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	service := NewTaskService(repo, newMemoryCache())
	ctx := context.Background()

	task, err := service.CreateTask(ctx, repository.CreateTaskParams{Title: "Transition"})
	require.NoError(t, err)

	done, err := service.UpdateTask(ctx, task.ID, UpdateTaskParams{
		Status: statusPtr(constants.StatusDone),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)

	reopened, err := service.UpdateTask(ctx, task.ID, UpdateTaskParams{
		Status: statusPtr(constants.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
	assert.False(t, reopened.Archived)
}

func TestTaskService_UpdateRejectsInvalidPriority(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	service := NewTaskService(repo, newMemoryCache())
	ctx := context.Background()

	task, err := service.CreateTask(ctx, repository.CreateTaskParams{Title: "Bounded"})
	require.NoError(t, err)

	_, err = service.UpdateTask(ctx, task.ID, UpdateTaskParams{Priority: intPtr(9)})
	require.Error(t, err)

	stored, err := service.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PriorityMin, stored.Priority)
}

func TestTaskService_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	service := NewTaskService(repo, newMemoryCache())
	ctx := context.Background()

	_, err := service.CreateTask(ctx, repository.CreateTaskParams{
		Title: "Buy milk", Description: "From the store", Tags: []string{"errand"},
	})
	require.NoError(t, err)
	_, err = service.CreateTask(ctx, repository.CreateTaskParams{
		Title: "Work", Description: "On the project", Priority: 4,
	})
	require.NoError(t, err)

	found, err := service.SearchTasks(ctx, engine.Query{Text: "milk"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Buy milk", found[0].Title)

	all, err := service.SearchTasks(ctx, engine.Query{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Work", all[0].Title)

	_, err = service.SearchTasks(ctx, engine.Query{PriorityMin: intPtr(0)})
	require.Error(t, err)
}

func TestAutomationService_Escalate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	automation := NewAutomationService(repo, newMemoryCache(), engine.DefaultRetention, 0)
	ctx := context.Background()

	dueSoon := time.Now().UTC().Add(10 * time.Hour)
	urgent, err := repo.Create(ctx, repository.CreateTaskParams{Title: "Urgent", DueDate: &dueSoon, Priority: 2})
	require.NoError(t, err)

	dueLater := time.Now().UTC().Add(30 * 24 * time.Hour)
	relaxed, err := repo.Create(ctx, repository.CreateTaskParams{Title: "Relaxed", DueDate: &dueLater, Priority: 2})
	require.NoError(t, err)

	updated, diagnostics, err := automation.Escalate(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, 1, updated)

	stored, err := repo.FindByID(ctx, urgent.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Priority)

	untouched, err := repo.FindByID(ctx, relaxed.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, untouched.Priority)

	// Re-running at the same state changes nothing.
	updated, _, err = automation.Escalate(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestAutomationService_Archive(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	automation := NewAutomationService(repo, newMemoryCache(), engine.DefaultRetention, 0)
	ctx := context.Background()

	now := time.Now().UTC()

	old, err := repo.Create(ctx, repository.CreateTaskParams{Title: "Old"})
	require.NoError(t, err)
	oldCompleted := now.Add(-8 * 24 * time.Hour)
	old.Status = constants.StatusDone
	old.CompletedAt = &oldCompleted
	require.NoError(t, repo.Update(ctx, old))

	fresh, err := repo.Create(ctx, repository.CreateTaskParams{Title: "Fresh"})
	require.NoError(t, err)
	freshCompleted := now.Add(-6 * 24 * time.Hour)
	fresh.Status = constants.StatusDone
	fresh.CompletedAt = &freshCompleted
	require.NoError(t, repo.Update(ctx, fresh))

	archived, diagnostics, err := automation.Archive(ctx, now, 0)
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, 1, archived)

	stored, err := repo.FindByID(ctx, old.ID)
	require.NoError(t, err)
	assert.True(t, stored.Archived)
	assert.Equal(t, constants.StatusDone, stored.Status)

	kept, err := repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.False(t, kept.Archived)

	// Archival is idempotent.
	archived, _, err = automation.Archive(ctx, now, 0)
	require.NoError(t, err)
	assert.Zero(t, archived)
}

func TestSummaryService_CachesAndInvalidates(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	summaryCache := newMemoryCache()
	taskService := NewTaskService(repo, summaryCache)
	summaryService := NewSummaryService(repo, summaryCache, 5, time.Minute)
	ctx := context.Background()

	_, err := taskService.CreateTask(ctx, repository.CreateTaskParams{Title: "First"})
	require.NoError(t, err)

	first, err := summaryService.ReportPayload(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(first), "First")
	assert.Equal(t, 1, summaryCache.len())

	// A write through the task service drops the cached payload.
	_, err = taskService.CreateTask(ctx, repository.CreateTaskParams{Title: "Second"})
	require.NoError(t, err)
	assert.Zero(t, summaryCache.len())

	second, err := summaryService.ReportPayload(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(second), "Second")

	// With a warm cache the stored payload is served as-is.
	cached, err := summaryService.ReportPayload(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(second), string(cached))
}

func TestSummaryService_BriefPayload(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewTaskRepository(db)
	summaryService := NewSummaryService(repo, newMemoryCache(), 5, time.Minute)
	ctx := context.Background()

	overdue := time.Now().UTC().Add(-2 * time.Hour)
	_, err := repo.Create(ctx, repository.CreateTaskParams{Title: "Pay invoice", DueDate: &overdue, Priority: 5})
	require.NoError(t, err)

	body, err := summaryService.BriefPayload(ctx)
	require.NoError(t, err)

	assert.Contains(t, string(body), "Pay invoice")
	assert.Contains(t, string(body), "Overdue!")
	assert.Contains(t, string(body), `"overdue_count":1`)
}
