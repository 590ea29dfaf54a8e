package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-tracker.com/task-tracker/internal/engine"
	errs "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    int
	DueDate     *time.Time
	Tags        []string
}

func (r *TaskRepository) Create(ctx context.Context, p CreateTaskParams) (*model.Task, error) {
	now := time.Now().UTC()

	priority := p.Priority
	if priority == 0 {
		priority = constants.PriorityMin
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		Status:      constants.StatusTodo,
		Priority:    priority,
		DueDate:     p.DueDate,
		Tags:        model.NormalizeTags(p.Tags),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

// Snapshot loads every task row, archived included, as input for the
// automation engine.
func (r *TaskRepository) Snapshot(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Find(&tasks).Error
	return tasks, err
}

// Update writes all mutable fields, guarded by the row version.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":        task.Title,
			"description":  task.Description,
			"status":       task.Status,
			"priority":     task.Priority,
			"due_date":     task.DueDate,
			"tags":         task.Tags,
			"archived":     task.Archived,
			"completed_at": task.CompletedAt,
			"updated_at":   time.Now().UTC(),
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return errs.ErrOptimisticLock
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrTaskNotFound
	}
	return nil
}

// ApplyEscalations persists suggested priority raises. Each update
// re-verifies that the stored row is still open and below the suggested
// tier, so a concurrent edit or manual bump is never overwritten downward.
func (r *TaskRepository) ApplyEscalations(ctx context.Context, changes []engine.Escalation) (int, error) {
	applied := 0

	for _, c := range changes {
		res := r.db.WithContext(ctx).Model(&model.Task{}).
			Where("id = ? AND priority < ? AND status <> ? AND archived = ?",
				c.TaskID, c.Priority, constants.StatusDone, false).
			Updates(map[string]interface{}{
				"priority":   c.Priority,
				"updated_at": time.Now().UTC(),
				"version":    gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return applied, res.Error
		}
		applied += int(res.RowsAffected)
	}

	return applied, nil
}

// ApplyArchivals flags the given tasks archived, re-verifying the archival
// precondition against the stored rows.
func (r *TaskRepository) ApplyArchivals(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ? AND status = ? AND archived = ? AND completed_at IS NOT NULL",
			ids, constants.StatusDone, false).
		Updates(map[string]interface{}{
			"archived":   true,
			"updated_at": time.Now().UTC(),
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	return int(res.RowsAffected), nil
}
