package services

import (
	"context"
	"log"
	"time"

	"task-tracker.com/task-tracker/internal/cache"
	"task-tracker.com/task-tracker/internal/engine"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

type TaskService struct {
	repo    *repository.TaskRepository
	summary cache.SummaryCache
}

func NewTaskService(repo *repository.TaskRepository, summary cache.SummaryCache) *TaskService {
	return &TaskService{
		repo:    repo,
		summary: summary,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, p repository.CreateTaskParams) (*model.Task, error) {
	task, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	return task, nil
}

// UpdateTaskParams carries partial edits; nil fields are left unchanged.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
	Priority    *int
	DueDate     *time.Time
	Tags        *[]string
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, p UpdateTaskParams) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil && *p.Status != task.Status {
		if *p.Status == constants.StatusDone {
			completedAt := time.Now().UTC()
			task.CompletedAt = &completedAt
		} else {
			// Reopening also lifts the archival flag, since only done
			// tasks may stay archived.
			task.CompletedAt = nil
			task.Archived = false
		}
		task.Status = *p.Status
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.Tags != nil {
		task.Tags = model.NormalizeTags(*p.Tags)
	}

	if err := engine.ValidateTask(*task); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateSummaries(ctx)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummaries(ctx)
	return nil
}

// SearchTasks evaluates a query against a full snapshot of the task set.
func (s *TaskService) SearchTasks(ctx context.Context, q engine.Query) ([]model.Task, error) {
	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Search(tasks, q)
}

func (s *TaskService) invalidateSummaries(ctx context.Context) {
	if s.summary == nil {
		return
	}
	if err := s.summary.Invalidate(ctx, cache.BriefKey, cache.ReportKey); err != nil {
		log.Printf("failed to invalidate summary cache: %v", err)
	}
}
