package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	errs "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/http/validators"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
	"task-tracker.com/task-tracker/pkg/constants"
)

type Handler struct {
	taskService       *services.TaskService
	automationService *services.AutomationService
	summaryService    *services.SummaryService
}

func NewHandler(
	taskService *services.TaskService,
	automationService *services.AutomationService,
	summaryService *services.SummaryService,
) *Handler {
	return &Handler{
		taskService:       taskService,
		automationService: automationService,
		summaryService:    summaryService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	params := repository.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		params.Priority = *req.Priority
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	params := services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, params)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *Handler) SearchTasks(c echo.Context) error {
	query, err := parseSearchQuery(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.SearchTasks(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) RunEscalation(c echo.Context) error {
	updated, diagnostics, err := h.automationService.Escalate(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"updated":     updated,
		"diagnostics": diagnosticMessages(diagnostics),
	})
}

func (h *Handler) RunArchival(c echo.Context) error {
	olderThan := time.Duration(0)
	if raw := c.QueryParam("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		olderThan = time.Duration(days) * 24 * time.Hour
	}

	archived, diagnostics, err := h.automationService.Archive(c.Request().Context(), time.Now().UTC(), olderThan)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"archived":    archived,
		"diagnostics": diagnosticMessages(diagnostics),
	})
}

func (h *Handler) GetBrief(c echo.Context) error {
	body, err := h.summaryService.BriefPayload(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSONBlob(http.StatusOK, body)
}

func (h *Handler) GetReport(c echo.Context) error {
	body, err := h.summaryService.ReportPayload(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSONBlob(http.StatusOK, body)
}

func diagnosticMessages(diagnostics []error) []string {
	messages := make([]string, 0, len(diagnostics))
	for _, diag := range diagnostics {
		messages = append(messages, diag.Error())
	}
	return messages
}

func httpError(err error) error {
	var ex *errs.Exception
	if errors.As(err, &ex) {
		return echo.NewHTTPError(ex.StatusCode, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
