package engine

import (
	"time"

	"task-tracker.com/task-tracker/pkg/constants"
	model "task-tracker.com/task-tracker/pkg/models"
)

// ReportGroupOrder is the order status groups appear in a report, most
// actionable first.
var ReportGroupOrder = []constants.TaskStatus{
	constants.StatusInProgress,
	constants.StatusTodo,
	constants.StatusDone,
}

type StatusGroup struct {
	Status constants.TaskStatus `json:"status"`
	Tasks  []model.Task         `json:"tasks"`
}

// Report is a full listing of active tasks grouped by status, each group
// urgency-ordered.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Total       int           `json:"total"`
	Groups      []StatusGroup `json:"groups"`
}

// BuildReport groups the non-archived tasks by status. Empty groups are
// kept so the report shape is stable.
func BuildReport(tasks []model.Task, now time.Time) Report {
	active := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Archived {
			continue
		}
		active = append(active, t)
	}
	SortByUrgency(active)

	byStatus := make(map[constants.TaskStatus][]model.Task, len(ReportGroupOrder))
	for _, t := range active {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	report := Report{
		GeneratedAt: now,
		Total:       len(active),
	}
	for _, status := range ReportGroupOrder {
		report.Groups = append(report.Groups, StatusGroup{
			Status: status,
			Tasks:  byStatus[status],
		})
	}

	return report
}
