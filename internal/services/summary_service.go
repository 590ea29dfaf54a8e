package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"task-tracker.com/task-tracker/internal/cache"
	"task-tracker.com/task-tracker/internal/engine"
	"task-tracker.com/task-tracker/internal/render"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

// SummaryService produces the daily brief and the markdown report as
// ready-to-serve JSON payloads, cached with a short TTL.
type SummaryService struct {
	repo    *repository.TaskRepository
	summary cache.SummaryCache
	topN    int
	ttl     time.Duration
}

func NewSummaryService(
	repo *repository.TaskRepository,
	summary cache.SummaryCache,
	topN int,
	ttl time.Duration,
) *SummaryService {
	if topN <= 0 {
		topN = engine.DefaultBriefSize
	}
	return &SummaryService{
		repo:    repo,
		summary: summary,
		topN:    topN,
		ttl:     ttl,
	}
}

type briefPayload struct {
	Brief string            `json:"brief"`
	Data  engine.DailyBrief `json:"data"`
}

type reportPayload struct {
	Report string        `json:"report"`
	Data   engine.Report `json:"data"`
}

// BriefPayload returns the daily brief JSON body, serving from cache when a
// fresh copy exists.
func (s *SummaryService) BriefPayload(ctx context.Context) ([]byte, error) {
	if body, ok := s.cached(ctx, cache.BriefKey); ok {
		return body, nil
	}

	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	brief := engine.BuildDailyBrief(tasks, time.Now().UTC(), s.topN)
	body, err := json.Marshal(briefPayload{
		Brief: render.BriefText(brief),
		Data:  brief,
	})
	if err != nil {
		return nil, err
	}

	s.store(ctx, cache.BriefKey, body)
	return body, nil
}

// ReportPayload returns the markdown report JSON body, serving from cache
// when a fresh copy exists.
func (s *SummaryService) ReportPayload(ctx context.Context) ([]byte, error) {
	if body, ok := s.cached(ctx, cache.ReportKey); ok {
		return body, nil
	}

	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := engine.BuildReport(tasks, time.Now().UTC())
	body, err := json.Marshal(reportPayload{
		Report: render.MarkdownReport(report),
		Data:   report,
	})
	if err != nil {
		return nil, err
	}

	s.store(ctx, cache.ReportKey, body)
	return body, nil
}

func (s *SummaryService) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.summary == nil || s.ttl <= 0 {
		return nil, false
	}

	value, ok, err := s.summary.Get(ctx, key)
	if err != nil {
		log.Printf("summary cache read failed: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return []byte(value), true
}

func (s *SummaryService) store(ctx context.Context, key string, body []byte) {
	if s.summary == nil || s.ttl <= 0 {
		return
	}
	if err := s.summary.Set(ctx, key, string(body), s.ttl); err != nil {
		log.Printf("summary cache write failed: %v", err)
	}
}
