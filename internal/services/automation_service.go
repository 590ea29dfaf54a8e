package services

import (
	"context"
	"log"
	"sync"
	"time"

	"task-tracker.com/task-tracker/internal/cache"
	"task-tracker.com/task-tracker/internal/engine"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

// AutomationService runs the lifecycle rules: it feeds task snapshots
// through the engine and applies the returned instructions through the
// repository. A background sweep repeats both rules on a ticker; the
// automation endpoints trigger them on demand.
type AutomationService struct {
	repo      *repository.TaskRepository
	summary   cache.SummaryCache
	retention time.Duration

	sweepStop chan struct{}
	sweepWG   sync.WaitGroup
}

func NewAutomationService(
	repo *repository.TaskRepository,
	summary cache.SummaryCache,
	retention time.Duration,
	sweepInterval time.Duration,
) *AutomationService {
	if retention <= 0 {
		retention = engine.DefaultRetention
	}

	s := &AutomationService{
		repo:      repo,
		summary:   summary,
		retention: retention,
		sweepStop: make(chan struct{}),
	}

	if sweepInterval > 0 {
		s.sweepWG.Add(1)
		go s.sweepLoop(sweepInterval)
	}

	return s
}

func (s *AutomationService) Retention() time.Duration {
	return s.retention
}

// Escalate evaluates the escalation rule at the given reference time and
// applies the suggested raises. It returns how many rows changed plus the
// per-task diagnostics for records that failed admission.
func (s *AutomationService) Escalate(ctx context.Context, now time.Time) (int, []error, error) {
	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return 0, nil, err
	}

	changes, diagnostics := engine.SuggestPriorities(tasks, now)

	applied, err := s.repo.ApplyEscalations(ctx, changes)
	if err != nil {
		return applied, diagnostics, err
	}

	if applied > 0 {
		s.invalidateSummaries(ctx)
	}
	return applied, diagnostics, nil
}

// Archive flags completed tasks older than the given retention for
// archival. olderThan <= 0 uses the configured retention.
func (s *AutomationService) Archive(ctx context.Context, now time.Time, olderThan time.Duration) (int, []error, error) {
	if olderThan <= 0 {
		olderThan = s.retention
	}

	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return 0, nil, err
	}

	ids, diagnostics := engine.Archivable(tasks, now, olderThan)

	applied, err := s.repo.ApplyArchivals(ctx, ids)
	if err != nil {
		return applied, diagnostics, err
	}

	if applied > 0 {
		s.invalidateSummaries(ctx)
	}
	return applied, diagnostics, nil
}

func (s *AutomationService) sweepLoop(interval time.Duration) {
	defer s.sweepWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.sweepStop:
			return
		}
	}
}

func (s *AutomationService) sweepOnce() {
	ctx := context.Background()
	now := time.Now().UTC()

	escalated, diagnostics, err := s.Escalate(ctx, now)
	if err != nil {
		log.Printf("sweep: escalation failed: %v", err)
	} else if escalated > 0 {
		log.Printf("sweep: escalated %d tasks", escalated)
	}
	logDiagnostics("escalation", diagnostics)

	archived, diagnostics, err := s.Archive(ctx, now, s.retention)
	if err != nil {
		log.Printf("sweep: archival failed: %v", err)
	} else if archived > 0 {
		log.Printf("sweep: archived %d tasks", archived)
	}
	logDiagnostics("archival", diagnostics)
}

func logDiagnostics(rule string, diagnostics []error) {
	for _, diag := range diagnostics {
		log.Printf("sweep: %s skipped a task: %v", rule, diag)
	}
}

func (s *AutomationService) invalidateSummaries(ctx context.Context) {
	if s.summary == nil {
		return
	}
	if err := s.summary.Invalidate(ctx, cache.BriefKey, cache.ReportKey); err != nil {
		log.Printf("failed to invalidate summary cache: %v", err)
	}
}

func (s *AutomationService) Shutdown(ctx context.Context) {
	close(s.sweepStop)

	done := make(chan struct{})
	go func() {
		s.sweepWG.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Println("automation sweep shutdown timed out")
	}
}
