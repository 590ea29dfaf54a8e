package cache

import (
	"context"
	"time"
)

// Cache keys shared by the summary producers and the write paths that
// invalidate them.
const (
	BriefKey  = "summary:brief"
	ReportKey = "summary:report"
)

// SummaryCache stores rendered summary payloads so repeated report and
// brief requests do not rescan the task table.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Invalidate(ctx context.Context, keys ...string) error
}
