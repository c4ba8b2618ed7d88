package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/drapebook/drapebook/internal/jobs"
)

// Warmer rebuilds cached report views.
type Warmer interface {
	Warm(ctx context.Context) error
}

// ReportsWarmupJob pre-populates the report cache.
type ReportsWarmupJob struct {
	Reports Warmer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewReportsWarmupJob wires the warmup handler.
func NewReportsWarmupJob(reportsSvc Warmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsWarmupJob {
	return &ReportsWarmupJob{Reports: reportsSvc, Logger: logger, Metrics: metrics, Timeout: 30 * time.Second}
}

// Handle processes TaskReportsWarmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}
	tracker := jobMetrics(j.Metrics).Track(TaskReportsWarmup)
	logger := jobLogger(j.Logger, TaskReportsWarmup)

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	start := time.Now()
	if err := j.Reports.Warm(ctx); err != nil {
		logger.Error("warm reports", slog.Any("error", err))
		return tracker.End(err)
	}
	logger.Info("reports warmed", slog.Duration("duration", time.Since(start)))
	return tracker.End(nil)
}
