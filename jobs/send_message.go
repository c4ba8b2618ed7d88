package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/drapebook/drapebook/internal/jobs"
	"github.com/drapebook/drapebook/internal/notify"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SendMessageJob delivers queued customer messages.
type SendMessageJob struct {
	Sender  notify.Sender
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewSendMessageJob wires the delivery handler.
func NewSendMessageJob(sender notify.Sender, logger *slog.Logger, metrics *jobmetrics.Metrics) *SendMessageJob {
	return &SendMessageJob{Sender: sender, Logger: logger, Metrics: metrics}
}

// Handle processes TaskSendMessage tasks.
func (j *SendMessageJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Sender == nil {
		return errors.New("send message: handler not configured")
	}
	var msg notify.Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil || msg.To == "" || msg.Body == "" {
		return asynq.SkipRetry
	}

	tracker := jobMetrics(j.Metrics).Track(TaskSendMessage)
	ref, err := j.Sender.Send(ctx, msg)
	jobMetrics(j.Metrics).AddMessages(string(msg.Channel), err == nil, 1)
	if err != nil {
		jobLogger(j.Logger, TaskSendMessage).Error("deliver message", slog.String("channel", string(msg.Channel)), slog.Any("error", err))
		return tracker.End(err)
	}
	jobLogger(j.Logger, TaskSendMessage).Info("message delivered", slog.String("channel", string(msg.Channel)), slog.String("reference", ref))
	return tracker.End(nil)
}

func jobLogger(logger *slog.Logger, job string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("job", job))
}

func jobMetrics(m *jobmetrics.Metrics) *jobmetrics.Metrics {
	if m != nil {
		return m
	}
	return defaultJobMetrics
}
