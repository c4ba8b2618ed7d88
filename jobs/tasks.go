package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/drapebook/drapebook/internal/notify"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSendMessage delivers one outbound customer message.
	TaskSendMessage = "message:send"
	// TaskDailyDigest sends the owner a summary of today's dashboard.
	TaskDailyDigest = "digest:daily"
	// TaskReportsWarmup rebuilds the cached report views.
	TaskReportsWarmup = "reports:warmup"
)

// DailyDigestPayload selects the digest channel. Empty means WhatsApp.
type DailyDigestPayload struct {
	Channel notify.Channel `json:"channel,omitempty"`
}

// NewSendMessageTask constructs a message delivery task.
func NewSendMessageTask(msg notify.Message) (*asynq.Task, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendMessage, data, asynq.MaxRetry(3)), nil
}

// NewDailyDigestTask constructs the digest task.
func NewDailyDigestTask(payload DailyDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailyDigest, data), nil
}

// NewReportsWarmupTask constructs the warmup task.
func NewReportsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskReportsWarmup, nil)
}
