package tasks

import (
	"encoding/json"
	"time"

	"pathlab/models"

	"github.com/hibiken/asynq"
)

const TypeNotifyPatient = "notify:patient"

// NewNotificationTask wraps a patient email for the worker queue.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotifyPatient, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	}
	return task, opts, nil
}

// ParseNotificationTask decodes a queued payload.
func ParseNotificationTask(task *asynq.Task) (models.NotificationPayload, error) {
	var p models.NotificationPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
