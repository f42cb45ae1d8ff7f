package notification

import (
	"context"
	"fmt"
	"time"

	"pathlab/models"
	"pathlab/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// InlineDispatcher sends each email on its own goroutine.
type InlineDispatcher struct {
	mailer Mailer
	logger *zap.Logger
	sent   func(models.NotificationPayload, error) // test hook
}

func NewInlineDispatcher(mailer Mailer, logger *zap.Logger) *InlineDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineDispatcher{mailer: mailer, logger: logger}
}

func (d *InlineDispatcher) Notify(_ context.Context, p models.NotificationPayload) error {
	if p.Email == "" {
		return nil
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		err := d.mailer.Send(ctx, p)
		if err != nil {
			d.logger.Error("Failed to send patient email",
				zap.String("kind", p.Kind), zap.String("appointment", p.AppointmentID), zap.Error(err))
		}
		if d.sent != nil {
			d.sent(p, err)
		}
	}()
	return nil
}

// QueueDispatcher enqueues emails for the asynq worker.
type QueueDispatcher struct {
	client *asynq.Client
}

func NewQueueDispatcher(client *asynq.Client) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

func (d *QueueDispatcher) Notify(ctx context.Context, p models.NotificationPayload) error {
	if p.Email == "" {
		return nil
	}
	task, opts, err := tasks.NewNotificationTask(p)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", tasks.TypeNotifyPatient, err)
	}
	return nil
}
