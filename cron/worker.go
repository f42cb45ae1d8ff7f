package cron

import (
	"context"
	"errors"
	"fmt"

	"pathlab/config"
	"pathlab/services/notification"
	"pathlab/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the notification queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewNotificationWorker builds the asynq server and its handlers.
func NewNotificationWorker(mailer notification.Mailer, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifyPatient, HandleNotificationTask(mailer, logger))
	return srv, mux
}

// InitNotificationWorker starts the worker in the background. Call
// Shutdown on the returned server when the process stops.
func InitNotificationWorker(mailer notification.Mailer, logger *zap.Logger) (*asynq.Server, error) {
	srv, mux := NewNotificationWorker(mailer, logger)
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start notification worker: %w", err)
	}
	logger.Info("Notification worker started")
	return srv, nil
}

// HandleNotificationTask sends one queued patient email.
func HandleNotificationTask(mailer notification.Mailer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseNotificationTask(task)
		if err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.Email == "" {
			return nil
		}
		if err := mailer.Send(ctx, p); err != nil {
			logger.Error("Failed to send patient email",
				zap.String("kind", p.Kind), zap.String("appointment", p.AppointmentID), zap.Error(err))
			return err
		}
		logger.Info("Patient email sent", zap.String("kind", p.Kind), zap.String("appointment", p.AppointmentID))
		return nil
	}
}

// IsSkipRetry reports whether err tells asynq not to retry.
func IsSkipRetry(err error) bool {
	return errors.Is(err, asynq.SkipRetry)
}
