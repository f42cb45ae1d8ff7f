package cmd

import (
	"context"
	"fmt"
	"strings"

	"pathlab/config"
	"pathlab/database"
	bookingSessionRepo "pathlab/database/repository/bookingsession"
	localRepo "pathlab/database/repository/local"
	remoteRepo "pathlab/database/repository/remote"
	"pathlab/services/booking"
	"pathlab/services/notification"
	"pathlab/utils"

	"go.uber.org/zap"
)

// openRemote connects the configured remote backend. It returns nil, nil
// when the remote settings do not look usable, which puts the store in
// fallback mode.
func openRemote(ctx context.Context, cfg config.Config, logger *zap.Logger) (remoteRepo.Repository, error) {
	if !database.RemoteConfigured(cfg) {
		logger.Warn("Remote backend not configured. Using local fallback.")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RemoteTimeout)
	defer cancel()

	switch strings.ToLower(cfg.RemoteDriver) {
	case "mongo":
		client, err := database.InitMongo(ctx, cfg.RemoteURL, cfg.RemoteKey)
		if err != nil {
			return nil, err
		}
		repo := remoteRepo.NewMongoRepo(client, cfg.RemoteDatabase)
		if err := remoteRepo.EnsureIndexes(ctx, repo); err != nil {
			logger.Warn("Failed to ensure MongoDB indexes", zap.Error(err))
		}
		return repo, nil
	default:
		pool, err := database.InitPostgres(ctx, cfg.RemoteURL, cfg.RemoteKey)
		if err != nil {
			return nil, err
		}
		if err := remoteRepo.Migrate(ctx, pool); err != nil {
			logger.Warn("Failed to apply schema", zap.Error(err))
		}
		return remoteRepo.NewPostgresRepo(pool), nil
	}
}

// openLocalKV returns the key-value store backing the appointment archive
// and the admin credential.
func openLocalKV(cfg config.Config) (localRepo.KeyValue, error) {
	if cfg.LocalStore == "redis" {
		if utils.GetCacheClient() == nil {
			return nil, fmt.Errorf("LOCAL_STORE=redis but redis is not connected")
		}
		return localRepo.NewRedisStore(utils.GetCacheClient()), nil
	}
	return localRepo.NewFileStore(cfg.LocalStorePath)
}

// openAuthKV holds admin session keys. Redis is preferred when connected so
// sessions survive restarts and are shared across instances.
func openAuthKV(local localRepo.KeyValue) localRepo.KeyValue {
	if client := utils.GetAuthCacheClient(); client != nil {
		return localRepo.NewRedisStore(client)
	}
	return local
}

func openSessionStore(cfg config.Config) (bookingSessionRepo.Store, error) {
	if cfg.BookingSessionStore == "redis" {
		if utils.GetCacheClient() == nil {
			return nil, fmt.Errorf("BOOKING_SESSION_STORE=redis but redis is not connected")
		}
		return bookingSessionRepo.NewRedisStore(utils.GetCacheClient(), cfg.BookingSessionTTL), nil
	}
	return bookingSessionRepo.NewMemoryStore(cfg.BookingSessionTTL), nil
}

func newPaymentProvider(cfg config.Config, logger *zap.Logger) (booking.PaymentProvider, error) {
	if cfg.PaymentProvider == "stripe" {
		provider, err := booking.NewStripeProvider(cfg.StripeKey, cfg.StripePaymentMethod, logger)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
	return booking.NewSimulatedProvider(cfg.PaymentDelay, logger), nil
}

func newMailer(cfg config.Config, logger *zap.Logger) notification.Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP not configured. Patient emails will only be logged.")
		return notification.NoopMailer{Logger: logger}
	}
	return notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}
