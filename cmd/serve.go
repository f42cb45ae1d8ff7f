package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pathlab/config"
	"pathlab/cron"
	localRepo "pathlab/database/repository/local"
	"pathlab/handlers"
	"pathlab/middleware"
	"pathlab/routes"
	"pathlab/services/admin"
	"pathlab/services/booking"
	ai "pathlab/services/intelligence"
	"pathlab/services/lab"
	"pathlab/services/notification"
	"pathlab/services/report"
	"pathlab/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	var (
		shutdownTimeout time.Duration
		withWorker      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(shutdownTimeout, withWorker)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 5*time.Second, "Maximum time to wait for graceful shutdown")
	cmd.Flags().BoolVar(&withWorker, "with-worker", true, "Run the notification worker in-process when NOTIFY_QUEUE=asynq")

	return cmd
}

func runServer(shutdownTimeout time.Duration, withWorker bool) error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pingers := map[string]utils.Pinger{}
	if cfg.RedisEnabled() {
		if err := utils.InitRedis(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer utils.CloseRedis()
		pingers["redis"] = utils.RedisPinger{Client: utils.GetCacheClient()}
	}

	// Persistence.
	remote, err := openRemote(ctx, cfg, logger)
	if err != nil {
		logger.Error("Remote backend unreachable. Using local fallback.", zap.Error(err))
		remote = nil
	}
	if remote != nil {
		defer remote.Close()
		pingers["remote"] = remote
	}
	kv, err := openLocalKV(cfg)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	store := lab.NewStore(remote, localRepo.NewAppointmentArchive(kv), cfg.RemoteTimeout, logger)
	store.Init(ctx)

	// Notifications.
	mailer := newMailer(cfg, logger)
	var notifier booking.Notifier
	if cfg.NotifyQueue == "asynq" {
		client := asynq.NewClient(cron.RedisOpt())
		defer client.Close()
		notifier = notification.NewQueueDispatcher(client)
		if withWorker {
			worker, err := cron.InitNotificationWorker(mailer, logger)
			if err != nil {
				return err
			}
			defer worker.Shutdown()
		}
	} else {
		notifier = notification.NewInlineDispatcher(mailer, logger)
	}

	// Booking.
	sessions, err := openSessionStore(cfg)
	if err != nil {
		return err
	}
	payments, err := newPaymentProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("payment provider: %w", err)
	}
	loc := cfg.Location()
	bookingService := &booking.DefaultBookingService{
		Sessions:    sessions,
		Catalog:     store,
		Payments:    payments,
		Notifier:    notifier,
		Logger:      logger,
		Location:    loc,
		PhoneRegion: cfg.PhoneRegion,
	}

	// Admin gate.
	credential := admin.NewStoredCredential(kv, cfg.AdminDefaultPassword)
	authenticator := admin.NewAuthenticator(credential, openAuthKV(kv), cfg.JWTSecret, cfg.AdminSessionTTL, logger)

	// AI recommendations. A nil generator disables them.
	var generator ai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", zap.Error(err))
		} else {
			defer func() { _ = gemini.Close() }()
			generator = gemini
		}
	}
	var resultCache ai.ResultCache
	if client := utils.GetCacheClient(); client != nil {
		resultCache = ai.NewRedisResultCache(client)
	}
	recommender := ai.NewRecommender(generator, resultCache, cfg.AICacheTTL, logger)

	// Reports.
	renderer := report.NewRenderer(report.NewRegistry(cfg.ReportTemplates), report.DefaultLab, loc)
	var publisher report.Publisher = report.LinkPublisher{BaseURL: cfg.PublicBaseURL}
	if cfg.CloudinaryCloudName != "" {
		storageService, err := utils.Cloudinary()
		if err != nil {
			logger.Warn("Cloudinary unavailable, serving reports from the API", zap.Error(err))
		} else {
			publisher = report.CloudinaryPublisher{Storage: storageService, Folder: "reports"}
		}
	}

	utils.StartHealthMonitor(ctx, pingers, 30*time.Second)

	handlerBundle := handlers.NewHandlerBundle(handlers.Deps{
		Store:         store,
		Booking:       bookingService,
		Authenticator: authenticator,
		Passwords:     credential,
		Recommender:   recommender,
		Renderer:      renderer,
		Reports:       &report.Service{Renderer: renderer, Publisher: publisher},
		Notifier:      notifier,
		Location:      loc,
		LoginPerMin:   cfg.LoginPerMin,
	})

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}
	logger.Sugar().Info("serve: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
