package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/config"
	"github.com/mrlokans/quotekeeper/internal/database"
	http_controllers "github.com/mrlokans/quotekeeper/internal/http"
	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/scheduler"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/sessions"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
	"github.com/mrlokans/quotekeeper/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", "err", err)
		}
	}()

	// kill -2 is SIGINT, plain kill is SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops before the server
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown", "err", err)
	}

	log.Info("Server exiting")
}

// SetupLogging applies the configured level to the default logger.
func SetupLogging(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetReportTimestamp(true)
}

// csrfSecret decodes a hex secret, falling back to the raw bytes.
func csrfSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	if decoded, err := hex.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}

func Run(cfg *config.Config, version string) {
	SetupLogging(cfg.Log.Level)
	log.Info("Starting Quote Keeper", "version", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to initialize database", "err", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", "err", err)
		}
	}()

	quoteService := services.NewQuoteService(db)
	if err := quoteService.Load(); err != nil {
		log.Fatal("Failed to load quotes", "err", err)
	}

	settings := settingsstore.New(db)
	notifier := notify.New(cfg.Notifications.ClearAfter)
	client := remote.NewClient(remote.Options{
		SourceURL:   cfg.QuoteSync.SourceURL,
		Timeout:     cfg.QuoteSync.Timeout,
		UseResponse: cfg.QuoteSync.UseResponse,
		MaxRecords:  cfg.QuoteSync.MaxRecords,
	})
	syncService := services.NewSyncService(quoteService, client, notifier, settings)

	var activityLog *audit.Service
	if cfg.Activity.Enabled {
		activityLog = audit.NewService(db.Activity())
		syncService.SetActivity(activityLog)
		if cfg.Activity.Retention > 0 {
			deleted, err := activityLog.DeleteOldEvents(cfg.Activity.Retention)
			if err != nil {
				log.Warn("Failed to prune activity history", "err", err)
			} else if deleted > 0 {
				log.Info("Pruned activity history", "deleted", deleted)
			}
		}
	}

	// Periodic sync
	syncScheduler := scheduler.NewQuoteSyncScheduler(settings, syncService, cfg.QuoteSync.Timeout+5*time.Second)
	if err := syncScheduler.Start(context.Background()); err != nil {
		log.Error("Failed to start quote sync scheduler", "err", err)
	}

	// On-demand syncs through the task queue
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatal("Failed to initialize task queue", "err", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error("Error closing task client", "err", err)
			}
		}()

		taskClient.Register(tasks.NewSyncQuotesQueue(syncService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get SQL DB for sessions", "err", err)
	}
	sessionManager, err := sessions.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatal("Failed to initialize session manager", "err", err)
	}

	secret := csrfSecret(cfg.CSRF.Secret)
	if secret == nil {
		log.Info("CSRF protection disabled, set CSRF_SECRET to enable it")
	}

	routerCfg := http_controllers.RouterConfig{
		Quotes:         quoteService,
		Database:       db,
		Sync:           syncService,
		Scheduler:      syncScheduler,
		SyncSettings:   settings,
		Notifier:       notifier,
		Sessions:       sessionManager,
		SessionLoadMW:  sessionManager,
		SecureCookies:  cfg.Session.SecureCookies,
		CSRFSecret:     secret,
		ImportStrict:   cfg.Import.Strict,
		MaxImportBytes: http_controllers.DefaultMaxImportBytes,
		Version:        version,
	}
	// Typed nil pointers must not become non-nil interfaces
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}
	if activityLog != nil {
		routerCfg.Activity = activityLog
	}
	if cfg.Import.ArchiveDir != "" {
		routerCfg.ImportArchive = audit.NewArchive(cfg.Import.ArchiveDir)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		notifier.Clear()
		if activityLog != nil {
			activityLog.Wait()
		}
	}

	Serve(router, cfg, onShutdown)
}
