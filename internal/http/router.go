package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// Last-viewed tracking needs the session middleware. Without it the
	// controllers skip the session entirely.
	var sessions LastViewedStore
	if cfg.SessionLoadMW != nil {
		router.Use(cfg.SessionLoadMW.LoadSave())
		sessions = cfg.Sessions
	}

	router.SetHTMLTemplate(loadTemplates())

	health := NewHealthController(cfg.Database, cfg.Quotes, cfg.Version)
	quotesController := NewQuotesController(cfg.Quotes, sessions)
	transfer := NewTransferController(cfg.Quotes, cfg.Activity, cfg.ImportStrict, cfg.MaxImportBytes)
	if cfg.ImportArchive != nil {
		transfer.SetArchive(cfg.ImportArchive)
	}
	syncController := NewSyncController(cfg.Sync, cfg.Scheduler, cfg.SyncSettings, cfg.Notifier, cfg.TaskQueue)
	ui := NewUIController(cfg.Quotes, sessions, cfg.Notifier, transfer)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// UI routes, CSRF protected when a secret is configured
	pages := router.Group("/")
	if len(cfg.CSRFSecret) > 0 {
		pages.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	pages.GET("/", ui.IndexPage)
	pages.POST("/ui/quotes", ui.AddQuote)
	pages.POST("/ui/filter", ui.SetFilter)
	pages.POST("/ui/import", ui.Import)

	api := router.Group("/api")

	// Quotes
	api.GET("/quotes", quotesController.ListQuotes)
	api.POST("/quotes", quotesController.CreateQuote)
	api.GET("/quotes/random", quotesController.RandomQuote)
	api.GET("/quotes/last-viewed", quotesController.LastViewed)
	api.GET("/categories", quotesController.Categories)
	api.GET("/filter", quotesController.GetFilter)
	api.PUT("/filter", quotesController.SetFilter)

	// Import / export
	api.POST("/import", transfer.Import)
	api.GET("/export", transfer.Export)

	// Sync
	api.POST("/sync", syncController.TriggerSync)
	api.GET("/sync/status", syncController.Status)
	api.POST("/sync/settings", syncController.UpdateSettings)
	api.GET("/sync/tasks/:id", syncController.TaskStatus)
	api.GET("/notification", syncController.Notification)

	// Activity history
	if cfg.Activity != nil {
		activity := NewActivityController(cfg.Activity)
		api.GET("/activity", activity.List)
	}

	router.NoRoute(func(c *gin.Context) {
		if wantsJSON(c) {
			respondNotFound(c, "not found")
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})

	return router
}
