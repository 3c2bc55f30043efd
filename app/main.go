package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/threadletter/threadletter/app/api"
	"github.com/threadletter/threadletter/app/bookmarks"
	"github.com/threadletter/threadletter/app/cfg"
	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/llm"
	"github.com/threadletter/threadletter/app/mailer"
	"github.com/threadletter/threadletter/app/newsletter"
	"github.com/threadletter/threadletter/app/scraper"
	"github.com/threadletter/threadletter/app/tasks"
	"github.com/threadletter/threadletter/app/websearch"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Threadletter server", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	profileRepo := database.NewProfileRepository(db)
	newsletterRepo := database.NewNewsletterRepository(db)
	jobRepo := database.NewJobRepository(db)

	templateCache := newsletter.NewTemplateCache(appCfg.TemplatesDir)
	if err := templateCache.Run(); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}
	slog.Info("Templates loaded", "count", templateCache.GetTemplateCount())

	httpClient := &http.Client{Timeout: 60 * time.Second}

	bookmarkClient := bookmarks.NewClient(appCfg.BookmarkAPIURL, httpClient, appCfg.UserAgent)
	scraperClient := scraper.NewClient(appCfg.ScraperAPIURL, appCfg.ScraperAPIKey, httpClient, appCfg.UserAgent)
	searchClient := websearch.NewClient(appCfg.SearchAPIURL, appCfg.SearchAPIKey, httpClient, appCfg.UserAgent)

	completer, err := llm.NewClient(llm.Config{
		BaseURL: appCfg.LLMAPIURL,
		APIKey:  appCfg.LLMAPIKey,
		Model:   appCfg.LLMModel,
	})
	if err != nil {
		slog.Error("Failed to create completion client", "error", err)
		os.Exit(1)
	}

	sender := mailer.NewMailer(appCfg.EmailAPIKey, appCfg.SenderAddress)

	enricher := newsletter.NewEnricher(completer, searchClient, newsletter.NewExtractor(), httpClient, appCfg.UserAgent)
	renderer := newsletter.NewRenderer()

	pipeline := newsletter.NewPipeline(profileRepo, newsletterRepo,
		bookmarkClient, scraperClient, completer, enricher, renderer, sender)

	scheduler := tasks.NewScheduler(jobRepo)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)

	handler := api.NewHandler(profileRepo, newsletterRepo, jobRepo, templateCache, pipeline, scheduler)
	server := api.NewServer(handler, profileRepo)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
