package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/feedsift/feedsift/app/api"
	"github.com/feedsift/feedsift/app/cfg"
	"github.com/feedsift/feedsift/app/collect"
	"github.com/feedsift/feedsift/app/digest"
	"github.com/feedsift/feedsift/app/history"
	"github.com/feedsift/feedsift/app/llm"
	"github.com/feedsift/feedsift/app/pipeline"
	"github.com/feedsift/feedsift/app/profile"
	"github.com/feedsift/feedsift/app/storage"
	"github.com/feedsift/feedsift/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting FeedSift", "version", appCfg.Version)

	userProfile, err := profile.Load(appCfg.ProfilePath)
	if err != nil {
		slog.Error("Failed to load profile", "path", appCfg.ProfilePath, "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(appCfg.DataDir, 0755); err != nil {
		slog.Error("Failed to create data directory", "path", appCfg.DataDir, "error", err)
		os.Exit(1)
	}

	db, err := storage.NewConnection(filepath.Join(appCfg.DataDir, "feedsift.db"))
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := storage.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	runRepo := storage.NewRunRepository(db)
	itemRepo := storage.NewItemRepository(db)
	digestStore := storage.NewDigestStore(appCfg.DataDir)

	httpClient := &http.Client{Timeout: 60 * time.Second}

	historyStore := history.NewFileStore(filepath.Join(appCfg.DataDir, "history.json"))
	deduplicator := pipeline.NewDeduplicator(historyStore, userProfile)

	classifier := pipeline.NewClassifier(userProfile, buildLLMClient(appCfg, userProfile, httpClient))

	appPipeline := &tasks.Pipeline{
		Profile:      userProfile,
		Collectors:   buildCollectors(appCfg, userProfile, httpClient),
		Cleaner:      pipeline.NewCleaner(userProfile),
		Deduplicator: deduplicator,
		Classifier:   classifier,
		Extractor:    collect.NewExtractor(appCfg.UserAgent, httpClient),
		RunRepo:      runRepo,
		ItemRepo:     itemRepo,
		Renderer:     digest.NewRenderer(),
		DigestStore:  digestStore,
	}

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(appPipeline)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(runRepo, itemRepo, digestStore, appPipeline, scheduler, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

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
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// buildLLMClient assembles the provider fallback chain in profile order,
// skipping providers without credentials.
func buildLLMClient(appCfg *cfg.Cfg, userProfile *profile.Profile, httpClient *http.Client) llm.Client {
	var providers []llm.Client

	for _, name := range userProfile.LLM.Providers {
		switch name {
		case "gemini":
			if appCfg.GeminiAPIKey != "" {
				providers = append(providers, llm.NewGemini(appCfg.GeminiAPIKey, userProfile, httpClient))
			}
		case "openai":
			if appCfg.OpenAIAPIKey != "" {
				providers = append(providers, llm.NewOpenAI(appCfg.OpenAIAPIKey, userProfile, httpClient))
			}
		}
	}

	if len(providers) == 0 {
		slog.Warn("No LLM providers configured, borderline items will get fallback defaults")
		return nil
	}

	return llm.NewChain(providers...)
}

func buildCollectors(appCfg *cfg.Cfg, userProfile *profile.Profile, httpClient *http.Client) []collect.Collector {
	var collectors []collect.Collector

	if userProfile.Sources.Folo.Enabled {
		collectors = append(collectors, collect.NewFolo(appCfg.FoloCookie, appCfg.UserAgent, userProfile, httpClient))
	}
	if userProfile.Sources.GitHubTrending.Enabled {
		collectors = append(collectors, collect.NewTrending(appCfg.UserAgent, userProfile, httpClient))
	}
	if userProfile.Sources.Papers.Enabled && len(userProfile.Sources.Papers.Feeds) > 0 {
		collectors = append(collectors, collect.NewPapers(appCfg.UserAgent, userProfile))
	}

	if len(collectors) == 0 {
		slog.Warn("No collectors enabled, pipeline runs will collect nothing")
	}

	return collectors
}
