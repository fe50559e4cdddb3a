package main

import (
	"context"
	"errors"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"ytdlapi/internal/application/download"
	"ytdlapi/internal/config"
	"ytdlapi/internal/infrastructure/filesystem"
	"ytdlapi/internal/infrastructure/ytdlp"
	httptransport "ytdlapi/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring .env: %v", err)
	}
	cfg := config.Load()
	logger := log.Default()

	_ = mime.AddExtensionType(".mkv", "video/x-matroska")
	_ = mime.AddExtensionType(".webm", "video/webm")

	store := filesystem.NewStore(cfg.DownloadsDir)
	if err := store.EnsureDir(); err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	opts := ytdlp.DefaultOptions()
	opts.Binary = cfg.YTDLPBinary
	opts.PlayerClients = cfg.YTDLPPlayerClients
	opts.SkipProtocols = cfg.YTDLPSkip
	if cfg.YTDLPUserAgent != "" {
		opts.UserAgent = cfg.YTDLPUserAgent
	}
	opts.Retries = cfg.YTDLPRetries
	opts.SleepMin = cfg.YTDLPSleepMin
	opts.SleepMax = cfg.YTDLPSleepMax
	opts.CookiesFile = cfg.CookiesFile

	extractor := ytdlp.NewClient(opts)
	versionCtx, cancelVersion := context.WithTimeout(context.Background(), 10*time.Second)
	if !extractor.Available(versionCtx) {
		logger.Printf("yt-dlp binary %q did not run; downloads will fail", cfg.YTDLPBinary)
	}
	cancelVersion()
	if _, err := os.Stat(cfg.CookiesFile); err != nil {
		logger.Printf("No cookie file at %s; extraction may be throttled", cfg.CookiesFile)
	}

	downloadService := download.NewService(store, extractor, logger, cfg.MaxConcurrentDownloads)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := download.NewSweeper(store, cfg.Retention, logger)
	sweeper.Start(ctx, cfg.SweepInterval)

	handler := httptransport.NewHandler(downloadService, logger)
	router := httptransport.NewRouter(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	if err := downloadService.Shutdown(shutdownCtx); err != nil {
		log.Printf("Download shutdown: %v", err)
	}
}
