package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/page"
	"ahmet-ozay-website/providers"
	"ahmet-ozay-website/providers/googleindex"
	"ahmet-ozay-website/providers/indexnow"
	"ahmet-ozay-website/providers/mailer"
	"ahmet-ozay-website/providers/sanity"
	"ahmet-ozay-website/providers/webmaster"
	"ahmet-ozay-website/render"
	"ahmet-ozay-website/services"
	"ahmet-ozay-website/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// CMS und Seitenaufbau
	cms := sanity.NewClient(cfg, logging)
	site := page.Site{BaseURL: cfg.BaseURL(), Name: cfg.SiteName, Images: cms.ImageURL}
	builder := page.NewBuilder(site, render.New(cms.ImageURL, logging))
	content := services.NewContentService(cms, builder, logging)

	// Kommentare und Benachrichtigung
	var notifier services.CommentNotifier
	if m, err := mailer.NewMailer(cfg, logging); err != nil {
		logging.Warn("Comment notifications disabled", zap.Error(err))
	} else {
		notifier = m
	}
	queue := services.NewNotificationQueue(notifier, cfg.NotifyQueueSize, cfg.NotifyWorkers, logging)
	comments := services.NewCommentService(cms, queue, logging)

	// Indexierung
	var indexers []providers.Indexer
	for _, s := range indexnow.NewSubmitters(cfg, logging) {
		indexers = append(indexers, s)
	}
	google, err := googleindex.NewPublisher(ctx, cfg, logging)
	if err != nil {
		logging.Error("Google indexing disabled, invalid service account key", zap.Error(err))
		google = googleindex.NewPublisherWithClient(nil, googleindex.PublishURL, logging)
	}
	indexers = append(indexers, google)

	var history services.HistoryStore
	if cfg.DatabaseEnabled() {
		db, err := storage.OpenPostgres(cfg.DSN())
		if err != nil {
			logging.Error("Indexing history disabled, database unavailable", zap.Error(err))
		} else {
			logging.Info("Successfully connected to history database.")
			history = storage.NewHistoryStore(db)
		}
	}
	indexing := services.NewIndexingService(indexers, history, cfg.BaseURL(), logging)
	sitemaps := services.NewSitemapService(webmaster.NewPinger(config.SplitList(cfg.SitemapPingEndpoints), logging), cfg.BaseURL(), logging)

	// Cron
	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.SitemapCronSchedule, func() {
		logging.Info("Running scheduled sitemap submission...")
		jobCtx, cancel := context.WithTimeout(context.Background(), sitemapTimeout)
		defer cancel()
		report := sitemaps.Submit(jobCtx, "cron")
		if !report.Success {
			logging.Warn("Scheduled sitemap submission failed on all endpoints")
		}
	})
	if err != nil {
		logging.Error("Invalid sitemap cron schedule, job not scheduled", zap.String("schedule", cfg.SitemapCronSchedule), zap.Error(err))
	}
	cronScheduler.Start()

	router := newRouter(&app{
		cfg:      cfg,
		site:     site,
		comments: comments,
		content:  content,
		indexing: indexing,
		sitemaps: sitemaps,
		limiter:  middleware.NewIPLimiter(cfg.CommentRatePerMn, cfg.CommentRatePerMn),
		log:      logging,
	})

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort), zap.String("site", cfg.BaseURL()))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
	<-cronScheduler.Stop().Done()
	queue.Close()
}
