package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/metrics"
	"ahmet-ozay-website/providers"
)

// SitemapPinger meldet eine Sitemap-URL an Suchmaschinen.
type SitemapPinger interface {
	Ping(ctx context.Context, sitemapURL string) []providers.Result
}

// SitemapReport ist das Ergebnis einer Sitemap-Meldung.
type SitemapReport struct {
	Success    bool               `json:"success"`
	SitemapURL string             `json:"sitemapUrl"`
	Timestamp  time.Time          `json:"timestamp"`
	Results    []providers.Result `json:"results"`
}

// SitemapService meldet die Sitemap, per Cron oder auf Anfrage.
type SitemapService struct {
	Pinger     SitemapPinger
	SitemapURL string
	Logger     *zap.Logger
}

// NewSitemapService erstellt einen SitemapService für baseURL + "/sitemap.xml".
func NewSitemapService(pinger SitemapPinger, baseURL string, logger *zap.Logger) *SitemapService {
	return &SitemapService{Pinger: pinger, SitemapURL: baseURL + "/sitemap.xml", Logger: logger}
}

// Submit pingt alle Endpunkte. trigger landet nur in Logs und Metriken.
func (s *SitemapService) Submit(ctx context.Context, trigger string) SitemapReport {
	metrics.SitemapSubmissions.WithLabelValues(trigger).Inc()
	results := s.Pinger.Ping(ctx, s.SitemapURL)

	report := SitemapReport{SitemapURL: s.SitemapURL, Timestamp: time.Now().UTC(), Results: results}
	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
		}
	}
	report.Success = ok > 0
	s.Logger.Info("Sitemap submitted",
		zap.String("trigger", trigger),
		zap.Int("endpoints", len(results)),
		zap.Int("successful", ok))
	return report
}
