package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/metrics"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/providers"
)

const maxParallelIndexers = 4

// HistoryStore protokolliert Indexierungs-Meldungen (optional, z.B. Postgres).
type HistoryStore interface {
	Record(ctx context.Context, rows []models.IndexingSubmission) error
	Recent(ctx context.Context, limit int) ([]models.IndexingSubmission, error)
}

// Report fasst eine Meldung an alle Endpunkte zusammen.
// Success ist true, sobald mindestens ein Endpunkt die URLs angenommen hat.
type Report struct {
	Success bool               `json:"success"`
	URLs    []string           `json:"submittedUrls"`
	Action  string             `json:"action,omitempty"`
	Results []providers.Result `json:"results"`
}

// IndexingService verteilt geänderte URLs parallel an alle konfigurierten Indexierungsdienste.
type IndexingService struct {
	Indexers []providers.Indexer
	History  HistoryStore
	BaseURL  string
	Logger   *zap.Logger
}

// NewIndexingService erstellt einen IndexingService. history darf nil sein.
func NewIndexingService(indexers []providers.Indexer, history HistoryStore, baseURL string, logger *zap.Logger) *IndexingService {
	return &IndexingService{Indexers: indexers, History: history, BaseURL: baseURL, Logger: logger}
}

// ArticleURLs liefert die kanonische URL von slug in jeder Sprache.
func (s *IndexingService) ArticleURLs(slug string) []string {
	urls := make([]string, 0, len(locale.Supported))
	for _, l := range locale.Supported {
		urls = append(urls, models.ArticleURL(s.BaseURL, l, slug))
	}
	return urls
}

// NotifyPublished meldet einen veröffentlichten Artikel in allen Sprachen an alle Dienste.
func (s *IndexingService) NotifyPublished(ctx context.Context, slug string) (Report, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Report{}, &errs.ValidationError{Fields: map[string]string{"slug": "Article slug not found"}}
	}
	return s.Submit(ctx, s.ArticleURLs(slug), "")
}

// Enabled meldet, ob mindestens ein Dienst der Art kind konfiguriert ist.
func (s *IndexingService) Enabled(kind string) bool {
	for _, ix := range s.Indexers {
		if ix.Kind() == kind && ix.Enabled() {
			return true
		}
	}
	return false
}

// Submit ruft alle Dienste (oder nur die der angegebenen Arten) unabhängig voneinander auf.
// Nicht konfigurierte Dienste erscheinen als disabled, ein Fehler bricht die anderen nicht ab.
func (s *IndexingService) Submit(ctx context.Context, urls []string, action string, kinds ...string) (Report, error) {
	urls = cleanURLs(urls)
	if len(urls) == 0 {
		return Report{}, &errs.ValidationError{Fields: map[string]string{"urls": "URLs array is required"}}
	}

	var targets []providers.Indexer
	for _, ix := range s.Indexers {
		if matchesKind(ix.Kind(), kinds) {
			targets = append(targets, ix)
		}
	}

	log := s.Logger.With(zap.Int("urls", len(urls)), zap.String("action", action))
	results := make([]providers.Result, len(targets))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallelIndexers)
	for i, ix := range targets {
		if !ix.Enabled() {
			results[i] = providers.Result{Endpoint: ix.Name(), Disabled: true, Error: errs.ErrConfigurationMissing.Error()}
			metrics.IndexingSubmissions.WithLabelValues(ix.Name(), "disabled").Inc()
			continue
		}
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, ix providers.Indexer) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i] = s.call(ctx, ix, urls, action, log)
		}(i, ix)
	}
	wg.Wait()

	report := Report{URLs: urls, Action: action, Results: results}
	for _, r := range results {
		if r.Success {
			report.Success = true
			break
		}
	}
	s.record(ctx, report, log)
	log.Info("Indexing relay finished", zap.Bool("success", report.Success), zap.Int("endpoints", len(results)))
	return report, nil
}

func (s *IndexingService) call(ctx context.Context, ix providers.Indexer, urls []string, action string, log *zap.Logger) providers.Result {
	start := time.Now()
	status, err := ix.Submit(ctx, urls, action)
	metrics.IndexingDuration.WithLabelValues(ix.Kind()).Observe(time.Since(start).Seconds())

	res := providers.Result{Endpoint: ix.Name(), Status: status, Success: err == nil}
	if err != nil {
		res.Error = err.Error()
		if errors.Is(err, errs.ErrConfigurationMissing) {
			res.Disabled = true
		}
		metrics.IndexingSubmissions.WithLabelValues(ix.Name(), "failed").Inc()
		log.Warn("Indexing endpoint failed", zap.String("endpoint", ix.Name()), zap.Int("status", status), zap.Error(err))
		return res
	}
	metrics.IndexingSubmissions.WithLabelValues(ix.Name(), "success").Inc()
	return res
}

func (s *IndexingService) record(ctx context.Context, r Report, log *zap.Logger) {
	if s.History == nil {
		return
	}
	rows := make([]models.IndexingSubmission, 0, len(r.Results))
	for _, res := range r.Results {
		rows = append(rows, models.IndexingSubmission{
			Endpoint: res.Endpoint,
			Action:   r.Action,
			URLs:     strings.Join(r.URLs, "\n"),
			URLCount: len(r.URLs),
			Status:   res.Status,
			Success:  res.Success,
			Error:    res.Error,
		})
	}
	if err := s.History.Record(context.WithoutCancel(ctx), rows); err != nil {
		log.Error("Persisting indexing history failed", zap.Error(err))
	}
}

// RecentSubmissions liefert die letzten Meldungen. Ohne Datenbank ist das Feature deaktiviert.
func (s *IndexingService) RecentSubmissions(ctx context.Context, limit int) ([]models.IndexingSubmission, error) {
	if s.History == nil {
		return nil, errs.ErrConfigurationMissing
	}
	return s.History.Recent(ctx, limit)
}

func matchesKind(kind string, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func cleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
