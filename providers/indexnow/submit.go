package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/config"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Request ist der IndexNow-Payload.
type Request struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// Submitter meldet URLs an einen IndexNow-Endpunkt.
type Submitter struct {
	Endpoint    string
	Key         string
	Host        string
	KeyLocation string
	Logger      *zap.Logger
	HTTP        *http.Client
}

// NewSubmitters erstellt je konfiguriertem Endpunkt einen Submitter.
// Ohne INDEXNOW_API_KEY sind alle Submitter deaktiviert.
func NewSubmitters(cfg *config.Config, logger *zap.Logger) []*Submitter {
	host := cfg.BaseURL()
	if u, err := url.Parse(cfg.BaseURL()); err == nil && u.Host != "" {
		host = u.Host
	}
	var out []*Submitter
	for _, ep := range config.SplitList(cfg.IndexNowEndpoints) {
		out = append(out, &Submitter{
			Endpoint:    ep,
			Key:         cfg.IndexNowAPIKey,
			Host:        host,
			KeyLocation: fmt.Sprintf("%s/%s.txt", cfg.BaseURL(), cfg.IndexNowAPIKey),
			Logger:      logger,
			HTTP:        httpClient,
		})
	}
	return out
}

func (s *Submitter) Name() string { return s.Endpoint }

func (s *Submitter) Kind() string { return "indexnow" }

func (s *Submitter) Enabled() bool { return s.Key != "" }

// Submit schickt alle URLs in einem Request. action wird von IndexNow nicht unterschieden.
func (s *Submitter) Submit(ctx context.Context, urls []string, _ string) (int, error) {
	body, err := json.Marshal(Request{
		Host:        s.Host,
		Key:         s.Key,
		KeyLocation: s.KeyLocation,
		URLList:     urls,
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	log := s.Logger.With(zap.String("endpoint", s.Endpoint), zap.Int("urls", len(urls)))
	resp, err := s.HTTP.Do(req)
	if err != nil {
		log.Warn("IndexNow request failed", zap.Error(err))
		return 0, err
	}
	defer resp.Body.Close()

	// 200 = übernommen, 202 = angenommen, Schlüsselprüfung ausstehend
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		log.Warn("IndexNow rejected submission", zap.Int("status", resp.StatusCode))
		return resp.StatusCode, fmt.Errorf("indexnow status %d", resp.StatusCode)
	}
	log.Info("IndexNow submission accepted", zap.Int("status", resp.StatusCode))
	return resp.StatusCode, nil
}
