package googleindex

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"

	"ahmet-ozay-website/config"
)

const (
	scope      = "https://www.googleapis.com/auth/indexing"
	PublishURL = "https://indexing.googleapis.com/v3/urlNotifications:publish"

	ActionUpdated = "URL_UPDATED"
	ActionDeleted = "URL_DELETED"
)

// Publisher meldet URLs einzeln an die Google Indexing API.
type Publisher struct {
	Endpoint string
	Logger   *zap.Logger
	client   *http.Client
}

// NewPublisher liest den Service-Account-Schlüssel (JSON oder Base64-JSON).
// Ohne Schlüssel ist der Publisher deaktiviert.
func NewPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Publisher, error) {
	p := &Publisher{Endpoint: PublishURL, Logger: logger}
	if cfg.GoogleServiceAccountKey == "" {
		return p, nil
	}
	key := []byte(strings.TrimSpace(cfg.GoogleServiceAccountKey))
	if len(key) > 0 && key[0] != '{' {
		decoded, err := base64.StdEncoding.DecodeString(string(key))
		if err != nil {
			return nil, fmt.Errorf("service account key: %w", err)
		}
		key = decoded
	}
	jwtCfg, err := google.JWTConfigFromJSON(key, scope)
	if err != nil {
		return nil, fmt.Errorf("service account key: %w", err)
	}
	p.client = jwtCfg.Client(ctx)
	return p, nil
}

// NewPublisherWithClient verwendet einen bereits autorisierten HTTP-Client.
func NewPublisherWithClient(client *http.Client, endpoint string, logger *zap.Logger) *Publisher {
	return &Publisher{Endpoint: endpoint, Logger: logger, client: client}
}

func (p *Publisher) Name() string { return "google-indexing" }

func (p *Publisher) Kind() string { return "google" }

func (p *Publisher) Enabled() bool { return p.client != nil }

// ValidAction meldet, ob action von der Indexing API verstanden wird.
func ValidAction(action string) bool {
	return action == ActionUpdated || action == ActionDeleted
}

// Submit meldet jede URL einzeln. Der zurückgegebene Status ist der des letzten Aufrufs.
func (p *Publisher) Submit(ctx context.Context, urls []string, action string) (int, error) {
	if action == "" {
		action = ActionUpdated
	}
	if !ValidAction(action) {
		return 0, fmt.Errorf("unsupported action %q", action)
	}

	var lastStatus, failed int
	for _, u := range urls {
		status, err := p.publish(ctx, u, action)
		lastStatus = status
		if err != nil {
			failed++
			p.Logger.Warn("Google indexing notification failed", zap.String("url", u), zap.Error(err))
		}
	}
	if failed > 0 {
		return lastStatus, fmt.Errorf("%d of %d urls failed", failed, len(urls))
	}
	return lastStatus, nil
}

func (p *Publisher) publish(ctx context.Context, u, action string) (int, error) {
	body, err := json.Marshal(map[string]string{"url": u, "type": action})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
