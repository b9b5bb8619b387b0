// Package webmaster meldet die Sitemap an Suchmaschinen, die noch einen Ping-Endpunkt anbieten.
package webmaster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/providers"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// GoogleNote ersetzt den abgeschalteten Google-Ping.
const GoogleNote = "google sitemap ping is deprecated; submit via Search Console (manual_required)"

// Pinger ruft jeden Endpunkt mit angehängter Sitemap-URL auf.
// Endpunkte enden auf den Query-Parameter, z.B. "https://www.bing.com/ping?sitemap=".
type Pinger struct {
	Endpoints []string
	Logger    *zap.Logger
	HTTP      *http.Client
}

// NewPinger erstellt einen Pinger.
func NewPinger(endpoints []string, logger *zap.Logger) *Pinger {
	return &Pinger{Endpoints: endpoints, Logger: logger, HTTP: httpClient}
}

// Ping meldet sitemapURL parallel an alle Endpunkte. Das Google-Ergebnis wird immer angehängt.
func (p *Pinger) Ping(ctx context.Context, sitemapURL string) []providers.Result {
	results := make([]providers.Result, len(p.Endpoints))
	var wg sync.WaitGroup
	for i, ep := range p.Endpoints {
		wg.Add(1)
		go func(i int, ep string) {
			defer wg.Done()
			results[i] = p.ping(ctx, ep, sitemapURL)
		}(i, ep)
	}
	wg.Wait()

	return append(results, providers.Result{Endpoint: "google", Success: false, Note: GoogleNote})
}

func (p *Pinger) ping(ctx context.Context, endpoint, sitemapURL string) providers.Result {
	res := providers.Result{Endpoint: endpoint}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+url.QueryEscape(sitemapURL), nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		p.Logger.Warn("Sitemap ping failed", zap.String("endpoint", endpoint), zap.Error(err))
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	res.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !res.Success {
		res.Error = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return res
}
