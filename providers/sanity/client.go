package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/errs"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Client spricht die HTTP-API des Sanity Content Lake.
// Lesezugriffe gehen (falls aktiviert) über das CDN, Schreibzugriffe immer an die API mit Token.
type Client struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Client
}

// NewClient erstellt einen neuen Sanity-Client.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{Config: cfg, Logger: logger, HTTP: httpClient}
}

func (c *Client) host(cdn bool) string {
	if c.Config.SanityAPIHost != "" {
		return strings.TrimRight(c.Config.SanityAPIHost, "/")
	}
	if cdn {
		return fmt.Sprintf("https://%s.apicdn.sanity.io", c.Config.SanityProjectID)
	}
	return fmt.Sprintf("https://%s.api.sanity.io", c.Config.SanityProjectID)
}

func (c *Client) endpoint(cdn bool, kind string) string {
	return fmt.Sprintf("%s/v%s/data/%s/%s", c.host(cdn), c.Config.SanityAPIVersion, kind, c.Config.SanityDataset)
}

func (c *Client) authorize(req *http.Request) {
	if c.Config.SanityAPIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.Config.SanityAPIToken)
	}
}

// Fetch führt eine Abfrage aus und dekodiert das Feld "result" nach out.
// Ein null-Ergebnis lässt out unverändert.
func (c *Client) Fetch(ctx context.Context, q *Query, out any) error {
	vals := url.Values{}
	vals.Set("query", q.String())
	for name, v := range q.Params() {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		vals.Set("$"+name, string(b))
	}

	u := c.endpoint(c.Config.SanityUseCDN, "query") + "?" + vals.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sanity query: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.Logger.Warn("Sanity query failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("%w: sanity query status %d", errs.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode sanity response: %w", err)
	}
	c.Logger.Debug("Sanity query done", zap.Duration("took", time.Since(start)))

	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode sanity result: %w", err)
	}
	return nil
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Mutate schickt Mutationen an die API und liefert die IDs der betroffenen Dokumente.
func (c *Client) Mutate(ctx context.Context, mutations ...map[string]any) ([]string, error) {
	if c.Config.SanityAPIToken == "" {
		return nil, fmt.Errorf("%w: SANITY_API_TOKEN", errs.ErrConfigurationMissing)
	}
	body, err := json.Marshal(map[string]any{"mutations": mutations})
	if err != nil {
		return nil, err
	}

	u := c.endpoint(false, "mutate") + "?returnIds=true&visibility=sync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sanity mutate: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.Logger.Error("Sanity mutation failed", zap.Int("status", resp.StatusCode), zap.String("body", string(msg)))
		return nil, fmt.Errorf("%w: sanity mutate status %d", errs.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var mr mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode mutate response: %w", err)
	}
	ids := make([]string, 0, len(mr.Results))
	for _, r := range mr.Results {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// Export streamt alle Dokumente der angegebenen Typen als NDJSON nach w.
func (c *Client) Export(ctx context.Context, types []string, w io.Writer) (int64, error) {
	if c.Config.SanityAPIToken == "" {
		return 0, fmt.Errorf("%w: SANITY_API_TOKEN", errs.ErrConfigurationMissing)
	}
	u := c.endpoint(false, "export")
	if len(types) > 0 {
		u += "?types=" + url.QueryEscape(strings.Join(types, ","))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	c.authorize(req)

	// Exporte können groß sein, daher ohne Client-Timeout; abgebrochen wird über ctx.
	exportClient := &http.Client{Transport: c.HTTP.Transport}
	resp, err := exportClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: sanity export: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: sanity export status %d", errs.ErrUpstreamUnavailable, resp.StatusCode)
	}
	return io.Copy(w, resp.Body)
}
