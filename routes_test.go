package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/feed"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/page"
	"ahmet-ozay-website/providers"
	"ahmet-ozay-website/render"
	"ahmet-ozay-website/services"
)

const baseURL = "https://www.ahmetoezay.de"

type fakeComments struct {
	submitted []services.SubmitInput
	submitErr error
	list      []models.Comment
	listErr   error
}

func (f *fakeComments) Submit(_ context.Context, in services.SubmitInput) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	if err := in.Validate(); err != nil {
		return "", errs.FromValidation(err)
	}
	f.submitted = append(f.submitted, in)
	return fmt.Sprintf("comment-%d", len(f.submitted)), nil
}

func (f *fakeComments) List(_ context.Context, slug string) ([]models.Comment, error) {
	if slug == "" {
		return nil, &errs.ValidationError{Fields: map[string]string{"slug": "Slug ist erforderlich"}}
	}
	return f.list, f.listErr
}

type fakeContent struct {
	builder    *page.Builder
	articles   []models.Article
	err        error
	lastFilter models.ArticleFilter
	lastLocale locale.Locale
}

func (f *fakeContent) ListArticles(_ context.Context, l locale.Locale, filter models.ArticleFilter) ([]models.ArticleSummary, error) {
	f.lastFilter, f.lastLocale = filter, l
	if f.err != nil {
		return nil, f.err
	}
	out := []models.ArticleSummary{}
	for i := range f.articles {
		out = append(out, f.articles[i].Summary(l, baseURL, nil))
	}
	return out, nil
}

func (f *fakeContent) Featured(ctx context.Context, l locale.Locale) ([]models.ArticleSummary, error) {
	return f.ListArticles(ctx, l, models.ArticleFilter{FeaturedOnly: true})
}

func (f *fakeContent) ArticlePage(_ context.Context, slug string, l locale.Locale) (*page.ArticlePage, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.articles {
		if f.articles[i].Slug == slug {
			p := f.builder.BuildArticlePage(&f.articles[i], l, nil)
			return &p, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeContent) WriteRSS(_ context.Context, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	return feed.WriteRSS(w, f.articles, feed.Options{BaseURL: baseURL})
}

func (f *fakeContent) Sitemap(_ context.Context) []feed.Entry {
	return feed.BuildSitemap(f.articles, feed.Options{BaseURL: baseURL})
}

type fakeIndexing struct {
	enabled   map[string]bool
	submitted [][]string
	kinds     []string
	published []string
	history   []models.IndexingSubmission
}

func (f *fakeIndexing) Submit(_ context.Context, urls []string, action string, kinds ...string) (services.Report, error) {
	if len(urls) == 0 {
		return services.Report{}, &errs.ValidationError{Fields: map[string]string{"urls": "URLs array is required"}}
	}
	f.submitted = append(f.submitted, urls)
	f.kinds = append(f.kinds, kinds...)
	return services.Report{Success: true, URLs: urls, Action: action, Results: []providers.Result{{Endpoint: "fake", Success: true, Status: 200}}}, nil
}

func (f *fakeIndexing) NotifyPublished(ctx context.Context, slug string) (services.Report, error) {
	if slug == "" {
		return services.Report{}, &errs.ValidationError{Fields: map[string]string{"slug": "Article slug not found"}}
	}
	f.published = append(f.published, slug)
	return services.Report{Success: true, URLs: []string{baseURL + "/de/artikel/" + slug}}, nil
}

func (f *fakeIndexing) Enabled(kind string) bool { return f.enabled[kind] }

func (f *fakeIndexing) RecentSubmissions(_ context.Context, limit int) ([]models.IndexingSubmission, error) {
	if f.history == nil {
		return nil, errs.ErrConfigurationMissing
	}
	return f.history, nil
}

type fakeSitemaps struct{ triggers []string }

func (f *fakeSitemaps) Submit(_ context.Context, trigger string) services.SitemapReport {
	f.triggers = append(f.triggers, trigger)
	return services.SitemapReport{Success: true, SitemapURL: baseURL + "/sitemap.xml", Timestamp: time.Now()}
}

type testApp struct {
	router   *gin.Engine
	comments *fakeComments
	content  *fakeContent
	indexing *fakeIndexing
	sitemaps *fakeSitemaps
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = &config.Config{}
	}
	site := page.Site{BaseURL: baseURL, Name: "Ahmet Özay"}
	ta := &testApp{
		comments: &fakeComments{},
		content: &fakeContent{
			builder: page.NewBuilder(site, render.New(nil, zap.NewNop())),
			articles: []models.Article{{
				ID:          "a1",
				Slug:        "krim",
				Title:       models.LocalizedText{locale.DE: "Die Krim <heute>", locale.EN: "Crimea today"},
				Category:    models.CategoryHistory,
				PublishedAt: time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC),
				Content:     models.LocalizedBlocks{locale.DE: {models.Paragraph("Hallo Welt")}},
			}},
		},
		indexing: &fakeIndexing{enabled: map[string]bool{"indexnow": true}},
		sitemaps: &fakeSitemaps{},
	}
	ta.router = newRouter(&app{
		cfg:      cfg,
		site:     site,
		comments: ta.comments,
		content:  ta.content,
		indexing: ta.indexing,
		sitemaps: ta.sitemaps,
		limiter:  middleware.NewIPLimiter(60, 3),
		log:      zap.NewNop(),
	})
	return ta
}

func (ta *testApp) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPostComment(t *testing.T) {
	ta := newTestApp(t, nil)
	body := `{"articleSlug":"krim","author":"Ana","email":"a@b.com","content":"Sehr guter Artikel, danke!","locale":"en"}`

	w := ta.do(http.MethodPost, "/api/comments", body, "X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	res := decode(t, w)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, services.SubmittedMessage, res["message"])
	assert.Equal(t, "comment-1", res["id"])
	require.Len(t, ta.comments.submitted, 1)
	assert.Equal(t, "198.51.100.7", ta.comments.submitted[0].IP)
	assert.Equal(t, locale.EN, ta.comments.submitted[0].Locale)
}

func TestPostCommentErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		submitErr error
		want      int
	}{
		{"malformed json", `{"articleSlug":`, nil, http.StatusBadRequest},
		{"too short", `{"articleSlug":"krim","author":"A","email":"a@b.com","content":"Sehr guter Artikel"}`, nil, http.StatusBadRequest},
		{"unknown slug", `{"articleSlug":"x","author":"Ana","email":"a@b.com","content":"Sehr guter Artikel"}`, errs.ErrNotFound, http.StatusNotFound},
		{"cms down", `{"articleSlug":"krim","author":"Ana","email":"a@b.com","content":"Sehr guter Artikel"}`, fmt.Errorf("create: %w", errs.ErrUpstreamUnavailable), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, nil)
			ta.comments.submitErr = tt.submitErr
			w := ta.do(http.MethodPost, "/api/comments", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestPostCommentValidationFields(t *testing.T) {
	ta := newTestApp(t, nil)
	w := ta.do(http.MethodPost, "/api/comments", `{"articleSlug":"krim","author":"A","email":"nope","content":"kurz"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields, ok := decode(t, w)["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "author")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "content")
}

func TestPostCommentRateLimited(t *testing.T) {
	ta := newTestApp(t, nil)
	body := `{"articleSlug":"krim","author":"Ana","email":"a@b.com","content":"Sehr guter Artikel, danke!"}`
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, ta.do(http.MethodPost, "/api/comments", body, "X-Real-IP", "203.0.113.9").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, ta.do(http.MethodPost, "/api/comments", body, "X-Real-IP", "203.0.113.9").Code)
}

func TestPostCommentRateLimitIgnoresForwardedFor(t *testing.T) {
	ta := newTestApp(t, nil)
	body := `{"articleSlug":"krim","author":"Ana","email":"a@b.com","content":"Sehr guter Artikel, danke!"}`
	created := 0
	for i := 0; i < 10; i++ {
		w := ta.do(http.MethodPost, "/api/comments", body, "X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		if w.Code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 3, created)
	require.NotEmpty(t, ta.comments.submitted)
	assert.Equal(t, "198.51.100.1", ta.comments.submitted[0].IP, "stored IP still comes from the forwarded header")
}

func TestGetComments(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.comments.list = []models.Comment{{ID: "c1", Author: "Ana", Email: "a@b.com", Content: "Sehr guter Artikel", Approved: true, IPAddress: "1.2.3.4"}}

	w := ta.do(http.MethodGet, "/api/comments?slug=krim", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"author":"Ana"`)
	assert.NotContains(t, w.Body.String(), "a@b.com")
	assert.NotContains(t, w.Body.String(), "1.2.3.4")

	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodGet, "/api/comments", "").Code)

	ta.comments.listErr = errs.ErrNotFound
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, "/api/comments?slug=x", "").Code)
}

func TestIndexingRoutes(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.do(http.MethodPost, "/api/indexnow", `{"urls":["https://www.ahmetoezay.de/de"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"indexnow"}, ta.indexing.kinds)

	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodPost, "/api/indexnow", `{"urls":[]}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, ta.do(http.MethodPost, "/api/google-indexing", `{"urls":["x"]}`).Code)

	ta.indexing.enabled["google"] = true
	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodPost, "/api/google-indexing", `{"urls":["x"],"action":"URL_REMOVED"}`).Code)
	assert.Equal(t, http.StatusOK, ta.do(http.MethodPost, "/api/google-indexing", `{"urls":["x"],"action":"URL_DELETED"}`).Code)
}

func TestIndexArticleWebhook(t *testing.T) {
	ta := newTestApp(t, nil)

	assert.Equal(t, http.StatusOK, ta.do(http.MethodPost, "/api/index-article", `{"document":{"slug":{"current":"krim"}}}`).Code)
	assert.Equal(t, http.StatusOK, ta.do(http.MethodPost, "/api/index-article", `{"slug":{"current":"medien"}}`).Code)
	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodPost, "/api/index-article", `{"document":{}}`).Code)
	assert.Equal(t, []string{"krim", "medien"}, ta.indexing.published)
}

func TestCronRoutesRequireSecret(t *testing.T) {
	ta := newTestApp(t, &config.Config{CronSecret: "s3cret"})

	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodGet, "/api/cron/submit-sitemap", "").Code)
	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodPost, "/api/index-article", `{"slug":{"current":"krim"}}`).Code)

	w := ta.do(http.MethodGet, "/api/cron/submit-sitemap", "", "Authorization", "Bearer s3cret")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"cron"}, ta.sitemaps.triggers)
	assert.Equal(t, baseURL+"/sitemap.xml", decode(t, w)["sitemapUrl"])

	// öffentliche Routen bleiben offen
	assert.Equal(t, http.StatusOK, ta.do(http.MethodGet, "/api/comments?slug=krim", "").Code)
}

func TestIndexingHistory(t *testing.T) {
	ta := newTestApp(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, ta.do(http.MethodGet, "/api/indexing/history", "").Code)

	ta.indexing.history = []models.IndexingSubmission{{Endpoint: "api.indexnow.org", Success: true}}
	w := ta.do(http.MethodGet, "/api/indexing/history?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api.indexnow.org")
	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodGet, "/api/indexing/history?limit=abc", "").Code)
}

func TestArticleAPI(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.do(http.MethodGet, "/api/articles?locale=en&category=history&q=krim&limit=500", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Crimea today")
	assert.Equal(t, locale.EN, ta.content.lastLocale)
	assert.Equal(t, maxListLimit, ta.content.lastFilter.Limit)
	assert.Equal(t, models.CategoryHistory, ta.content.lastFilter.Category)

	assert.Equal(t, http.StatusBadRequest, ta.do(http.MethodGet, "/api/articles?limit=-1", "").Code)

	w = ta.do(http.MethodGet, "/api/articles/featured?locale=fr", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ta.content.lastFilter.FeaturedOnly)
	assert.Equal(t, locale.DE, ta.content.lastLocale)

	w = ta.do(http.MethodGet, "/api/articles/krim?locale=tr", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, "tr", res["locale"])
	assert.Equal(t, "Die Krim <heute>", res["title"])

	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, "/api/articles/unbekannt", "").Code)

	ta.content.err = errs.ErrUpstreamUnavailable
	assert.Equal(t, http.StatusBadGateway, ta.do(http.MethodGet, "/api/articles", "").Code)
}

func TestArticleHTML(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.do(http.MethodGet, "/en/artikel/krim", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	html := w.Body.String()
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, `<link rel="canonical" href="https://www.ahmetoezay.de/en/artikel/krim">`)
	assert.Equal(t, 1, strings.Count(html, "<!DOCTYPE"))
	assert.Equal(t, 1, strings.Count(html, "<title>"))
	assert.Equal(t, 1, strings.Count(html, `rel="canonical"`))
	assert.Equal(t, 2, strings.Count(html, "application/ld+json"), "article and breadcrumb")
	assert.NotContains(t, html, "<heute>")

	w = ta.do(http.MethodGet, "/tr/artikel/unbekannt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Makale bulunamadı", w.Body.String())

	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodGet, "/fr/artikel/krim", "").Code)
}

func TestStaticPages(t *testing.T) {
	ta := newTestApp(t, nil)

	w := ta.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/de", w.Header().Get("Location"))

	w = ta.do(http.MethodGet, "/tr", "")
	require.Equal(t, http.StatusOK, w.Code)
	home := w.Body.String()
	assert.Contains(t, home, `"@type":"Person"`)
	assert.Equal(t, 1, strings.Count(home, "<!DOCTYPE"))
	assert.Equal(t, 1, strings.Count(home, "<head>"))
	assert.Equal(t, 1, strings.Count(home, "application/ld+json"))

	w = ta.do(http.MethodGet, "/en/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	about := w.Body.String()
	assert.Contains(t, about, "FAQPage")
	assert.Equal(t, 1, strings.Count(about, "<!DOCTYPE"))
	assert.Equal(t, 1, strings.Count(about, `rel="canonical"`))
	assert.Equal(t, 2, strings.Count(about, "application/ld+json"), "breadcrumb and faq")
}

func TestFeeds(t *testing.T) {
	ta := newTestApp(t, &config.Config{IndexNowAPIKey: "abc123"})

	w := ta.do(http.MethodGet, "/feed.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<rss")

	w = ta.do(http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), baseURL+"/tr/artikel/krim")

	w = ta.do(http.MethodGet, "/robots.txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: "+baseURL+"/sitemap.xml")

	w = ta.do(http.MethodGet, "/abc123.txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", w.Body.String())

	ta.content.err = errs.ErrUpstreamUnavailable
	assert.Equal(t, http.StatusBadGateway, ta.do(http.MethodGet, "/feed.xml", "").Code)
	assert.Equal(t, http.StatusOK, ta.do(http.MethodGet, "/sitemap.xml", "").Code)
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t, nil)
	w := ta.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}
