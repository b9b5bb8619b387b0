package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/feed"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/middleware"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/page"
	"ahmet-ozay-website/services"
)

type commentAPI interface {
	Submit(ctx context.Context, in services.SubmitInput) (string, error)
	List(ctx context.Context, slug string) ([]models.Comment, error)
}

type contentAPI interface {
	ListArticles(ctx context.Context, l locale.Locale, f models.ArticleFilter) ([]models.ArticleSummary, error)
	Featured(ctx context.Context, l locale.Locale) ([]models.ArticleSummary, error)
	ArticlePage(ctx context.Context, slug string, l locale.Locale) (*page.ArticlePage, error)
	WriteRSS(ctx context.Context, w io.Writer) error
	Sitemap(ctx context.Context) []feed.Entry
}

type indexingAPI interface {
	Submit(ctx context.Context, urls []string, action string, kinds ...string) (services.Report, error)
	NotifyPublished(ctx context.Context, slug string) (services.Report, error)
	Enabled(kind string) bool
	RecentSubmissions(ctx context.Context, limit int) ([]models.IndexingSubmission, error)
}

type sitemapAPI interface {
	Submit(ctx context.Context, trigger string) services.SitemapReport
}

// app bündelt alles, was die Routen brauchen.
type app struct {
	cfg      *config.Config
	site     page.Site
	comments commentAPI
	content  contentAPI
	indexing indexingAPI
	sitemaps sitemapAPI
	limiter  *middleware.IPLimiter
	log      *zap.Logger
}

func newRouter(a *app) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(config.SplitList(a.cfg.TrustedProxies)); err != nil {
		a.log.Warn("Invalid TRUSTED_PROXIES, trusting no proxy", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.log))
	router.Use(middleware.Metrics())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupCommentRoutes(router, a)
	setupIndexingRoutes(router, a)
	setupArticleRoutes(router, a)
	setupFeedRoutes(router, a)
	setupPageRoutes(router, a)
	return router
}

// respondError bildet die Fehlerklassen auf HTTP-Status ab.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, errs.ErrConfigurationMissing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feature not configured"})
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		log.Error("Upstream unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Content service unavailable"})
	default:
		log.Error("Unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requestLocale liest ?locale=, unbekannte Werte ergeben die Standardsprache.
func requestLocale(c *gin.Context) locale.Locale {
	if l, ok := locale.Parse(c.Query("locale")); ok {
		return l
	}
	return locale.Default
}

func renderHTML(c *gin.Context, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
