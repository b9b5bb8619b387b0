package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/feed"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/metrics"
	"ahmet-ozay-website/models"
	"ahmet-ozay-website/page"
)

// RelatedLimit ist die Anzahl ähnlicher Artikel unter einer Artikelseite.
const RelatedLimit = 3

// ArticleStore ist der lesende Teil des CMS-Clients.
type ArticleStore interface {
	ListArticles(ctx context.Context, f models.ArticleFilter) ([]models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListRelated(ctx context.Context, slug string, category models.Category, tags []string, limit int) ([]models.Article, error)
}

// ContentService liefert Artikellisten, Artikelseiten und die daraus erzeugten Feeds.
type ContentService struct {
	Store  ArticleStore
	Pages  *page.Builder
	Feed   feed.Options
	Logger *zap.Logger
}

// NewContentService erstellt einen ContentService.
func NewContentService(store ArticleStore, pages *page.Builder, logger *zap.Logger) *ContentService {
	return &ContentService{
		Store:  store,
		Pages:  pages,
		Feed:   feed.Options{BaseURL: pages.Site.BaseURL, Images: pages.Site.Images},
		Logger: logger,
	}
}

// ListArticles liefert die für l aufgelösten Artikel, neueste zuerst.
func (s *ContentService) ListArticles(ctx context.Context, l locale.Locale, f models.ArticleFilter) ([]models.ArticleSummary, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Category != "" && !f.Category.Valid() {
		return nil, &errs.ValidationError{Fields: map[string]string{"category": "Unbekannte Kategorie"}}
	}
	articles, err := s.Store.ListArticles(ctx, f)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("list_articles").Inc()
		s.Logger.Error("Listing articles failed", zap.Error(err))
		return nil, err
	}
	return s.summaries(articles, l), nil
}

// Featured liefert die hervorgehobenen Artikel für die Startseite.
func (s *ContentService) Featured(ctx context.Context, l locale.Locale) ([]models.ArticleSummary, error) {
	return s.ListArticles(ctx, l, models.ArticleFilter{FeaturedOnly: true})
}

func (s *ContentService) summaries(articles []models.Article, l locale.Locale) []models.ArticleSummary {
	out := make([]models.ArticleSummary, 0, len(articles))
	for i := range articles {
		out = append(out, articles[i].Summary(l, s.Pages.Site.BaseURL, s.Pages.Site.Images))
	}
	return out
}

// ArticlePage lädt den Artikel und baut die Seite für l. Fehlen ähnliche Artikel, wird die Seite trotzdem ausgeliefert.
func (s *ContentService) ArticlePage(ctx context.Context, slug string, l locale.Locale) (*page.ArticlePage, error) {
	log := s.Logger.With(zap.String("slug", slug), zap.String("locale", string(l)))

	article, err := s.Store.GetArticleBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			metrics.UpstreamErrors.WithLabelValues("get_article").Inc()
			log.Error("Loading article failed", zap.Error(err))
		}
		return nil, err
	}

	related, err := s.Store.ListRelated(ctx, article.Slug, article.Category, article.Tags, RelatedLimit)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("list_related").Inc()
		log.Warn("Loading related articles failed, rendering without", zap.Error(err))
		related = nil
	}

	p := s.Pages.BuildArticlePage(article, l, related)
	return &p, nil
}

// WriteRSS schreibt den RSS-Feed. Ist das CMS nicht erreichbar, schlägt der Feed fehl.
func (s *ContentService) WriteRSS(ctx context.Context, w io.Writer) error {
	articles, err := s.Store.ListArticles(ctx, models.ArticleFilter{Limit: feed.RSSItemLimit})
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("rss").Inc()
		s.Logger.Error("Loading articles for RSS failed", zap.Error(err))
		return err
	}
	return feed.WriteRSS(w, articles, s.Feed)
}

// Sitemap enthält bei CMS-Ausfall nur die statischen Seiten.
func (s *ContentService) Sitemap(ctx context.Context) []feed.Entry {
	articles, err := s.Store.ListArticles(ctx, models.ArticleFilter{})
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("sitemap").Inc()
		s.Logger.Warn("Loading articles for sitemap failed, serving static pages only", zap.Error(err))
		articles = nil
	}
	return feed.BuildSitemap(articles, s.Feed)
}
