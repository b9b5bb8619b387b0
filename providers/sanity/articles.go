package sanity

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/models"
)

var summaryFields = []string{
	"_id",
	"_createdAt",
	"title",
	`"slug": slug.current`,
	"excerpt",
	"category",
	"publishedAt",
	"author",
	"readTime",
	"featured",
	"tags",
	"originalUrl",
	`"image": image{"assetRef": asset._ref, alt}`,
}

var articleFields = append(append([]string{}, summaryFields...), "content")

var searchFields = []string{
	"title.de", "title.en", "title.tr",
	"excerpt.de", "excerpt.en", "excerpt.tr",
	"pt::text(content.de)", "pt::text(content.en)", "pt::text(content.tr)",
}

const (
	featuredLimit = 6
	// relatedWindow begrenzt die Kandidaten für ListRelated.
	relatedWindow = 24
)

func publishedArticles() *Query {
	return Documents("article").Published()
}

// ListArticles liefert veröffentlichte Artikel, neueste zuerst.
func (c *Client) ListArticles(ctx context.Context, f models.ArticleFilter) ([]models.Article, error) {
	q := publishedArticles()
	if f.Category != "" {
		q.InCategory(string(f.Category))
	}
	if f.FeaturedOnly {
		q.Filter("featured == true")
		if f.Limit <= 0 || f.Limit > featuredLimit {
			f.Limit = featuredLimit
		}
	}
	if f.Search != "" {
		q.Matches(f.Search, searchFields...)
	}
	q.OrderBy("publishedAt desc").Range(f.Offset, f.Limit).Project(summaryFields...)

	var articles []models.Article
	if err := c.Fetch(ctx, q, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticleBySlug liefert einen veröffentlichten Artikel inklusive Inhalt.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	q := publishedArticles().SlugEquals(slug).First().Project(articleFields...)

	var article *models.Article
	if err := c.Fetch(ctx, q, &article); err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("article %q: %w", slug, errs.ErrNotFound)
	}
	return article, nil
}

// ResolveArticle löst einen Slug auf die Dokument-ID eines veröffentlichten Artikels auf.
func (c *Client) ResolveArticle(ctx context.Context, slug string) (*models.ArticleRef, error) {
	q := publishedArticles().SlugEquals(slug).First().Project("_id", `"slug": slug.current`, "title")

	var ref *models.ArticleRef
	if err := c.Fetch(ctx, q, &ref); err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, fmt.Errorf("article %q: %w", slug, errs.ErrNotFound)
	}
	return ref, nil
}

// ListRelated liefert Artikel mit gleicher Rubrik oder gemeinsamem Tag, ohne den Ausgangsartikel.
func (c *Client) ListRelated(ctx context.Context, slug string, category models.Category, tags []string, limit int) ([]models.Article, error) {
	if limit <= 0 {
		return nil, nil
	}
	window := limit * 4
	if window < relatedWindow {
		window = relatedWindow
	}
	q := publishedArticles().
		ExcludeSlug(slug).
		InCategoryOrTags(string(category), tags).
		OrderBy("publishedAt desc").
		Range(0, window).
		Project(summaryFields...)

	var candidates []models.Article
	if err := c.Fetch(ctx, q, &candidates); err != nil {
		return nil, err
	}
	related := RankRelated(candidates, slug, category, tags, limit)
	c.Logger.Debug("Related articles selected",
		zap.String("slug", slug),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(related)))
	return related, nil
}

// RankRelated wählt aus candidates die verwandten Artikel aus: Ausgangsartikel und Artikel ohne
// gemeinsames Thema fallen weg, sortiert wird nach Überlappung, bei Gleichstand nach Aktualität.
func RankRelated(candidates []models.Article, slug string, category models.Category, tags []string, limit int) []models.Article {
	type scored struct {
		article models.Article
		score   int
	}
	var pool []scored
	for _, a := range candidates {
		if a.Slug == slug {
			continue
		}
		if s := a.TopicOverlap(category, tags); s > 0 {
			pool = append(pool, scored{article: a, score: s})
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].article.PublishedAt.After(pool[j].article.PublishedAt)
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]models.Article, len(pool))
	for i, p := range pool {
		out[i] = p.article
	}
	return out
}
