package sanity

import (
	"context"
	"fmt"
	"time"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/models"
)

// CreateComment legt einen Kommentar an. Das Freigabe-Flag ist immer false.
func (c *Client) CreateComment(ctx context.Context, cm models.Comment) (string, error) {
	doc := map[string]any{
		"_type": "comment",
		"article": map[string]any{
			"_type": "reference",
			"_ref":  cm.ArticleID,
		},
		"author":      cm.Author,
		"email":       cm.Email,
		"content":     cm.Content,
		"approved":    false,
		"publishedAt": cm.PublishedAt.UTC().Format(time.RFC3339Nano),
		"ipAddress":   cm.IPAddress,
	}
	ids, err := c.Mutate(ctx, map[string]any{"create": doc})
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: sanity returned no document id", errs.ErrUpstreamUnavailable)
	}
	return ids[0], nil
}

// ListApprovedComments liefert die freigegebenen Kommentare eines Artikels, neueste zuerst.
func (c *Client) ListApprovedComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	q := Documents("comment").
		Filter("article._ref == $articleId").
		Param("articleId", articleID).
		Filter("approved == true").
		OrderBy("publishedAt desc").
		Project(`"id": _id`, "author", "content", "publishedAt")

	comments := []models.Comment{}
	if err := c.Fetch(ctx, q, &comments); err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].ArticleID = articleID
		comments[i].Approved = true
	}
	return comments, nil
}
