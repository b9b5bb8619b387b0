package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/locale"
	"ahmet-ozay-website/metrics"
	"ahmet-ozay-website/models"
)

// SubmittedMessage ist die Antwort nach erfolgreicher Einreichung.
const SubmittedMessage = "Kommentar wurde erfolgreich eingereicht und wartet auf Moderation."

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CommentStore ist der Teil des CMS-Clients, den die Moderation braucht.
type CommentStore interface {
	ResolveArticle(ctx context.Context, slug string) (*models.ArticleRef, error)
	CreateComment(ctx context.Context, c models.Comment) (string, error)
	ListApprovedComments(ctx context.Context, articleID string) ([]models.Comment, error)
}

// Enqueuer nimmt Benachrichtigungen entgegen, ohne zu blockieren.
type Enqueuer interface {
	Enqueue(n models.CommentNotification) bool
}

// SubmitInput ist eine Kommentar-Einreichung, wie sie über die API ankommt.
type SubmitInput struct {
	Slug    string        `json:"articleSlug"`
	Author  string        `json:"author"`
	Email   string        `json:"email"`
	Content string        `json:"content"`
	Locale  locale.Locale `json:"locale"`
	IP      string        `json:"-"`
}

// Validate prüft Pflichtfelder, Längen (in Zeichen, nicht Bytes) und das E-Mail-Format.
func (in SubmitInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Slug, validation.Required.Error("Slug ist erforderlich")),
		validation.Field(&in.Author,
			validation.Required.Error("Name ist erforderlich"),
			validation.RuneLength(2, 100).Error("Name muss zwischen 2 und 100 Zeichen lang sein")),
		validation.Field(&in.Email,
			validation.Required.Error("E-Mail ist erforderlich"),
			validation.Match(emailPattern).Error("Ungültige E-Mail-Adresse")),
		validation.Field(&in.Content,
			validation.Required.Error("Kommentar ist erforderlich"),
			validation.RuneLength(10, 2000).Error("Kommentar muss zwischen 10 und 2000 Zeichen lang sein")),
	)
}

// CommentService implementiert Einreichen und Auflisten moderierter Kommentare.
type CommentService struct {
	Store  CommentStore
	Queue  Enqueuer
	Logger *zap.Logger
	Now    func() time.Time
}

// NewCommentService erstellt einen CommentService. queue darf nil sein.
func NewCommentService(store CommentStore, queue Enqueuer, logger *zap.Logger) *CommentService {
	return &CommentService{Store: store, Queue: queue, Logger: logger, Now: time.Now}
}

// Submit validiert, löst den Slug auf und speichert den Kommentar unfreigegeben.
// Die Benachrichtigung an den Autor beeinflusst das Ergebnis nie.
func (s *CommentService) Submit(ctx context.Context, in SubmitInput) (string, error) {
	if err := in.Validate(); err != nil {
		metrics.CommentsSubmitted.WithLabelValues("invalid").Inc()
		return "", errs.FromValidation(err)
	}
	log := s.Logger.With(zap.String("slug", in.Slug))

	article, err := s.Store.ResolveArticle(ctx, in.Slug)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.CommentsSubmitted.WithLabelValues("not_found").Inc()
		} else {
			metrics.CommentsSubmitted.WithLabelValues("error").Inc()
		}
		return "", err
	}

	ip := in.IP
	if ip == "" {
		ip = "unknown"
	}
	comment := models.Comment{
		ArticleID:   article.ID,
		Author:      in.Author,
		Email:       in.Email,
		Content:     in.Content,
		Approved:    false,
		PublishedAt: s.Now().UTC(),
		IPAddress:   ip,
	}
	id, err := s.Store.CreateComment(ctx, comment)
	if err != nil {
		metrics.CommentsSubmitted.WithLabelValues("error").Inc()
		log.Error("Creating comment failed", zap.Error(err))
		return "", fmt.Errorf("create comment: %w", err)
	}
	metrics.CommentsSubmitted.WithLabelValues("accepted").Inc()
	log.Info("Comment submitted for moderation", zap.String("comment_id", id), zap.String("article_id", article.ID))

	if s.Queue != nil {
		l := in.Locale
		if !locale.IsSupported(l) {
			l = locale.Default
		}
		title := locale.FirstAvailable(article.Title)
		if title == "" {
			title = "Artikel"
		}
		slug := article.Slug
		if slug == "" {
			slug = in.Slug
		}
		s.Queue.Enqueue(models.CommentNotification{
			CommentID:    id,
			ArticleID:    article.ID,
			ArticleTitle: title,
			ArticleSlug:  slug,
			Author:       in.Author,
			Content:      in.Content,
			Locale:       l,
		})
	}
	return id, nil
}

// List liefert die freigegebenen Kommentare eines Artikels, neueste zuerst.
func (s *CommentService) List(ctx context.Context, slug string) ([]models.Comment, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, &errs.ValidationError{Fields: map[string]string{"slug": "Slug ist erforderlich"}}
	}
	article, err := s.Store.ResolveArticle(ctx, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.Store.ListApprovedComments(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	visible := comments[:0]
	for _, c := range comments {
		if c.Approved {
			visible = append(visible, c)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].PublishedAt.After(visible[j].PublishedAt)
	})
	if visible == nil {
		visible = []models.Comment{}
	}
	return visible, nil
}
