package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/errs"
	"ahmet-ozay-website/models"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Mailer benachrichtigt den Autor per Resend über neue Kommentare.
type Mailer struct {
	From      string
	To        string
	SiteURL   string
	StudioURL string
	Logger    *zap.Logger
	emails    emailSender
}

// NewMailer liefert ErrConfigurationMissing, wenn API-Key oder Empfänger fehlen.
func NewMailer(cfg *config.Config, logger *zap.Logger) (*Mailer, error) {
	if !cfg.NotificationsEnabled() {
		return nil, fmt.Errorf("%w: RESEND_API_KEY and AUTHOR_EMAIL", errs.ErrConfigurationMissing)
	}
	client := resend.NewClient(cfg.ResendAPIKey)
	return &Mailer{
		From:      cfg.ResendFromEmail,
		To:        cfg.AuthorEmail,
		SiteURL:   cfg.BaseURL(),
		StudioURL: cfg.StudioURL(),
		Logger:    logger,
		emails:    client.Emails,
	}, nil
}

type mailData struct {
	ArticleTitle string
	ArticleURL   string
	StudioURL    string
	Author       string
	Content      string
}

var htmlMail = template.Must(template.New("html").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"></head>
  <body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2 style="margin: 0 0 20px 0;">Neuer Kommentar auf Ihrem Artikel</h2>
      <p>Es wurde ein neuer Kommentar auf Ihren Artikel <strong>"{{.ArticleTitle}}"</strong> eingereicht.</p>
      <div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; margin: 20px 0;">
        <p style="margin: 0 0 10px 0;"><strong>Von:</strong> {{.Author}}</p>
        <p style="margin: 0; white-space: pre-wrap;">{{.Content}}</p>
      </div>
      <p>Der Kommentar wartet auf Ihre Moderation. Sie können ihn in Sanity Studio freigeben.</p>
      <p><a href="{{.StudioURL}}">Zu Sanity Studio</a><br><a href="{{.ArticleURL}}">Artikel ansehen</a></p>
      <p style="font-size: 12px; color: #6c757d;">Diese E-Mail wurde automatisch generiert.</p>
    </div>
  </body>
</html>`))

var textMail = texttemplate.Must(texttemplate.New("text").Parse(`Neuer Kommentar auf Ihrem Artikel

Es wurde ein neuer Kommentar auf Ihren Artikel "{{.ArticleTitle}}" eingereicht.

Von: {{.Author}}
{{.Content}}

Der Kommentar wartet auf Ihre Moderation.

Artikel ansehen: {{.ArticleURL}}
Sanity Studio: {{.StudioURL}}
`))

// NotifyComment verschickt genau eine E-Mail.
func (m *Mailer) NotifyComment(ctx context.Context, n models.CommentNotification) error {
	data := mailData{
		ArticleTitle: n.ArticleTitle,
		ArticleURL:   models.ArticleURL(m.SiteURL, n.Locale, n.ArticleSlug),
		StudioURL:    m.StudioURL,
		Author:       n.Author,
		Content:      n.Content,
	}
	var html, text bytes.Buffer
	if err := htmlMail.Execute(&html, data); err != nil {
		return err
	}
	if err := textMail.Execute(&text, data); err != nil {
		return err
	}

	sent, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		Subject: "Neuer Kommentar: " + n.ArticleTitle,
		Html:    html.String(),
		Text:    text.String(),
	})
	if err != nil {
		return fmt.Errorf("%w: resend: %v", errs.ErrUpstreamUnavailable, err)
	}
	m.Logger.Info("Comment notification sent",
		zap.String("comment_id", n.CommentID),
		zap.String("message_id", sent.Id))
	return nil
}
