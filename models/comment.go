package models

import (
	"time"

	"ahmet-ozay-website/locale"
)

// Comment ist ein Leserkommentar zu genau einem Artikel.
// E-Mail, IP und Freigabe-Flag werden nie öffentlich ausgegeben.
type Comment struct {
	ID          string    `json:"id"`
	ArticleID   string    `json:"-"`
	Author      string    `json:"author"`
	Email       string    `json:"-"`
	Content     string    `json:"content"`
	Approved    bool      `json:"-"`
	PublishedAt time.Time `json:"publishedAt"`
	IPAddress   string    `json:"-"`
}

// CommentNotification ist die Nachricht an den Autor über einen neuen, unfreigegebenen Kommentar.
type CommentNotification struct {
	CommentID    string
	ArticleID    string
	ArticleTitle string
	ArticleSlug  string
	Author       string
	Content      string
	Locale       locale.Locale
}
