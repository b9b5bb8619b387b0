package models

import "time"

// IndexingSubmission protokolliert eine Meldung an einen Indexierungsdienst.
type IndexingSubmission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Endpoint string `json:"endpoint" gorm:"index"`
	Action   string `json:"action,omitempty"`
	URLs     string `json:"urls" gorm:"type:text"` // zeilengetrennt
	URLCount int    `json:"url_count"`

	Status  int    `json:"status"`
	Success bool   `json:"success" gorm:"index"`
	Error   string `json:"error,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (IndexingSubmission) TableName() string {
	return "indexing_submissions"
}
