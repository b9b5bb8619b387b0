// Package storage enthält die optionale Persistenz: Indexierungs-Historie in Postgres und CMS-Backups in S3.
package storage

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ahmet-ozay-website/models"
)

// OpenPostgres verbindet sich mit dsn und migriert die Historien-Tabelle.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.IndexingSubmission{}); err != nil {
		return nil, err
	}
	return db, nil
}

// HistoryStore speichert Indexierungs-Meldungen in Postgres.
type HistoryStore struct {
	DB *gorm.DB
}

// NewHistoryStore erstellt einen HistoryStore.
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{DB: db}
}

// Record speichert alle Zeilen in einem Insert.
func (h *HistoryStore) Record(ctx context.Context, rows []models.IndexingSubmission) error {
	if len(rows) == 0 {
		return nil
	}
	return h.DB.WithContext(ctx).Create(&rows).Error
}

// Recent liefert die neuesten Meldungen zuerst, höchstens limit (1 bis 500, sonst 50).
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]models.IndexingSubmission, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var rows []models.IndexingSubmission
	err := h.DB.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&rows).Error
	return rows, err
}
