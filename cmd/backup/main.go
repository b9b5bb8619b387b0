// Command backup exportiert die Sanity-Dokumente als gzip-NDJSON nach S3 und rotiert alte Exporte.
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/config"
	"ahmet-ozay-website/providers/sanity"
	"ahmet-ozay-website/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.LoadBackup()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, logging); err != nil {
		logging.Fatal("Backup failed", zap.Error(err))
	}
	logging.Info("Backup finished")
}

func run(ctx context.Context, cfg *config.BackupConfig, logging *zap.Logger) error {
	cms := sanity.NewClient(cfg.Sanity(), logging)
	data, docs, err := export(ctx, cms, config.SplitList(cfg.ExportTypes))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logging.Info("CMS export created", zap.Int64("raw_bytes", docs), zap.Int("gzip_bytes", len(data)))

	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return fmt.Errorf("s3 client: %w", err)
	}
	backups := storage.NewBackups(client, cfg, logging)

	name := fmt.Sprintf("%s.ndjson.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	if _, err := backups.Upload(ctx, name, data); err != nil {
		return err
	}
	if _, err := backups.Rotate(ctx); err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	return nil
}

func export(ctx context.Context, cms *sanity.Client, types []string) ([]byte, int64, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	n, err := cms.Export(ctx, types, gz)
	if err != nil {
		return nil, 0, err
	}
	if err := gz.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), n, nil
}
