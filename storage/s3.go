package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"ahmet-ozay-website/config"
)

// objectAPI ist der Teil des S3-Clients, den die Backups brauchen.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Anbieter.
func NewS3Client(ctx context.Context, cfg *config.BackupConfig) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.BackupEndpoint,
				SigningRegion:     cfg.BackupRegion,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.BackupRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.BackupAccessKey, cfg.BackupSecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Backups legt CMS-Exporte unter einem Präfix ab und behält nur die neuesten Keep Stück.
type Backups struct {
	Bucket string
	Prefix string
	Keep   int
	Logger *zap.Logger
	client objectAPI
}

// NewBackups erstellt Backups auf client.
func NewBackups(client *s3.Client, cfg *config.BackupConfig, logger *zap.Logger) *Backups {
	return newBackups(client, cfg, logger)
}

func newBackups(client objectAPI, cfg *config.BackupConfig, logger *zap.Logger) *Backups {
	return &Backups{
		Bucket: cfg.BackupBucket,
		Prefix: cfg.BackupPrefix,
		Keep:   cfg.KeepBackups,
		Logger: logger,
		client: client,
	}
}

// Upload speichert data unter Prefix+name und liefert den vollständigen Key.
func (b *Backups) Upload(ctx context.Context, name string, data []byte) (string, error) {
	key := b.Prefix + name
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	b.Logger.Info("Backup uploaded", zap.String("bucket", b.Bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// Rotate löscht alle Backups mit Prefix außer den Keep neuesten. Fremde Objekte im Bucket bleiben unberührt.
// Einzelne Löschfehler werden geloggt und brechen die Rotation nicht ab.
func (b *Backups) Rotate(ctx context.Context) (int, error) {
	out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.Bucket),
		Prefix: aws.String(b.Prefix),
	})
	if err != nil {
		return 0, fmt.Errorf("list backups: %w", err)
	}

	objects := out.Contents[:0]
	for _, obj := range out.Contents {
		if obj.Key != nil && obj.LastModified != nil && strings.HasPrefix(*obj.Key, b.Prefix) {
			objects = append(objects, obj)
		}
	}
	if len(objects) <= b.Keep {
		b.Logger.Info("No rotation needed", zap.Int("backups", len(objects)), zap.Int("keep", b.Keep))
		return 0, nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(*objects[j].LastModified)
	})

	deleted := 0
	for _, obj := range objects[b.Keep:] {
		_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(b.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			b.Logger.Error("Deleting old backup failed", zap.String("key", *obj.Key), zap.Error(err))
			continue
		}
		deleted++
		b.Logger.Info("Old backup deleted", zap.String("key", *obj.Key))
	}
	return deleted, nil
}
