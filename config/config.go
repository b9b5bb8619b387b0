package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`
	SiteURL  string `envconfig:"SITE_URL" default:"https://ahmetoezay.de"`
	SiteName string `envconfig:"SITE_NAME" default:"Ahmet Özay"`

	// Sanity Content Lake
	SanityProjectID  string `envconfig:"SANITY_PROJECT_ID" required:"true"`
	SanityDataset    string `envconfig:"SANITY_DATASET" default:"production"`
	SanityAPIVersion string `envconfig:"SANITY_API_VERSION" default:"2024-01-01"`
	SanityAPIToken   string `envconfig:"SANITY_API_TOKEN"`
	SanityUseCDN     bool   `envconfig:"SANITY_USE_CDN" default:"true"`
	// Überschreibt den API-Host (lokale Tests, Proxy)
	SanityAPIHost string `envconfig:"SANITY_API_HOST"`

	// Kommentar-Benachrichtigung via Resend
	ResendAPIKey     string `envconfig:"RESEND_API_KEY"`
	ResendFromEmail  string `envconfig:"RESEND_FROM_EMAIL" default:"onboarding@resend.dev"`
	AuthorEmail      string `envconfig:"AUTHOR_EMAIL"`
	NotifyQueueSize  int    `envconfig:"NOTIFY_QUEUE_SIZE" default:"64"`
	NotifyWorkers    int    `envconfig:"NOTIFY_WORKERS" default:"2"`
	CommentRatePerMn int    `envconfig:"COMMENT_RATE_PER_MINUTE" default:"5"`

	// Proxys, deren X-Forwarded-For ausgewertet wird (kommasepariert, IPs oder CIDRs). Leer: keiner.
	TrustedProxies string `envconfig:"TRUSTED_PROXIES"`

	// Indexierung
	IndexNowAPIKey          string `envconfig:"INDEXNOW_API_KEY"`
	IndexNowEndpoints       string `envconfig:"INDEXNOW_ENDPOINTS" default:"https://api.indexnow.org/IndexNow,https://www.bing.com/indexnow"`
	GoogleServiceAccountKey string `envconfig:"GOOGLE_SERVICE_ACCOUNT_KEY"`
	SitemapPingEndpoints    string `envconfig:"SITEMAP_PING_ENDPOINTS" default:"https://www.bing.com/ping?sitemap=,https://webmaster.yandex.com/ping?sitemap="`
	CronSecret              string `envconfig:"CRON_SECRET"`
	SitemapCronSchedule     string `envconfig:"SITEMAP_CRON_SCHEDULE" default:"0 3 * * *"`

	// Optionale Postgres-Datenbank für die Indexierungs-Historie
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// DatabaseEnabled meldet, ob eine Datenbank konfiguriert ist.
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

// NotificationsEnabled meldet, ob E-Mail-Benachrichtigungen verschickt werden können.
func (c *Config) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.AuthorEmail != ""
}

// BaseURL liefert die Site-URL ohne abschließenden Slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.SiteURL, "/")
}

// StudioURL zeigt auf das Sanity Studio der Site.
func (c *Config) StudioURL() string {
	return c.BaseURL() + "/studio"
}

// SplitList zerlegt kommaseparierte Konfigurationswerte.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}

// BackupConfig ist die Konfiguration des Export-Kommandos.
type BackupConfig struct {
	SanityProjectID  string `envconfig:"SANITY_PROJECT_ID" required:"true"`
	SanityDataset    string `envconfig:"SANITY_DATASET" default:"production"`
	SanityAPIVersion string `envconfig:"SANITY_API_VERSION" default:"2024-01-01"`
	SanityAPIToken   string `envconfig:"SANITY_API_TOKEN" required:"true"`
	SanityAPIHost    string `envconfig:"SANITY_API_HOST"`
	ExportTypes      string `envconfig:"BACKUP_TYPES" default:"article,comment"`

	BackupBucket    string `envconfig:"BACKUP_S3_BUCKET" required:"true"`
	BackupEndpoint  string `envconfig:"BACKUP_S3_ENDPOINT" required:"true"`
	BackupAccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY" required:"true"`
	BackupSecretKey string `envconfig:"BACKUP_S3_SECRET_KEY" required:"true"`
	BackupRegion    string `envconfig:"BACKUP_S3_REGION" required:"true"`
	BackupPrefix    string `envconfig:"BACKUP_S3_PREFIX" default:"cms-export-"`
	KeepBackups     int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// LoadBackup lädt die Backup-Konfiguration.
func LoadBackup() (*BackupConfig, error) {
	_ = godotenv.Load()
	var c BackupConfig
	err := envconfig.Process("", &c)
	return &c, err
}

// Sanity liefert die Sanity-Verbindungsdaten als vollständige Config.
func (b *BackupConfig) Sanity() *Config {
	return &Config{
		SanityProjectID:  b.SanityProjectID,
		SanityDataset:    b.SanityDataset,
		SanityAPIVersion: b.SanityAPIVersion,
		SanityAPIToken:   b.SanityAPIToken,
		SanityAPIHost:    b.SanityAPIHost,
	}
}
