// Package metrics definiert die Prometheus-Metriken der Site.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "site"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// CommentsSubmitted zählt Einreichungen nach Ergebnis (accepted, invalid, not_found, error, rate_limited).
	CommentsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "submitted_total",
			Help:      "Comment submissions by outcome.",
		},
		[]string{"outcome"},
	)

	// Notifications zählt Autor-Benachrichtigungen nach Ergebnis (sent, failed, dropped, disabled).
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "notifications_total",
			Help:      "Owner notifications by outcome.",
		},
		[]string{"outcome"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "comments",
			Name:      "notification_queue_length",
			Help:      "Pending owner notifications.",
		},
	)

	// IndexingSubmissions zählt Meldungen an Indexierungsdienste nach Endpunkt und Ergebnis (success, failed, disabled).
	IndexingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "indexing",
			Name:      "submissions_total",
			Help:      "Indexing endpoint calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	IndexingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "indexing",
			Name:      "submission_duration_seconds",
			Help:      "Duration of a single indexing endpoint call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// UpstreamErrors zählt fehlgeschlagene CMS-Lesezugriffe nach Operation.
	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cms",
			Name:      "upstream_errors_total",
			Help:      "Failed content store calls by operation.",
		},
		[]string{"operation"},
	)

	// SitemapSubmissions zählt die Läufe der Sitemap-Meldung nach Auslöser (cron, manual).
	SitemapSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "indexing",
			Name:      "sitemap_runs_total",
			Help:      "Sitemap submission runs by trigger.",
		},
		[]string{"trigger"},
	)
)
