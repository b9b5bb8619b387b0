package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ahmet-ozay-website/metrics"
	"ahmet-ozay-website/models"
)

const notifyTimeout = 20 * time.Second

// CommentNotifier verschickt die Benachrichtigung an den Autor (z.B. mailer.Mailer).
type CommentNotifier interface {
	NotifyComment(ctx context.Context, n models.CommentNotification) error
}

// NotificationQueue entkoppelt die Benachrichtigung von der Anfrage.
// Enqueue blockiert nie; Fehler beim Versand werden nur geloggt.
type NotificationQueue struct {
	sender CommentNotifier
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	jobs   chan models.CommentNotification
	wg     sync.WaitGroup
}

// NewNotificationQueue startet workers Goroutinen. Ist sender nil, verwirft die Queue alles.
func NewNotificationQueue(sender CommentNotifier, size, workers int, logger *zap.Logger) *NotificationQueue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	q := &NotificationQueue{
		sender: sender,
		logger: logger,
		jobs:   make(chan models.CommentNotification, size),
	}
	if sender == nil {
		return q
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

// Enqueue reiht n ein und meldet, ob das geklappt hat.
func (q *NotificationQueue) Enqueue(n models.CommentNotification) bool {
	log := q.logger.With(zap.String("comment_id", n.CommentID), zap.String("slug", n.ArticleSlug))
	if q.sender == nil {
		metrics.Notifications.WithLabelValues("disabled").Inc()
		log.Debug("Notifications disabled, skipping")
		return false
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.Notifications.WithLabelValues("dropped").Inc()
		log.Warn("Notification queue closed, dropping notification")
		return false
	}
	select {
	case q.jobs <- n:
		metrics.NotificationQueueLength.Inc()
		return true
	default:
		metrics.Notifications.WithLabelValues("dropped").Inc()
		log.Warn("Notification queue full, dropping notification")
		return false
	}
}

func (q *NotificationQueue) work() {
	defer q.wg.Done()
	for n := range q.jobs {
		metrics.NotificationQueueLength.Dec()
		q.send(n)
	}
}

func (q *NotificationQueue) send(n models.CommentNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	log := q.logger.With(zap.String("comment_id", n.CommentID), zap.String("slug", n.ArticleSlug))
	if err := q.sender.NotifyComment(ctx, n); err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		log.Error("Sending comment notification failed", zap.Error(err))
		return
	}
	metrics.Notifications.WithLabelValues("sent").Inc()
	log.Info("Comment notification sent")
}

// Close nimmt nichts mehr an und wartet, bis alle eingereihten Benachrichtigungen abgearbeitet sind.
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}
