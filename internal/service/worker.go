package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ExpiryWorker periodically expires subscriptions whose period is over
type ExpiryWorker struct {
	subs     *SubscriptionService
	interval time.Duration
}

// NewExpiryWorker creates an ExpiryWorker running every interval
func NewExpiryWorker(subs *SubscriptionService, interval time.Duration) *ExpiryWorker {
	return &ExpiryWorker{subs: subs, interval: interval}
}

// RunOnce expires due subscriptions a single time
func (w *ExpiryWorker) RunOnce(ctx context.Context) int {
	n, err := w.subs.ExpireDue(ctx)
	if err != nil {
		logrus.WithError(err).Error("Subscription expiry run failed")
		return 0
	}
	if n > 0 {
		logrus.WithField("expired", n).Info("Subscriptions expired")
	}
	return n
}

// Run expires subscriptions at start and then every interval until ctx is done
func (w *ExpiryWorker) Run(ctx context.Context) {
	logrus.WithField("interval", w.interval.String()).Info("Subscription expiry worker started")
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Subscription expiry worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}
