package workers

import (
	"context"
	"time"

	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/repositories"
)

// SubscriptionWorker flips active subscriptions past their expiry to
// expired. Premium checks already evaluate expiry at read time; the sweep
// just keeps the table honest.
type SubscriptionWorker struct {
	subscriptionRepo repositories.SubscriptionRepository
	interval         time.Duration
}

func NewSubscriptionWorker(subscriptionRepo repositories.SubscriptionRepository, interval time.Duration) *SubscriptionWorker {
	return &SubscriptionWorker{
		subscriptionRepo: subscriptionRepo,
		interval:         interval,
	}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	go w.checkExpiredSubscriptions(ctx)
}

func (w *SubscriptionWorker) checkExpiredSubscriptions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Subscription worker stopped")
			return
		case <-ticker.C:
			count, err := w.subscriptionRepo.MarkExpired(time.Now())
			if err != nil {
				logger.WorkerLog("subscription", "mark_expired", err)
			} else if count > 0 {
				logger.Info("Marked subscriptions as expired", "count", count)
			}
		}
	}
}
