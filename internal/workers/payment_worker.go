package workers

import (
	"context"
	"time"

	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/payment"
	"gymgrub_backend/internal/services"
)

// PaymentWorker sweeps pending payments in the background so settlements
// land even when the user closed the tab and nobody is polling the status
// endpoint anymore.
type PaymentWorker struct {
	ledger         payment.Ledger
	paymentService services.PaymentService
	interval       time.Duration
}

func NewPaymentWorker(ledger payment.Ledger, paymentService services.PaymentService, interval time.Duration) *PaymentWorker {
	return &PaymentWorker{
		ledger:         ledger,
		paymentService: paymentService,
		interval:       interval,
	}
}

func (w *PaymentWorker) Start(ctx context.Context) {
	go w.reconcilePending(ctx)
}

func (w *PaymentWorker) reconcilePending(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Payment worker stopped")
			return
		case <-ticker.C:
			pending := w.ledger.Pending()
			for _, paymentID := range pending {
				// CheckStatus advances the record and activates the
				// subscription when the wallet reports settlement.
				if _, err := w.paymentService.CheckStatus(ctx, paymentID); err != nil {
					logger.WorkerLog("payment", "reconcile", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
			if len(pending) > 0 {
				logger.Debug("Reconcile pass finished", "pending", len(pending))
			}
		}
	}
}
