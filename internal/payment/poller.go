package payment

import (
	"context"
	"errors"
	"time"

	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/models"
)

// ErrPollTimeout - the attempt budget ran out without observing a paid
// status. The user may restart the subscribe flow from scratch.
var ErrPollTimeout = errors.New("payment polling timed out")

// StatusFunc queries the current status of one payment.
type StatusFunc func(ctx context.Context, paymentID string) (models.PaymentStatus, error)

// Poller repeatedly checks a payment's status at a fixed interval until it is
// paid or the attempt budget is exhausted. Transient query errors count
// toward the budget but never terminate the loop early; only success, the
// attempt ceiling, or context cancellation do.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
}

// NewPoller returns a poller with the default budget: 60 attempts at 5s
// spacing, i.e. five minutes.
func NewPoller() *Poller {
	return &Poller{Interval: 5 * time.Second, MaxAttempts: 60}
}

// Wait blocks until the payment is observed paid, the attempt budget is
// spent (ErrPollTimeout), or ctx is cancelled (ctx.Err()). The ticker is
// always released on return.
func (p *Poller) Wait(ctx context.Context, paymentID string, check StatusFunc) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		status, err := check(ctx, paymentID)
		if err != nil {
			// Transient failure: spend the attempt, keep going.
			logger.CtxWarn(ctx, "payment status check failed",
				"payment_id", paymentID,
				"attempt", attempt,
				"error", err.Error(),
			)
			continue
		}

		if status == models.PaymentStatusPaid {
			return nil
		}
	}

	return ErrPollTimeout
}
