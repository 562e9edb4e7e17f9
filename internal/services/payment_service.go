package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/lightning"
	"gymgrub_backend/internal/logger"
	"gymgrub_backend/internal/metrics"
	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/payment"
	"gymgrub_backend/internal/repositories"
	"gymgrub_backend/pkg/apperrors"
)

type PaymentService interface {
	// CreateInvoice mints a Lightning invoice for a subscription purchase,
	// records a pending payment in the ledger and inserts a pending
	// subscription row.
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error)

	// CheckStatus returns the current payment status, opportunistically
	// advancing it to paid when the wallet reports settlement. Never returns
	// a hard error to the polling caller.
	CheckStatus(ctx context.Context, paymentID string) (*dto.PaymentStatusResponse, error)
}

type paymentService struct {
	wallet           lightning.Wallet
	ledger           payment.Ledger
	subscriptionRepo repositories.SubscriptionRepository
	satsPerUSD       float64
}

func NewPaymentService(
	wallet lightning.Wallet,
	ledger payment.Ledger,
	subscriptionRepo repositories.SubscriptionRepository,
	satsPerUSD float64,
) PaymentService {
	return &paymentService{
		wallet:           wallet,
		ledger:           ledger,
		subscriptionRepo: subscriptionRepo,
		satsPerUSD:       satsPerUSD,
	}
}

func (s *paymentService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	if req.Amount <= 0 || req.PlanID == "" {
		return nil, apperrors.ErrMissingPaymentFields
	}
	if req.UserID == "" {
		return nil, apperrors.ErrMissingUserID
	}

	planID := models.PlanID(req.PlanID)
	if !planID.Valid() {
		return nil, apperrors.ErrUnknownPlan
	}

	sats := int64(math.Round(req.Amount * s.satsPerUSD))
	paymentID := payment.NewPaymentID()

	invoice, err := s.wallet.CreateInvoice(ctx, sats, req.Description)
	if err != nil {
		metrics.WalletErrors.WithLabelValues("create_invoice").Inc()
		if errors.Is(err, lightning.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletUnavailable(err)
		}
		var parseErr *lightning.ParseError
		if errors.As(err, &parseErr) {
			return nil, apperrors.ErrInvoiceCreationFailed(err, parseErr.Raw)
		}
		return nil, apperrors.ErrInvoiceCreationFailed(err, "")
	}

	s.ledger.Insert(&payment.Record{
		PaymentID: paymentID,
		Status:    models.PaymentStatusPending,
		PlanID:    planID,
		AmountUSD: req.Amount,
		Invoice:   invoice.PaymentRequest,
		Sats:      sats,
		CreatedAt: time.Now(),
	})

	// The invoice is already minted at this point, so a durable-store
	// failure must not fail the response: the user still has to see the
	// invoice. The pending row is reconciled later or by hand.
	sub := &models.Subscription{
		UserID:    req.UserID,
		PlanID:    req.PlanID,
		Status:    models.SubscriptionStatusPending,
		Amount:    req.Amount,
		PaymentID: paymentID,
		Invoice:   invoice.PaymentRequest,
		ExpiresAt: planExpiry(time.Now(), planID),
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		logger.CtxError(ctx, "failed to insert pending subscription",
			"payment_id", paymentID,
			"user_id", req.UserID,
			"error", err.Error(),
		)
	}

	metrics.InvoicesCreated.WithLabelValues(req.PlanID).Inc()
	logger.CtxInfo(ctx, "lightning invoice created",
		"payment_id", paymentID,
		"plan_id", req.PlanID,
		"sats", sats,
	)

	return &dto.CreateInvoiceResponse{
		PaymentID: paymentID,
		Invoice:   invoice.PaymentRequest,
		Sats:      sats,
		Amount:    req.Amount,
	}, nil
}

func (s *paymentService) CheckStatus(ctx context.Context, paymentID string) (*dto.PaymentStatusResponse, error) {
	metrics.StatusChecks.Inc()

	rec, ok := s.ledger.Get(paymentID)
	if !ok {
		// Ledger was reset (restart) or the id is simply unknown. The caller
		// is a polling loop, so respond with a synthetic pending rather than
		// an error.
		return &dto.PaymentStatusResponse{
			PaymentID: paymentID,
			Status:    string(models.PaymentStatusPending),
		}, nil
	}

	if rec.Status == models.PaymentStatusPaid || rec.Invoice == "" {
		return statusResponse(rec), nil
	}

	// Claim step first, then the per-invoice status check. The two are
	// independent wallet operations: a payment settling between them is
	// picked up on the next poll cycle.
	if err := s.wallet.RunMaintenance(ctx); err != nil {
		logger.CtxDebug(ctx, "wallet maintenance skipped", "error", err.Error())
	}

	status, err := s.wallet.CheckInvoiceStatus(ctx, rec.Invoice)
	if err != nil {
		// Wallet missing means "not yet available", anything else is
		// transient. Either way the last known status is returned and the
		// next poll retries.
		if !errors.Is(err, lightning.ErrWalletNotFound) {
			metrics.WalletErrors.WithLabelValues("check_status").Inc()
			logger.CtxWarn(ctx, "invoice status check failed",
				"payment_id", paymentID,
				"error", err.Error(),
			)
		}
		return statusResponse(rec), nil
	}

	if status.Settled() {
		if s.ledger.MarkPaid(paymentID) {
			metrics.PaymentsSettled.WithLabelValues(string(rec.PlanID)).Inc()
			logger.CtxInfo(ctx, "payment settled", "payment_id", paymentID)

			// The two stores may be briefly inconsistent: a failed durable
			// update is logged and left for a later check or manual
			// reconciliation, the caller still sees paid.
			if err := s.subscriptionRepo.Activate(paymentID, time.Now()); err != nil {
				logger.CtxError(ctx, "failed to activate subscription",
					"payment_id", paymentID,
					"error", err.Error(),
				)
			}
		}
		rec.Status = models.PaymentStatusPaid
	}

	return statusResponse(rec), nil
}

func statusResponse(rec *payment.Record) *dto.PaymentStatusResponse {
	planID := string(rec.PlanID)
	amount := rec.AmountUSD
	return &dto.PaymentStatusResponse{
		PaymentID: rec.PaymentID,
		Status:    string(rec.Status),
		PlanID:    &planID,
		Amount:    &amount,
	}
}

// planExpiry computes the subscription end date: +1 calendar month for the
// monthly plan, +1 calendar year for the yearly plan.
func planExpiry(from time.Time, planID models.PlanID) time.Time {
	if planID == models.PlanYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
