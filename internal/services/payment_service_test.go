package services

import (
	"context"
	"testing"
	"time"

	"gymgrub_backend/internal/dto"
	"gymgrub_backend/internal/lightning"
	"gymgrub_backend/internal/models"
	"gymgrub_backend/internal/payment"
	"gymgrub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeWallet struct {
	createFn    func(ctx context.Context, sats int64, description string) (*lightning.Invoice, error)
	statusFn    func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error)
	maintenance error

	createCalls      int
	statusCalls      int
	maintenanceCalls int
}

func (w *fakeWallet) CreateInvoice(ctx context.Context, sats int64, description string) (*lightning.Invoice, error) {
	w.createCalls++
	return w.createFn(ctx, sats, description)
}

func (w *fakeWallet) RunMaintenance(ctx context.Context) error {
	w.maintenanceCalls++
	return w.maintenance
}

func (w *fakeWallet) CheckInvoiceStatus(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
	w.statusCalls++
	return w.statusFn(ctx, invoice)
}

type fakeSubscriptionRepo struct {
	created   []*models.Subscription
	activated []string
	createErr error
	activeErr error
}

func (r *fakeSubscriptionRepo) CreatePlan(plan *models.Plan) error { return nil }

func (r *fakeSubscriptionRepo) FindPlanByID(id string) (*models.Plan, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindActivePlans() ([]models.Plan, error) { return nil, nil }

func (r *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, sub)
	return nil
}

func (r *fakeSubscriptionRepo) FindByPaymentID(paymentID string) (*models.Subscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindActiveByUser(userID string) (*models.Subscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) Activate(paymentID string, startedAt time.Time) error {
	if r.activeErr != nil {
		return r.activeErr
	}
	r.activated = append(r.activated, paymentID)
	return nil
}

func (r *fakeSubscriptionRepo) MarkExpired(now time.Time) (int64, error) { return 0, nil }

func workingWallet() *fakeWallet {
	return &fakeWallet{
		createFn: func(ctx context.Context, sats int64, description string) (*lightning.Invoice, error) {
			return &lightning.Invoice{PaymentRequest: "lnbc10n1pn0test..."}, nil
		},
		statusFn: func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
			return &lightning.InvoiceStatus{Status: "pending"}, nil
		},
	}
}

func newServiceUnderTest(wallet *fakeWallet, repo *fakeSubscriptionRepo) (PaymentService, payment.Ledger) {
	ledger := payment.NewMemoryLedger()
	return NewPaymentService(wallet, ledger, repo, 3000), ledger
}

func monthlyRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		Amount:      9.99,
		PlanID:      "monthly",
		Description: "Monthly Premium - Gym and Grub Subscription",
		UserID:      "user-1",
	}
}

// --- CreateInvoice ---

func TestCreateInvoice_HappyPath(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	repo := &fakeSubscriptionRepo{}
	svc, ledger := newServiceUnderTest(wallet, repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^pay_\d+_[0-9a-z]{9}$`, resp.PaymentID)
	assert.Equal(t, "lnbc10n1pn0test...", resp.Invoice)
	assert.Equal(t, int64(29970), resp.Sats, "9.99 USD at 3000 sats/USD, rounded")
	assert.Equal(t, 9.99, resp.Amount)

	rec, ok := ledger.Get(resp.PaymentID)
	require.True(t, ok, "a pending ledger record is written")
	assert.Equal(t, models.PaymentStatusPending, rec.Status)
	assert.Equal(t, models.PlanMonthly, rec.PlanID)

	require.Len(t, repo.created, 1)
	sub := repo.created[0]
	assert.Equal(t, "user-1", sub.UserID)
	assert.Equal(t, models.SubscriptionStatusPending, sub.Status)
	assert.Equal(t, resp.PaymentID, sub.PaymentID)

	wantExpiry := time.Now().AddDate(0, 1, 0)
	assert.WithinDuration(t, wantExpiry, sub.ExpiresAt, time.Minute,
		"monthly plan expires one calendar month out")
}

func TestCreateInvoice_YearlyExpiry(t *testing.T) {
	t.Parallel()

	repo := &fakeSubscriptionRepo{}
	svc, _ := newServiceUnderTest(workingWallet(), repo)

	req := monthlyRequest()
	req.Amount = 99.99
	req.PlanID = "yearly"

	resp, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(299970), resp.Sats)

	require.Len(t, repo.created, 1)
	assert.WithinDuration(t, time.Now().AddDate(1, 0, 0), repo.created[0].ExpiresAt, time.Minute)
}

func TestCreateInvoice_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceUnderTest(workingWallet(), &fakeSubscriptionRepo{})

	cases := []struct {
		name     string
		mutate   func(*dto.CreateInvoiceRequest)
		wantCode apperrors.ErrorCode
	}{
		{"zero amount", func(r *dto.CreateInvoiceRequest) { r.Amount = 0 }, apperrors.CodeInvalidRequest},
		{"negative amount", func(r *dto.CreateInvoiceRequest) { r.Amount = -5 }, apperrors.CodeInvalidRequest},
		{"missing plan", func(r *dto.CreateInvoiceRequest) { r.PlanID = "" }, apperrors.CodeInvalidRequest},
		{"unknown plan", func(r *dto.CreateInvoiceRequest) { r.PlanID = "weekly" }, apperrors.CodeInvalidRequest},
		{"missing user", func(r *dto.CreateInvoiceRequest) { r.UserID = "" }, apperrors.CodeUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := monthlyRequest()
			tc.mutate(req)

			_, err := svc.CreateInvoice(context.Background(), req)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, appErr.Code)
		})
	}
}

func TestCreateInvoice_WalletMissing(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.createFn = func(ctx context.Context, sats int64, description string) (*lightning.Invoice, error) {
		return nil, lightning.ErrWalletNotFound
	}
	svc, ledger := newServiceUnderTest(wallet, &fakeSubscriptionRepo{})

	_, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeWalletUnavailable, appErr.Code)
	assert.Empty(t, ledger.Pending(), "nothing is recorded when minting fails")
}

func TestCreateInvoice_FailsClosedOnSentinelOutput(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.createFn = func(ctx context.Context, sats int64, description string) (*lightning.Invoice, error) {
		return nil, &lightning.ParseError{
			Reason: "sentinel invoice in output",
			Raw:    `{"invoice":"PLACEHOLDER_INVOICE"}`,
		}
	}
	repo := &fakeSubscriptionRepo{}
	svc, ledger := newServiceUnderTest(wallet, repo)

	_, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvoiceCreationFailed, appErr.Code)
	assert.Empty(t, ledger.Pending())
	assert.Empty(t, repo.created)
}

func TestCreateInvoice_SurvivesDurableStoreFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeSubscriptionRepo{createErr: assert.AnError}
	svc, ledger := newServiceUnderTest(workingWallet(), repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err, "the invoice already exists, so the caller still gets it")

	_, ok := ledger.Get(resp.PaymentID)
	assert.True(t, ok)
}

// --- CheckStatus ---

func TestCheckStatus_UnknownPaymentIsSyntheticPending(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceUnderTest(workingWallet(), &fakeSubscriptionRepo{})

	resp, err := svc.CheckStatus(context.Background(), "pay_000_abcdefghi")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.PlanID)
	assert.Nil(t, resp.Amount)
}

func TestCheckStatus_PendingUntilWalletReportsSettlement(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	repo := &fakeSubscriptionRepo{}
	svc, _ := newServiceUnderTest(wallet, repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "pending", status.Status)
	assert.Equal(t, 1, wallet.maintenanceCalls, "maintenance runs before the status check")
	assert.Empty(t, repo.activated)
}

func TestCheckStatus_SettlementActivatesSubscriptionOnce(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.statusFn = func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
		return &lightning.InvoiceStatus{Paid: true}, nil
	}
	repo := &fakeSubscriptionRepo{}
	svc, ledger := newServiceUnderTest(wallet, repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.Status)
	require.Equal(t, []string{resp.PaymentID}, repo.activated)

	// A paid record short-circuits: no second wallet round-trip, no second
	// activation.
	status, err = svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.Status)
	assert.Equal(t, 1, wallet.statusCalls)
	assert.Len(t, repo.activated, 1)

	assert.Empty(t, ledger.Pending())
}

func TestCheckStatus_TransientWalletErrorKeepsLastStatus(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.statusFn = func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
		return nil, assert.AnError
	}
	svc, _ := newServiceUnderTest(wallet, &fakeSubscriptionRepo{})

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err, "transient wallet failures are swallowed")
	assert.Equal(t, "pending", status.Status)
}

func TestCheckStatus_MaintenanceFailureDoesNotBlockStatusCheck(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.maintenance = assert.AnError
	wallet.statusFn = func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
		return &lightning.InvoiceStatus{SettledFlag: true}, nil
	}
	repo := &fakeSubscriptionRepo{}
	svc, _ := newServiceUnderTest(wallet, repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.Status)
	assert.Len(t, repo.activated, 1)
}

func TestCheckStatus_ActivationFailureStillReportsPaid(t *testing.T) {
	t.Parallel()

	wallet := workingWallet()
	wallet.statusFn = func(ctx context.Context, invoice string) (*lightning.InvoiceStatus, error) {
		return &lightning.InvoiceStatus{Status: "paid"}, nil
	}
	repo := &fakeSubscriptionRepo{activeErr: assert.AnError}
	svc, ledger := newServiceUnderTest(wallet, repo)

	resp, err := svc.CreateInvoice(context.Background(), monthlyRequest())
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "paid", status.Status, "the ledger transition wins, repair happens later")

	rec, _ := ledger.Get(resp.PaymentID)
	assert.Equal(t, models.PaymentStatusPaid, rec.Status)
}
