package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvoicesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymgrub_invoices_created_total",
		Help: "Lightning invoices minted, by plan.",
	}, []string{"plan"})

	PaymentsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymgrub_payments_settled_total",
		Help: "Payments observed settled, by plan.",
	}, []string{"plan"})

	WalletErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymgrub_wallet_errors_total",
		Help: "External wallet CLI failures, by operation.",
	}, []string{"operation"})

	StatusChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymgrub_payment_status_checks_total",
		Help: "Settlement checks served.",
	})
)
