package lightning

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrWalletNotFound - the wallet binary is missing or not executable.
	ErrWalletNotFound = errors.New("wallet binary not found")

	// ErrNoInvoice - the wallet ran but its output contained no usable
	// invoice (no JSON object, no invoice field, or a sentinel value).
	ErrNoInvoice = errors.New("wallet output contains no usable invoice")
)

// Wallet is the narrow port in front of the external Lightning wallet CLI.
// All text scraping of the CLI output lives behind this interface so the
// adapter can later be swapped for a native SDK client without touching the
// reconciliation logic.
type Wallet interface {
	// CreateInvoice mints a BOLT11 invoice for the given sat amount.
	CreateInvoice(ctx context.Context, sats int64, description string) (*Invoice, error)

	// RunMaintenance claims/settles pending payments. Advisory; the caller
	// is expected to ignore failures.
	RunMaintenance(ctx context.Context) error

	// CheckInvoiceStatus queries the settlement state of one invoice.
	CheckInvoiceStatus(ctx context.Context, invoice string) (*InvoiceStatus, error)
}

// Invoice is the parsed result of an invoice creation.
type Invoice struct {
	PaymentRequest string // BOLT11 string
	PaymentHash    string
	Raw            string // full process output, kept for diagnostics
}

// InvoiceStatus mirrors the loosely-typed status object the wallet prints.
// The tool's schema is not stable across versions, so all known signal
// fields are captured and settlement is decided by Settled() as an OR over
// them.
type InvoiceStatus struct {
	Status             string          `json:"status"`
	Paid               bool            `json:"paid"`
	SettledFlag        bool            `json:"settled"`
	PreimageRevealedAt json.RawMessage `json:"preimage_revealed_at"`

	Raw string `json:"-"`
}

// Settled reports whether any settlement signal is present. Any one signal
// is sufficient; all absent or falsy means not settled.
func (s *InvoiceStatus) Settled() bool {
	if s == nil {
		return false
	}
	if s.Status == "paid" {
		return true
	}
	if s.Paid || s.SettledFlag {
		return true
	}
	return preimagePresent(s.PreimageRevealedAt)
}

func preimagePresent(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	return strings.TrimSpace(string(raw)) != "null"
}

// ParseError carries the raw process output alongside the parse failure so
// it can be surfaced to the caller for diagnostics.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "wallet output parse failed: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return ErrNoInvoice
}
