package lightning

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"time"

	"gymgrub_backend/internal/logger"
)

// BarkClient shells out to the bark CLI. One adapter owns all process
// invocation and output scraping; nothing above this package sees raw CLI
// text except through diagnostic fields.
type BarkClient struct {
	Bin     string        // binary name or path, normally "bark"
	Timeout time.Duration // per-invocation limit; a hung process must not stall the caller forever
}

func NewBarkClient(bin string, timeout time.Duration) *BarkClient {
	if bin == "" {
		bin = "bark"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BarkClient{Bin: bin, Timeout: timeout}
}

// run executes one bark command and returns its combined output. Log lines
// go to stderr or stdout depending on the bark version, so both are captured.
func (b *BarkClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	start := time.Now()
	out, err := exec.CommandContext(ctx, b.Bin, args...).CombinedOutput()
	logger.WalletLog(b.Bin+" "+args[0], time.Since(start), err)

	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return string(out), ErrWalletNotFound
		}
		return string(out), err
	}
	return string(out), nil
}

// CreateInvoice runs `bark invoice <sats> <description> --json` and extracts
// the invoice from the output.
func (b *BarkClient) CreateInvoice(ctx context.Context, sats int64, description string) (*Invoice, error) {
	out, err := b.run(ctx, "invoice", strconv.FormatInt(sats, 10), description, "--json")
	if err != nil {
		return nil, err
	}

	obj, ok := extractJSONObject(out)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object in output", Raw: out}
	}

	var payload struct {
		Invoice        string `json:"invoice"`
		PaymentRequest string `json:"payment_request"`
		PaymentHash    string `json:"payment_hash"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return nil, &ParseError{Reason: "invalid JSON object: " + err.Error(), Raw: out}
	}

	// Older bark versions use payment_request instead of invoice.
	request := payload.Invoice
	if request == "" {
		request = payload.PaymentRequest
	}
	if request == "" {
		return nil, &ParseError{Reason: "no invoice field in output", Raw: out}
	}
	if isSentinelInvoice(request) {
		return nil, &ParseError{Reason: "sentinel invoice in output", Raw: out}
	}

	return &Invoice{
		PaymentRequest: request,
		PaymentHash:    payload.PaymentHash,
		Raw:            out,
	}, nil
}

// RunMaintenance runs `bark maintain --quiet`. The output is ignored.
func (b *BarkClient) RunMaintenance(ctx context.Context) error {
	_, err := b.run(ctx, "maintain", "--quiet")
	return err
}

// CheckInvoiceStatus runs `bark lightning status <invoice> --quiet` and
// parses the embedded status object.
func (b *BarkClient) CheckInvoiceStatus(ctx context.Context, invoice string) (*InvoiceStatus, error) {
	out, err := b.run(ctx, "lightning", "status", invoice, "--quiet")
	if err != nil {
		return nil, err
	}

	obj, ok := extractJSONObject(out)
	if !ok {
		return nil, &ParseError{Reason: "no JSON object in status output", Raw: out}
	}

	var status InvoiceStatus
	if err := json.Unmarshal([]byte(obj), &status); err != nil {
		return nil, &ParseError{Reason: "invalid status object: " + err.Error(), Raw: out}
	}
	status.Raw = out

	return &status, nil
}
