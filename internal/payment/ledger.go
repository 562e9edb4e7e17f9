package payment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"gymgrub_backend/internal/models"
)

// Record is one in-flight payment. The ledger copy is process-lifetime only;
// the durable counterpart is the subscriptions table, which is expected to be
// the source of truth after a restart.
type Record struct {
	PaymentID string
	Status    models.PaymentStatus
	PlanID    models.PlanID
	AmountUSD float64
	Invoice   string // BOLT11, set once at creation
	Sats      int64
	CreatedAt time.Time
}

// Ledger is the injected store for payment records. No delete is exposed:
// records live for the life of the process.
type Ledger interface {
	Insert(rec *Record)
	Get(paymentID string) (*Record, bool)

	// MarkPaid flips the record to paid and reports whether this call
	// performed the transition. Paid is terminal: marking an already-paid
	// record is a no-op returning false.
	MarkPaid(paymentID string) bool

	// Pending returns the IDs of records still awaiting settlement, for the
	// background reconciler.
	Pending() []string
}

// MemoryLedger is the default Ledger: a mutex-guarded map. Not durable and
// not shared across restarts.
type MemoryLedger struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[string]*Record)}
}

func (l *MemoryLedger) Insert(rec *Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[rec.PaymentID] = rec
}

func (l *MemoryLedger) Get(paymentID string) (*Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.records[paymentID]
	if !ok {
		return nil, false
	}
	// Copy so callers cannot mutate ledger state outside MarkPaid.
	cp := *rec
	return &cp, true
}

func (l *MemoryLedger) MarkPaid(paymentID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[paymentID]
	if !ok || rec.Status == models.PaymentStatusPaid {
		return false
	}
	rec.Status = models.PaymentStatusPaid
	return true
}

func (l *MemoryLedger) Pending() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []string
	for id, rec := range l.records {
		if rec.Status == models.PaymentStatusPending {
			ids = append(ids, id)
		}
	}
	return ids
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewPaymentID generates an opaque payment identifier:
// pay_<unix millis>_<9 random base36 chars>.
func NewPaymentID() string {
	suffix := make([]byte, 9)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process is in serious trouble
			panic(err)
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("pay_%d_%s", time.Now().UnixMilli(), suffix)
}
