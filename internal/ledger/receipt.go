package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel receipt numbers. Documents print with a visibly incomplete
// number rather than failing outright.
const (
	ReceiptNotFound     = "RECEIPT-NOT-FOUND"
	ReceiptNotGenerated = "RECEIPT-NOT-GENERATED"
)

// Receipt type codes. Uniqueness of minted numbers is scoped to
// (date, type code).
const (
	TypeCodeOPD       = "OPD"
	TypeCodeService   = "SER"
	TypeCodeLab       = "LAB"
	TypeCodeAdmission = "ADM"
	TypeCodeBill      = "BILL"
	TypeCodeFallback  = "FAKE"
)

// SequenceSource hands out the next per-day sequence number for a receipt
// category. The production implementation calls the daily-counter service;
// tests supply a deterministic fake.
type SequenceSource interface {
	NextSequence(ctx context.Context, typeCode string, day time.Time) (int, error)
}

// receiptAccessors is the lookup chain for an already-assigned receipt
// number. Receipt numbers are denormalized across several containers
// upstream; keeping the fallback policy as an ordered list keeps it
// auditable instead of burying it in conditionals.
var receiptAccessors = []func(*RawEvent) string{
	func(ev *RawEvent) string { return ev.ReceiptNumber },
	func(ev *RawEvent) string {
		if ev.Order != nil {
			return ev.Order.ReceiptNumber
		}
		return ""
	},
	func(ev *RawEvent) string {
		if ev.Event != nil {
			return ev.Event.ReceiptNumber
		}
		return ""
	},
	func(ev *RawEvent) string {
		if ev.Admission != nil {
			return ev.Admission.ReceiptNumber
		}
		return ""
	},
	rawDataReceipt,
}

func rawDataReceipt(ev *RawEvent) string {
	if ev.RawData == nil {
		return ""
	}
	if s, ok := ev.RawData["receiptNumber"].(string); ok {
		return s
	}
	for _, key := range []string{"order", "event", "admission"} {
		if nested, ok := ev.RawData[key].(map[string]any); ok {
			if s, ok := nested["receiptNumber"].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// LookupReceiptNumber walks the accessor chain and returns the first
// non-empty receipt number already stored on the event.
func LookupReceiptNumber(ev *RawEvent) (string, bool) {
	for _, access := range receiptAccessors {
		if n := access(ev); n != "" {
			return n, true
		}
	}
	return "", false
}

// pathologyOrderAccessors mirrors the receipt chain for the pathology order
// number, which is denormalized across three possible containers.
var pathologyOrderAccessors = []func(*RawEvent) string{
	func(ev *RawEvent) string { return ev.OrderNumber },
	func(ev *RawEvent) string {
		if ev.Order != nil {
			return ev.Order.OrderID
		}
		return ""
	},
	func(ev *RawEvent) string {
		if ev.RawData == nil {
			return ""
		}
		if s, ok := ev.RawData["orderId"].(string); ok {
			return s
		}
		return ""
	},
	func(ev *RawEvent) string { return ev.ID },
}

// PathologyOrderNumber resolves the display order number for a pathology
// record, falling back to the record's own id.
func PathologyOrderNumber(ev *RawEvent) string {
	for _, access := range pathologyOrderAccessors {
		if n := access(ev); n != "" {
			return n
		}
	}
	return ev.ID
}

// TypeCodeFor maps an event to its receipt category code.
func TypeCodeFor(kind SourceKind, category string) string {
	switch kind {
	case KindService:
		switch category {
		case "opd", "consultation":
			return TypeCodeOPD
		}
		return TypeCodeService
	case KindPathology:
		return TypeCodeLab
	case KindAdmission, KindAdmissionEvent:
		return TypeCodeAdmission
	case KindPayment, KindDiscount:
		return TypeCodeBill
	default:
		return TypeCodeFallback
	}
}

// ReceiptResolver finds or mints the canonical receipt number for an event.
// Minted numbers come from the injected SequenceSource; when that source is
// unreachable the resolver degrades to a monotonic in-process counter seeded
// at 1. Degraded numbers may collide across client instances and are flagged
// for later reconciliation, never silently accepted as canonical.
type ReceiptResolver struct {
	seq        SequenceSource
	log        zerolog.Logger
	now        func() time.Time
	onDegraded func()

	mu       sync.Mutex
	local    map[string]int
	degraded bool
}

// NewReceiptResolver creates a resolver. seq may be nil, in which case every
// mint uses the local fallback counter.
func NewReceiptResolver(seq SequenceSource, log zerolog.Logger) *ReceiptResolver {
	return &ReceiptResolver{
		seq:   seq,
		log:   log,
		now:   time.Now,
		local: make(map[string]int),
	}
}

// OnDegraded registers a hook invoked once per degraded mint, e.g. to bump
// a metrics counter.
func (r *ReceiptResolver) OnDegraded(fn func()) { r.onDegraded = fn }

// Degraded reports whether any number was minted from the local fallback
// counter since the resolver was created.
func (r *ReceiptResolver) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

// Resolve returns the canonical receipt number for an event: an already
// stored number when one exists anywhere in the record, a freshly minted
// one otherwise. day anchors the minted number's date scope; a zero day
// falls back to the current date.
func (r *ReceiptResolver) Resolve(ctx context.Context, ev *RawEvent, day time.Time) string {
	if n, ok := LookupReceiptNumber(ev); ok {
		return n
	}
	return r.Mint(ctx, TypeCodeFor(ev.Kind, ev.Category), day)
}

// Mint generates a new "{YYMMDD}-{TYPECODE}-{NNNN}" number. Numbers are
// never reused or recycled.
func (r *ReceiptResolver) Mint(ctx context.Context, typeCode string, day time.Time) string {
	if day.IsZero() {
		day = r.now()
	}
	seq := r.nextSequence(ctx, typeCode, day)
	return fmt.Sprintf("%s-%s-%04d", day.Format("060102"), typeCode, seq)
}

func (r *ReceiptResolver) nextSequence(ctx context.Context, typeCode string, day time.Time) int {
	if r.seq != nil {
		n, err := r.seq.NextSequence(ctx, typeCode, day)
		if err == nil {
			return n
		}
		r.log.Warn().
			Err(err).
			Str("type_code", typeCode).
			Str("date", day.Format("2006-01-02")).
			Msg("daily-counter service unavailable, minting receipt number in degraded mode")
	}

	r.mu.Lock()
	key := typeCode + "|" + day.Format("060102")
	r.local[key]++
	n := r.local[key]
	r.degraded = true
	r.mu.Unlock()

	if r.onDegraded != nil {
		r.onDegraded()
	}
	return n
}
