package ledger

// SourceKind tags the origin of a raw financial record.
type SourceKind string

const (
	KindService        SourceKind = "service"
	KindPathology      SourceKind = "pathology"
	KindAdmission      SourceKind = "admission"
	KindAdmissionEvent SourceKind = "admission_event"
	KindPayment        SourceKind = "payment"
	KindDiscount       SourceKind = "discount"
	KindRegistration   SourceKind = "registration"
)

// DoctorRef is a doctor object embedded inside a raw record.
type DoctorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderRef is an order object embedded inside a pathology record.
type OrderRef struct {
	OrderID       string   `json:"orderId"`
	ReceiptNumber string   `json:"receiptNumber"`
	Tests         []string `json:"tests"`
}

// EventRef is the nested admission-event container some records carry.
type EventRef struct {
	ReceiptNumber string `json:"receiptNumber"`
}

// AdmissionRef is the nested admission container some records carry.
type AdmissionRef struct {
	ReceiptNumber string `json:"receiptNumber"`
}

// RawEvent is one unmodified record as supplied by the data layer. The same
// logical field can live in several places depending on which upstream API
// produced the record; the engine only reads these, it never mutates them.
//
// Date fields are deliberately untyped: upstream encodes them as ISO strings,
// SQL-style strings, bare dates, or epoch numbers. The timestamp normalizer
// owns their interpretation.
type RawEvent struct {
	ID          string     `json:"id"`
	Kind        SourceKind `json:"sourceKind"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`

	ReceiptNumber string `json:"receiptNumber"`
	OrderNumber   string `json:"orderNumber"`

	Amount           *float64 `json:"amount"`
	Price            *float64 `json:"price"`
	TotalPrice       *float64 `json:"totalPrice"`
	CalculatedAmount *float64 `json:"calculatedAmount"`

	BillingQty *int `json:"billingQty"`
	StayDays   *int `json:"stayDays"`

	DoctorName string     `json:"doctorName"`
	DoctorID   string     `json:"doctorId"`
	Doctor     *DoctorRef `json:"doctor"`

	Order     *OrderRef     `json:"order"`
	Event     *EventRef     `json:"event"`
	Admission *AdmissionRef `json:"admission"`

	CreatedAt   any `json:"createdAt"`
	ScheduledAt any `json:"scheduledAt"`
	OrderedAt   any `json:"orderedAt"`

	// RawData is the original API payload, kept verbatim.
	RawData map[string]any `json:"rawData"`
}

// AdmissionRecord is an admission episode together with its event log. The
// event log may be empty; the aggregator then synthesizes a fallback event
// from the episode's own admission date.
type AdmissionRecord struct {
	RawEvent
	AdmissionDate any        `json:"admissionDate"`
	Events        []RawEvent `json:"events"`
}

// LedgerEvent is the canonical, timeline-ready projection of one RawEvent.
// Immutable after creation; it lives for one rendering pass only.
type LedgerEvent struct {
	ID            string         `json:"id"`
	Type          SourceKind     `json:"type"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Instant       int64          `json:"instant"`
	HasTime       bool           `json:"hasTime"`
	DisplayDate   string         `json:"displayDate"`
	Amount        float64        `json:"amount"`
	Quantity      int            `json:"quantity"`
	UnitRate      float64        `json:"unitRate"`
	ReceiptNumber string         `json:"receiptNumber"`
	DoctorName    string         `json:"doctorName"`
	PatientRef    string         `json:"patientRef"`
	Details       map[string]any `json:"details,omitempty"`
}

// amount returns the display amount for a raw record, trying the source
// specific fields in authority order.
func (ev *RawEvent) amount() float64 {
	for _, v := range []*float64{ev.Amount, ev.Price, ev.TotalPrice, ev.CalculatedAmount} {
		if v != nil {
			return *v
		}
	}
	return 0
}

// eventDate picks the most authoritative date field present on the record:
// creation time over scheduled time over order time.
func (ev *RawEvent) eventDate() any {
	for _, v := range []any{ev.CreatedAt, ev.ScheduledAt, ev.OrderedAt} {
		if v != nil {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			return v
		}
	}
	return nil
}

// testNameAdapters is the closed set of known containers a pathology order's
// test list can live in, tried in order. Pathology data is denormalized
// upstream, so the same list may arrive in any of these shapes.
var testNameAdapters = []func(*RawEvent) ([]string, bool){
	testsFromOrder,
	testsFromRawList,
	testsFromRawOrder,
}

// TestNames returns the test names bundled in a pathology order, regardless
// of which known container they arrived in.
func TestNames(ev *RawEvent) []string {
	for _, adapt := range testNameAdapters {
		if names, ok := adapt(ev); ok {
			return names
		}
	}
	return nil
}

func testsFromOrder(ev *RawEvent) ([]string, bool) {
	if ev.Order == nil || len(ev.Order.Tests) == 0 {
		return nil, false
	}
	return ev.Order.Tests, true
}

func testsFromRawList(ev *RawEvent) ([]string, bool) {
	if ev.RawData == nil {
		return nil, false
	}
	return testList(ev.RawData["tests"])
}

func testsFromRawOrder(ev *RawEvent) ([]string, bool) {
	if ev.RawData == nil {
		return nil, false
	}
	order, ok := ev.RawData["order"].(map[string]any)
	if !ok {
		return nil, false
	}
	return testList(order["tests"])
}

// testList normalizes a decoded JSON test list: either plain strings or
// objects carrying a "name" field.
func testList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			names = append(names, t)
		case map[string]any:
			if name, ok := t["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	return names, true
}
