package ledger

import (
	"context"
	"sort"
	"time"
)

// NoDoctorAssigned is the terminal fallback of the doctor-name chain.
const NoDoctorAssigned = "No Doctor Assigned"

// PatientInfo is the patient record as supplied by the registry.
type PatientInfo struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt any    `json:"createdAt"`
}

// DoctorInfo is one entry of the doctor directory.
type DoctorInfo struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
}

// Snapshot is one patient's raw records across every source, as fetched by
// the data layer. Each aggregation pass takes a fresh snapshot and produces
// an independently owned timeline; passes never share state.
type Snapshot struct {
	Patient    PatientInfo
	Doctors    []DoctorInfo
	Services   []RawEvent
	Pathology  []RawEvent
	Admissions []AdmissionRecord
	Payments   []RawEvent
	Discounts  []RawEvent
}

// Aggregator merges heterogeneous raw records into one chronologically
// consistent timeline of LedgerEvents.
type Aggregator struct {
	receipts    *ReceiptResolver
	displayZone string
}

// NewAggregator creates an aggregator. receipts may be nil; missing receipt
// numbers then resolve to the ReceiptNotGenerated sentinel instead of being
// minted.
func NewAggregator(receipts *ReceiptResolver, displayZone string) *Aggregator {
	return &Aggregator{receipts: receipts, displayZone: displayZone}
}

// Aggregate maps every raw record 1:1 to a LedgerEvent and returns them
// stable-sorted ascending by instant, ties broken by id, so repeated runs
// over the same snapshot produce the same order. Unparsable dates sort last.
func (a *Aggregator) Aggregate(ctx context.Context, snap Snapshot) []LedgerEvent {
	doctors := make(map[string]string, len(snap.Doctors))
	for _, d := range snap.Doctors {
		doctors[d.ID] = d.Name
	}

	events := make([]LedgerEvent, 0,
		1+len(snap.Services)+len(snap.Pathology)+len(snap.Admissions)+len(snap.Payments)+len(snap.Discounts))

	events = append(events, a.registrationAnchor(snap.Patient))

	for i := range snap.Services {
		events = append(events, a.project(ctx, &snap.Services[i], snap.Patient, doctors))
	}
	for i := range snap.Pathology {
		events = append(events, a.project(ctx, &snap.Pathology[i], snap.Patient, doctors))
	}
	for i := range snap.Admissions {
		events = append(events, a.admissionEvents(ctx, &snap.Admissions[i], snap.Patient, doctors)...)
	}
	for i := range snap.Payments {
		events = append(events, a.project(ctx, &snap.Payments[i], snap.Patient, doctors))
	}
	for i := range snap.Discounts {
		events = append(events, a.project(ctx, &snap.Discounts[i], snap.Patient, doctors))
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Instant != events[j].Instant {
			return events[i].Instant < events[j].Instant
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// Printable filters the timeline down to per-event printable entries:
// everything except the registration anchor, which has no monetary value
// and no receipt.
func Printable(events []LedgerEvent) []LedgerEvent {
	out := make([]LedgerEvent, 0, len(events))
	for _, ev := range events {
		if ev.Type == KindRegistration {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// registrationAnchor synthesizes the always-present earliest timeline entry.
func (a *Aggregator) registrationAnchor(p PatientInfo) LedgerEvent {
	stamp := NormalizeIn(p.CreatedAt, a.displayZone)
	return LedgerEvent{
		ID:          "registration-" + p.ID,
		Type:        KindRegistration,
		Title:       "Patient Registration",
		Description: "Registered as " + p.PatientID,
		Instant:     stamp.SortKey(),
		HasTime:     stamp.HasTime,
		DisplayDate: stamp.Display,
		Quantity:    1,
		PatientRef:  p.PatientID,
	}
}

// admissionEvents projects an admission episode. Episodes without any
// recorded sub-events synthesize exactly one fallback admission event dated
// at the episode's own admission date, so every admission appears on the
// timeline even when no event log exists. The row's creation time applies
// only when no admission date was recorded; backdated admissions keep their
// admission date.
func (a *Aggregator) admissionEvents(ctx context.Context, adm *AdmissionRecord, p PatientInfo, doctors map[string]string) []LedgerEvent {
	if len(adm.Events) == 0 {
		fallback := adm.RawEvent
		fallback.Kind = KindAdmission
		if adm.AdmissionDate != nil {
			if s, ok := adm.AdmissionDate.(string); !ok || s != "" {
				fallback.CreatedAt = adm.AdmissionDate
			}
		}
		if fallback.Title == "" {
			fallback.Title = "Admission"
		}
		return []LedgerEvent{a.project(ctx, &fallback, p, doctors)}
	}

	out := make([]LedgerEvent, 0, len(adm.Events))
	for i := range adm.Events {
		out = append(out, a.project(ctx, &adm.Events[i], p, doctors))
	}
	return out
}

// project converts exactly one RawEvent into its canonical LedgerEvent.
func (a *Aggregator) project(ctx context.Context, ev *RawEvent, p PatientInfo, doctors map[string]string) LedgerEvent {
	stamp := NormalizeIn(ev.eventDate(), a.displayZone)
	amount := ev.amount()
	lq := ExtractQuantity(ev)

	unitRate := amount
	if lq.Quantity > 1 {
		unitRate = amount / float64(lq.Quantity)
	}

	out := LedgerEvent{
		ID:            ev.ID,
		Type:          ev.Kind,
		Title:         eventTitle(ev),
		Description:   lq.Description,
		Instant:       stamp.SortKey(),
		HasTime:       stamp.HasTime,
		DisplayDate:   stamp.Display,
		Amount:        amount,
		Quantity:      lq.Quantity,
		UnitRate:      unitRate,
		ReceiptNumber: a.resolveReceipt(ctx, ev, stamp),
		DoctorName:    resolveDoctorName(ev, doctors),
		PatientRef:    p.PatientID,
	}

	if ev.Kind == KindPathology {
		out.Details = map[string]any{
			"orderNumber": PathologyOrderNumber(ev),
		}
		if tests := TestNames(ev); tests != nil {
			out.Details["tests"] = tests
		}
	}
	return out
}

func (a *Aggregator) resolveReceipt(ctx context.Context, ev *RawEvent, stamp Stamp) string {
	if a.receipts == nil {
		if n, ok := LookupReceiptNumber(ev); ok {
			return n
		}
		return ReceiptNotGenerated
	}
	day := stamp.Instant
	if !stamp.Valid {
		day = time.Time{}
	}
	return a.receipts.Resolve(ctx, ev, day)
}

func eventTitle(ev *RawEvent) string {
	if ev.Title != "" {
		return ev.Title
	}
	switch ev.Kind {
	case KindService:
		return "Service"
	case KindPathology:
		return "Pathology Order"
	case KindAdmission:
		return "Admission"
	case KindAdmissionEvent:
		return "Admission Event"
	case KindPayment:
		return "Payment"
	case KindDiscount:
		return "Discount"
	default:
		return string(ev.Kind)
	}
}

// resolveDoctorName walks the doctor fallback chain: direct name, nested
// doctor object, directory lookup by id, raw-data doctor id, then the
// terminal sentinel.
func resolveDoctorName(ev *RawEvent, doctors map[string]string) string {
	if ev.DoctorName != "" {
		return ev.DoctorName
	}
	if ev.Doctor != nil && ev.Doctor.Name != "" {
		return ev.Doctor.Name
	}
	if ev.DoctorID != "" {
		if name, ok := doctors[ev.DoctorID]; ok && name != "" {
			return name
		}
	}
	if ev.RawData != nil {
		if id, ok := ev.RawData["doctorId"].(string); ok {
			if name, ok := doctors[id]; ok && name != "" {
				return name
			}
		}
	}
	return NoDoctorAssigned
}
