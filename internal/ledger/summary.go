package ledger

import (
	"encoding/json"
	"math"
)

// BillSummary is the reconciled financial roll-up of a timeline. The
// invariant balance = charges - payments - discounts holds exactly: all
// arithmetic happens in paise and the float fields are derived from the
// same integer sums.
type BillSummary struct {
	TotalCharges   float64 `json:"totalCharges"`
	TotalPayments  float64 `json:"totalPayments"`
	TotalDiscounts float64 `json:"totalDiscounts"`
	Balance        float64 `json:"balance"`
}

func toPaise(v float64) int64 { return int64(math.Round(v * 100)) }

func fromPaise(p int64) float64 { return float64(p) / 100 }

// Summarize reduces a timeline into its financial summary. Charges are
// every typed amount that is neither a payment nor a discount; the
// registration anchor carries no amount. A negative balance is valid and
// means the hospital owes the patient.
func Summarize(events []LedgerEvent) BillSummary {
	var charges, payments, discounts int64
	for _, ev := range events {
		switch ev.Type {
		case KindPayment:
			payments += toPaise(ev.Amount)
		case KindDiscount:
			discounts += toPaise(ev.Amount)
		default:
			charges += toPaise(ev.Amount)
		}
	}
	return BillSummary{
		TotalCharges:   fromPaise(charges),
		TotalPayments:  fromPaise(payments),
		TotalDiscounts: fromPaise(discounts),
		Balance:        fromPaise(charges - payments - discounts),
	}
}

// SummarizeLineItems computes the summary for an ad-hoc, manually composed
// bill. Each line amount is already invariant-enforced as rate x quantity.
func SummarizeLineItems(items []*BillLineItem, payments, discounts float64) BillSummary {
	var charges int64
	for _, li := range items {
		charges += li.amountPaise
	}
	p := toPaise(payments)
	d := toPaise(discounts)
	return BillSummary{
		TotalCharges:   fromPaise(charges),
		TotalPayments:  fromPaise(p),
		TotalDiscounts: fromPaise(d),
		Balance:        fromPaise(charges - p - d),
	}
}

// BillLineItem is one line of a manually composed bill. Its fields are
// unexported so that amount = rate x quantity is enforced on every
// mutation, not just at creation.
type BillLineItem struct {
	date        string
	description string
	quantity    int
	ratePaise   int64
	amountPaise int64
}

// NewBillLineItem creates a line item. Quantity is clamped to at least 1.
func NewBillLineItem(date, description string, quantity int, rate float64) *BillLineItem {
	li := &BillLineItem{date: date, description: description}
	li.quantity = quantity
	if li.quantity < 1 {
		li.quantity = 1
	}
	li.ratePaise = toPaise(rate)
	li.recompute()
	return li
}

func (li *BillLineItem) recompute() {
	li.amountPaise = li.ratePaise * int64(li.quantity)
}

// SetQuantity updates the quantity and recomputes the amount.
func (li *BillLineItem) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	li.quantity = q
	li.recompute()
}

// SetRate updates the unit rate and recomputes the amount.
func (li *BillLineItem) SetRate(rate float64) {
	li.ratePaise = toPaise(rate)
	li.recompute()
}

// SetDescription updates the free-text description.
func (li *BillLineItem) SetDescription(d string) { li.description = d }

func (li *BillLineItem) Date() string        { return li.date }
func (li *BillLineItem) Description() string { return li.description }
func (li *BillLineItem) Quantity() int       { return li.quantity }
func (li *BillLineItem) Rate() float64       { return fromPaise(li.ratePaise) }
func (li *BillLineItem) Amount() float64     { return fromPaise(li.amountPaise) }

type billLineItemJSON struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// MarshalJSON renders the line item with its derived amount.
func (li *BillLineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(billLineItemJSON{
		Date:        li.date,
		Description: li.description,
		Quantity:    li.quantity,
		Rate:        li.Rate(),
		Amount:      li.Amount(),
	})
}

// UnmarshalJSON decodes a line item. Any supplied amount is discarded and
// recomputed from rate x quantity, so the invariant survives round-trips
// through callers that edit fields independently.
func (li *BillLineItem) UnmarshalJSON(data []byte) error {
	var raw billLineItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*li = BillLineItem{date: raw.Date, description: raw.Description}
	li.quantity = raw.Quantity
	if li.quantity < 1 {
		li.quantity = 1
	}
	li.ratePaise = toPaise(raw.Rate)
	li.recompute()
	return nil
}
