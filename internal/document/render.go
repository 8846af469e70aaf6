package document

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/hms/frontdesk/internal/ledger"
)

// Hospital is the letterhead printed on every document.
type Hospital struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logoUrl"`
}

// BillData is the payload for a comprehensive patient statement.
type BillData struct {
	Hospital    Hospital
	Patient     ledger.PatientInfo
	GeneratedAt string
	Events      []ledger.LedgerEvent
	Summary     ledger.BillSummary
	Degraded    bool
}

// ReceiptData is the payload for a single-item receipt.
type ReceiptData struct {
	Hospital Hospital
	Patient  ledger.PatientInfo
	Event    ledger.LedgerEvent
}

// AdhocBillData is the payload for a manually composed bill.
type AdhocBillData struct {
	Hospital    Hospital
	BillNumber  string
	PatientName string
	Date        string
	Items       []*ledger.BillLineItem
	Summary     ledger.BillSummary
}

// Renderer turns reconciled ledger data into print-ready HTML. It is a pure
// function of its payload: no I/O happens here, the surrounding handler
// owns the print surface.
type Renderer struct {
	bill    *template.Template
	receipt *template.Template
	adhoc   *template.Template
}

var templateFuncs = template.FuncMap{
	"inr":  FormatINR,
	"logo": SafeImageURL,
	"receipt": func(n string) string {
		if strings.TrimSpace(n) == "" {
			return ledger.ReceiptNotFound
		}
		return n
	},
	"balanceClass": balanceClass,
	"balanceLabel": balanceLabel,
}

// balanceClass styles the balance row: owed by patient, owed by hospital,
// or settled.
func balanceClass(s ledger.BillSummary) string {
	switch {
	case s.Balance > 0:
		return "balance-due"
	case s.Balance < 0:
		return "balance-refund"
	default:
		return "balance-settled"
	}
}

func balanceLabel(s ledger.BillSummary) string {
	switch {
	case s.Balance > 0:
		return "Balance Due"
	case s.Balance < 0:
		return "Refund Due to Patient"
	default:
		return "Balance"
	}
}

// NewRenderer parses the built-in templates. Parse errors are programming
// errors, so this panics rather than returning one.
func NewRenderer() *Renderer {
	return &Renderer{
		bill:    template.Must(template.New("bill").Funcs(templateFuncs).Parse(billTemplate)),
		receipt: template.Must(template.New("receipt").Funcs(templateFuncs).Parse(receiptTemplate)),
		adhoc:   template.Must(template.New("adhoc").Funcs(templateFuncs).Parse(adhocBillTemplate)),
	}
}

// Bill renders the comprehensive statement. Only printable events appear;
// the registration anchor is filtered out by the caller via
// ledger.Printable.
func (r *Renderer) Bill(data BillData) (string, error) {
	var b strings.Builder
	if err := r.bill.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render bill: %w", err)
	}
	return b.String(), nil
}

// Receipt renders a single-item receipt.
func (r *Renderer) Receipt(data ReceiptData) (string, error) {
	var b strings.Builder
	if err := r.receipt.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return b.String(), nil
}

// AdhocBill renders a manually composed bill.
func (r *Renderer) AdhocBill(data AdhocBillData) (string, error) {
	var b strings.Builder
	if err := r.adhoc.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render adhoc bill: %w", err)
	}
	return b.String(), nil
}
