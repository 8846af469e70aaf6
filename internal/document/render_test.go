package document

import (
	"strings"
	"testing"

	"github.com/hms/frontdesk/internal/ledger"
)

func sampleBill() BillData {
	return BillData{
		Hospital: Hospital{Name: "City Hospital", Address: "12 MG Road", Phone: "080-1234"},
		Patient:  ledger.PatientInfo{PatientID: "PAT-0042", Name: "Asha Verma", Age: 34, Gender: "F"},
		Events: []ledger.LedgerEvent{
			{
				ID: "s-1", Type: ledger.KindService, Title: "Consultation",
				DisplayDate: "01 Feb 2024, 10:00 AM", Amount: 500, Quantity: 1, UnitRate: 500,
				ReceiptNumber: "240201-OPD-0001", DoctorName: "Dr. Rao",
			},
		},
		Summary:     ledger.BillSummary{TotalCharges: 500, TotalPayments: 200, Balance: 300},
		GeneratedAt: "05 Mar 2024, 2:30 PM",
	}
}

func TestBill_EscapesHostileNames(t *testing.T) {
	data := sampleBill()
	data.Patient.Name = `<script>alert("pwn")</script>`
	data.Events[0].Description = `<img src=x onerror=alert(1)>`
	data.Events[0].DoctorName = `Dr. "O'Brien" & Co`

	out, err := NewRenderer().Bill(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>alert") {
		t.Error("script tag survived escaping")
	}
	if strings.Contains(out, "<img src=x") {
		t.Error("injected img tag survived escaping")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped script tag in output")
	}
}

func TestBill_MissingReceiptShowsSentinel(t *testing.T) {
	data := sampleBill()
	data.Events[0].ReceiptNumber = ""
	out, err := NewRenderer().Bill(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, ledger.ReceiptNotFound) {
		t.Error("expected RECEIPT-NOT-FOUND sentinel for blank receipt")
	}
}

func TestBill_BalanceClasses(t *testing.T) {
	cases := []struct {
		balance float64
		class   string
		label   string
	}{
		{300, "balance-due", "Balance Due"},
		{-300, "balance-refund", "Refund Due to Patient"},
		{0, "balance-settled", "Balance"},
	}
	for _, tc := range cases {
		data := sampleBill()
		data.Summary.Balance = tc.balance
		out, err := NewRenderer().Bill(data)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if !strings.Contains(out, tc.class) {
			t.Errorf("balance %v: missing class %q", tc.balance, tc.class)
		}
		if !strings.Contains(out, tc.label) {
			t.Errorf("balance %v: missing label %q", tc.balance, tc.label)
		}
	}
}

func TestBill_DegradedNotice(t *testing.T) {
	data := sampleBill()
	data.Degraded = true
	out, err := NewRenderer().Bill(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "pending reconciliation") {
		t.Error("expected degraded notice")
	}
}

func TestReceipt_SingleItem(t *testing.T) {
	bill := sampleBill()
	out, err := NewRenderer().Receipt(ReceiptData{
		Hospital: bill.Hospital,
		Patient:  bill.Patient,
		Event:    bill.Events[0],
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "240201-OPD-0001") {
		t.Error("receipt number missing")
	}
	if !strings.Contains(out, "Dr. Rao") {
		t.Error("doctor missing")
	}
}

func TestAdhocBill_Renders(t *testing.T) {
	items := []*ledger.BillLineItem{
		ledger.NewBillLineItem("05 Mar 2024", "Dressing", 3, 100),
	}
	out, err := NewRenderer().AdhocBill(AdhocBillData{
		Hospital:    Hospital{Name: "City Hospital"},
		BillNumber:  "240305-BILL-0001",
		PatientName: "Walk-in",
		Date:        "05 Mar 2024",
		Items:       items,
		Summary:     ledger.SummarizeLineItems(items, 0, 0),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "240305-BILL-0001") {
		t.Error("bill number missing")
	}
	if !strings.Contains(out, "Dressing") {
		t.Error("line item missing")
	}
}
