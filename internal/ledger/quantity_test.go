package ledger

import "testing"

func intPtr(n int) *int { return &n }

func TestExtractQuantity_ServiceSuffix(t *testing.T) {
	ev := &RawEvent{Kind: KindService, Description: "Dressing (x3)"}
	lq := ExtractQuantity(ev)
	if lq.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", lq.Quantity)
	}
	if lq.Description != "Dressing" {
		t.Errorf("description = %q, want %q", lq.Description, "Dressing")
	}
}

func TestExtractQuantity_ServiceBillingQtyWins(t *testing.T) {
	ev := &RawEvent{Kind: KindService, Description: "Dressing (x3)", BillingQty: intPtr(5)}
	lq := ExtractQuantity(ev)
	if lq.Quantity != 5 {
		t.Errorf("quantity = %d, want 5 from billing_qty", lq.Quantity)
	}
	// Structured quantity wins; the suffix stays in the description.
	if lq.Description != "Dressing (x3)" {
		t.Errorf("description = %q", lq.Description)
	}
}

func TestExtractQuantity_ServiceDefault(t *testing.T) {
	ev := &RawEvent{Kind: KindService, Description: "X-Ray Chest"}
	lq := ExtractQuantity(ev)
	if lq.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", lq.Quantity)
	}
}

func TestExtractQuantity_AdmissionStayDays(t *testing.T) {
	ev := &RawEvent{Kind: KindAdmission, Description: "General Ward", StayDays: intPtr(4)}
	lq := ExtractQuantity(ev)
	if lq.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", lq.Quantity)
	}
}

func TestExtractQuantity_AdmissionDescriptionDays(t *testing.T) {
	cases := []struct {
		desc string
		want int
	}{
		{"General Ward 3 days", 3},
		{"ICU 1 day", 1},
		{"Private Room 12 Days", 12},
		{"General Ward", 1},
	}
	for _, tc := range cases {
		ev := &RawEvent{Kind: KindAdmission, Description: tc.desc}
		if got := ExtractQuantity(ev).Quantity; got != tc.want {
			t.Errorf("%q: quantity = %d, want %d", tc.desc, got, tc.want)
		}
	}
}

func TestExtractQuantity_PathologyAlwaysOne(t *testing.T) {
	ev := &RawEvent{
		Kind:        KindPathology,
		Description: "CBC, LFT, KFT (x3)",
	}
	lq := ExtractQuantity(ev)
	if lq.Quantity != 1 {
		t.Errorf("pathology quantity = %d, want 1", lq.Quantity)
	}
}

func TestExtractQuantity_UnitRateDivision(t *testing.T) {
	// The consumer divides amount by quantity; "Dressing (x3)" at 300
	// total must imply a 100 unit rate.
	ev := &RawEvent{Kind: KindService, Description: "Dressing (x3)"}
	lq := ExtractQuantity(ev)
	amount := 300.0
	if rate := amount / float64(lq.Quantity); rate != 100 {
		t.Errorf("unit rate = %v, want 100", rate)
	}
}
