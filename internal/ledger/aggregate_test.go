package ledger

import (
	"context"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func testAggregator() *Aggregator {
	return NewAggregator(nil, "")
}

func basePatient() PatientInfo {
	return PatientInfo{
		ID:        "p-1",
		PatientID: "PAT-0042",
		Name:      "Asha Verma",
		CreatedAt: "2024-01-01 09:00:00",
	}
}

func TestAggregate_RegistrationAnchorAlwaysPresent(t *testing.T) {
	events := testAggregator().Aggregate(context.Background(), Snapshot{Patient: basePatient()})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	anchor := events[0]
	if anchor.Type != KindRegistration {
		t.Errorf("type = %s", anchor.Type)
	}
	if anchor.ID != "registration-p-1" {
		t.Errorf("id = %q", anchor.ID)
	}
	if anchor.Title != "Patient Registration" {
		t.Errorf("title = %q", anchor.Title)
	}
	if anchor.Description != "Registered as PAT-0042" {
		t.Errorf("description = %q", anchor.Description)
	}
	if anchor.Amount != 0 {
		t.Errorf("anchor amount = %v, want 0", anchor.Amount)
	}
}

func TestPrintable_DropsRegistrationAnchor(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{ID: "s-1", Kind: KindService, Price: floatPtr(500), CreatedAt: "2024-01-02 10:00:00"},
		},
	}
	events := testAggregator().Aggregate(context.Background(), snap)
	printable := Printable(events)
	if len(printable) != 1 {
		t.Fatalf("expected 1 printable event, got %d", len(printable))
	}
	if printable[0].ID != "s-1" {
		t.Errorf("printable event = %q", printable[0].ID)
	}
}

func TestAggregate_ChronologicalOrder(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{ID: "s-late", Kind: KindService, CreatedAt: "2024-03-01 10:00:00"},
			{ID: "s-early", Kind: KindService, CreatedAt: "2024-01-05 10:00:00"},
		},
		Payments: []RawEvent{
			{ID: "pay-1", Kind: KindPayment, CreatedAt: "2024-02-01 10:00:00"},
		},
	}
	events := testAggregator().Aggregate(context.Background(), snap)
	got := make([]string, len(events))
	for i, ev := range events {
		got[i] = ev.ID
	}
	want := []string{"registration-p-1", "s-early", "pay-1", "s-late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAggregate_TieBreakByID(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{ID: "b", Kind: KindService, CreatedAt: "2024-02-01 10:00:00"},
			{ID: "a", Kind: KindService, CreatedAt: "2024-02-01 10:00:00"},
		},
	}
	for run := 0; run < 5; run++ {
		events := testAggregator().Aggregate(context.Background(), snap)
		if events[1].ID != "a" || events[2].ID != "b" {
			t.Fatalf("run %d: tie not broken by id: %s, %s", run, events[1].ID, events[2].ID)
		}
	}
}

func TestAggregate_InvalidDatesSortLast(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{ID: "s-undated", Kind: KindService, CreatedAt: "not a date"},
			{ID: "s-dated", Kind: KindService, CreatedAt: "2024-02-01 10:00:00"},
		},
	}
	events := testAggregator().Aggregate(context.Background(), snap)
	last := events[len(events)-1]
	if last.ID != "s-undated" {
		t.Errorf("undated event must sort last, got %q", last.ID)
	}
	if last.DisplayDate != DisplayNotAvailable {
		t.Errorf("display = %q", last.DisplayDate)
	}
}

func TestAggregate_AdmissionFallbackSynthesis(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Admissions: []AdmissionRecord{
			{
				RawEvent: RawEvent{
					ID:               "adm-1",
					Kind:             KindAdmission,
					Description:      "General Ward",
					CalculatedAmount: floatPtr(4000),
					StayDays:         intPtr(4),
				},
				AdmissionDate: "2024-02-10",
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if len(events) != 1 {
		t.Fatalf("expected exactly one synthesized event, got %d", len(events))
	}
	ev := events[0]
	if ev.Title != "Admission" {
		t.Errorf("title = %q", ev.Title)
	}
	if ev.DisplayDate != "10 Feb 2024" {
		t.Errorf("display = %q, want admission date", ev.DisplayDate)
	}
	if ev.Quantity != 4 {
		t.Errorf("quantity = %d, want stay days", ev.Quantity)
	}
	if ev.UnitRate != 1000 {
		t.Errorf("unit rate = %v, want 1000", ev.UnitRate)
	}
}

func TestAggregate_AdmissionFallbackPrefersAdmissionDate(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Admissions: []AdmissionRecord{
			{
				RawEvent: RawEvent{
					ID:               "adm-1",
					Kind:             KindAdmission,
					CalculatedAmount: floatPtr(4000),
					CreatedAt:        "2024-03-01 09:00:00",
				},
				AdmissionDate: "2024-02-10",
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if len(events) != 1 {
		t.Fatalf("expected one synthesized event, got %d", len(events))
	}
	if events[0].DisplayDate != "10 Feb 2024" {
		t.Errorf("display = %q, want the admission date over the row creation time", events[0].DisplayDate)
	}
}

func TestAggregate_AdmissionFallbackWithoutAdmissionDate(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Admissions: []AdmissionRecord{
			{
				RawEvent: RawEvent{
					ID:               "adm-1",
					Kind:             KindAdmission,
					CalculatedAmount: floatPtr(4000),
					CreatedAt:        "2024-03-01 09:00:00",
				},
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if events[0].DisplayDate != "01 Mar 2024, 9:00 AM" {
		t.Errorf("display = %q, want the row creation time", events[0].DisplayDate)
	}
}

func TestAggregate_AdmissionWithEventsUsesEventLog(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Admissions: []AdmissionRecord{
			{
				RawEvent:      RawEvent{ID: "adm-1", Kind: KindAdmission},
				AdmissionDate: "2024-02-10",
				Events: []RawEvent{
					{ID: "ae-1", Kind: KindAdmissionEvent, Title: "Room Charge", CalculatedAmount: floatPtr(1500), CreatedAt: "2024-02-10 20:00:00"},
					{ID: "ae-2", Kind: KindAdmissionEvent, Title: "Nursing", CalculatedAmount: floatPtr(300), CreatedAt: "2024-02-11 08:00:00"},
				},
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if len(events) != 2 {
		t.Fatalf("expected 2 events from the log, got %d", len(events))
	}
	if events[0].ID != "ae-1" || events[1].ID != "ae-2" {
		t.Errorf("events = %s, %s", events[0].ID, events[1].ID)
	}
}

func TestAggregate_DoctorNameChain(t *testing.T) {
	doctors := []DoctorInfo{{ID: "doc-1", Name: "Dr. Rao"}}
	cases := []struct {
		name string
		ev   RawEvent
		want string
	}{
		{"direct name", RawEvent{DoctorName: "Dr. Direct"}, "Dr. Direct"},
		{"nested object", RawEvent{Doctor: &DoctorRef{Name: "Dr. Nested"}}, "Dr. Nested"},
		{"directory lookup", RawEvent{DoctorID: "doc-1"}, "Dr. Rao"},
		{"raw data id", RawEvent{RawData: map[string]any{"doctorId": "doc-1"}}, "Dr. Rao"},
		{"unknown id", RawEvent{DoctorID: "doc-404"}, NoDoctorAssigned},
		{"nothing", RawEvent{}, NoDoctorAssigned},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := Snapshot{Patient: basePatient(), Doctors: doctors}
			tc.ev.ID = "s-1"
			tc.ev.Kind = KindService
			tc.ev.CreatedAt = "2024-02-01 10:00:00"
			snap.Services = []RawEvent{tc.ev}

			events := Printable(testAggregator().Aggregate(context.Background(), snap))
			if events[0].DoctorName != tc.want {
				t.Errorf("doctor = %q, want %q", events[0].DoctorName, tc.want)
			}
		})
	}
}

func TestAggregate_PathologyDetails(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Pathology: []RawEvent{
			{
				ID:         "path-1",
				Kind:       KindPathology,
				TotalPrice: floatPtr(1200),
				OrderedAt:  "2024-02-05 09:00:00",
				Order:      &OrderRef{OrderID: "ORD-77", Tests: []string{"CBC", "LFT"}},
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	ev := events[0]
	if ev.Details["orderNumber"] != "ORD-77" {
		t.Errorf("orderNumber = %v", ev.Details["orderNumber"])
	}
	tests, _ := ev.Details["tests"].([]string)
	if len(tests) != 2 || tests[0] != "CBC" {
		t.Errorf("tests = %v", tests)
	}
	if ev.Quantity != 1 {
		t.Errorf("pathology quantity = %d, want 1", ev.Quantity)
	}
	if ev.UnitRate != 1200 {
		t.Errorf("unit rate = %v, want order total", ev.UnitRate)
	}
}

func TestAggregate_NilResolverUsesSentinel(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{ID: "s-1", Kind: KindService, CreatedAt: "2024-02-01 10:00:00"},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if events[0].ReceiptNumber != ReceiptNotGenerated {
		t.Errorf("receipt = %q, want %q", events[0].ReceiptNumber, ReceiptNotGenerated)
	}
}

func TestAggregate_AmountAuthorityOrder(t *testing.T) {
	snap := Snapshot{
		Patient: basePatient(),
		Services: []RawEvent{
			{
				ID:               "s-1",
				Kind:             KindService,
				Amount:           floatPtr(100),
				Price:            floatPtr(200),
				TotalPrice:       floatPtr(300),
				CalculatedAmount: floatPtr(400),
				CreatedAt:        "2024-02-01 10:00:00",
			},
		},
	}
	events := Printable(testAggregator().Aggregate(context.Background(), snap))
	if events[0].Amount != 100 {
		t.Errorf("amount = %v, want the amount field to win", events[0].Amount)
	}
}

func TestTestNames_Shapes(t *testing.T) {
	cases := []struct {
		name string
		ev   RawEvent
		want []string
	}{
		{
			"typed order",
			RawEvent{Order: &OrderRef{Tests: []string{"CBC"}}},
			[]string{"CBC"},
		},
		{
			"raw string list",
			RawEvent{RawData: map[string]any{"tests": []any{"CBC", "LFT"}}},
			[]string{"CBC", "LFT"},
		},
		{
			"raw object list",
			RawEvent{RawData: map[string]any{"tests": []any{map[string]any{"name": "KFT"}}}},
			[]string{"KFT"},
		},
		{
			"nested raw order",
			RawEvent{RawData: map[string]any{"order": map[string]any{"tests": []any{"TSH"}}}},
			[]string{"TSH"},
		},
		{
			"none",
			RawEvent{},
			nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TestNames(&tc.ev)
			if len(got) != len(tc.want) {
				t.Fatalf("tests = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("tests = %v, want %v", got, tc.want)
				}
			}
		})
	}
}
