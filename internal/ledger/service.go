package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Statement is one full reconciliation pass over a patient's records: the
// ordered timeline, its financial summary, and the degraded-mode flag
// callers use to schedule receipt-number reconciliation.
type Statement struct {
	Patient  PatientInfo   `json:"patient"`
	Events   []LedgerEvent `json:"events"`
	Summary  BillSummary   `json:"summary"`
	Degraded bool          `json:"degraded"`
}

// Service ties record loading to the aggregation engine. Every call
// recomputes from a fresh snapshot; there is no shared mutable state
// between invocations.
type Service struct {
	repo     Repository
	agg      *Aggregator
	receipts *ReceiptResolver
	log      zerolog.Logger
}

// NewService creates the ledger service.
func NewService(repo Repository, agg *Aggregator, receipts *ReceiptResolver, log zerolog.Logger) *Service {
	return &Service{repo: repo, agg: agg, receipts: receipts, log: log}
}

// snapshot fetches every raw source for one patient.
func (s *Service) snapshot(ctx context.Context, patientID uuid.UUID) (*Snapshot, error) {
	patient, err := s.repo.Patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{Patient: *patient}

	if snap.Doctors, err = s.repo.Doctors(ctx); err != nil {
		return nil, err
	}
	if snap.Services, err = s.repo.ServiceOrders(ctx, patientID); err != nil {
		return nil, err
	}
	if snap.Pathology, err = s.repo.PathologyOrders(ctx, patientID); err != nil {
		return nil, err
	}
	if snap.Admissions, err = s.repo.Admissions(ctx, patientID); err != nil {
		return nil, err
	}
	if snap.Payments, err = s.repo.Payments(ctx, patientID); err != nil {
		return nil, err
	}
	if snap.Discounts, err = s.repo.Discounts(ctx, patientID); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Timeline aggregates one patient's records into an ordered statement.
func (s *Service) Timeline(ctx context.Context, patientID uuid.UUID) (*Statement, error) {
	snap, err := s.snapshot(ctx, patientID)
	if err != nil {
		return nil, err
	}

	events := s.agg.Aggregate(ctx, *snap)
	st := &Statement{
		Patient: snap.Patient,
		Events:  events,
		Summary: Summarize(events),
	}
	if s.receipts != nil {
		st.Degraded = s.receipts.Degraded()
	}
	if st.Degraded {
		s.log.Warn().
			Str("patient_id", patientID.String()).
			Msg("statement contains receipt numbers minted in degraded mode")
	}
	return st, nil
}

// Event returns one printable timeline entry by id, for single-item
// receipts. The registration anchor is not addressable here.
func (s *Service) Event(ctx context.Context, patientID uuid.UUID, eventID string) (*LedgerEvent, *PatientInfo, error) {
	st, err := s.Timeline(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	for _, ev := range Printable(st.Events) {
		if ev.ID == eventID {
			return &ev, &st.Patient, nil
		}
	}
	return nil, nil, fmt.Errorf("event %s not found for patient %s", eventID, patientID)
}
