package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository loads one patient's raw financial records. Implementations
// return records verbatim, including the original raw_data payload bag;
// all interpretation belongs to the engine.
type Repository interface {
	Patient(ctx context.Context, id uuid.UUID) (*PatientInfo, error)
	Doctors(ctx context.Context) ([]DoctorInfo, error)
	ServiceOrders(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error)
	PathologyOrders(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error)
	Admissions(ctx context.Context, patientID uuid.UUID) ([]AdmissionRecord, error)
	Payments(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error)
	Discounts(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error)
}
