package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repoPG loads raw records from Postgres. Date columns are TEXT on purpose:
// they hold whatever encoding the originating system wrote (ISO, SQL-style,
// date-only, epoch), and the timestamp normalizer owns their meaning.
type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the Postgres-backed record repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Patient(ctx context.Context, id uuid.UUID) (*PatientInfo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_number, name, age, gender, phone, address, created_at
		FROM patients WHERE id = $1`, id)

	var p PatientInfo
	var pid uuid.UUID
	var createdAt *time.Time
	if err := row.Scan(&pid, &p.PatientID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address, &createdAt); err != nil {
		return nil, fmt.Errorf("load patient %s: %w", id, err)
	}
	p.ID = pid.String()
	if createdAt != nil {
		p.CreatedAt = *createdAt
	}
	return &p, nil
}

func (r *repoPG) Doctors(ctx context.Context) ([]DoctorInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialization, consultation_fee FROM doctors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	defer rows.Close()

	var out []DoctorInfo
	for rows.Next() {
		var d DoctorInfo
		var id uuid.UUID
		if err := rows.Scan(&id, &d.Name, &d.Specialization, &d.ConsultationFee); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		d.ID = id.String()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repoPG) ServiceOrders(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, category, receipt_number, price, billing_qty,
		       doctor_id, created_at, scheduled_at, raw_data
		FROM service_orders WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("load service orders: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		ev := RawEvent{Kind: KindService}
		var id uuid.UUID
		var doctorID *uuid.UUID
		var createdAt, scheduledAt *string
		var raw []byte
		if err := rows.Scan(&id, &ev.Title, &ev.Description, &ev.Category, &ev.ReceiptNumber,
			&ev.Price, &ev.BillingQty, &doctorID, &createdAt, &scheduledAt, &raw); err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		fillCommon(&ev, id, doctorID, createdAt, scheduledAt, nil, raw)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *repoPG) PathologyOrders(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_number, description, receipt_number, total_price,
		       doctor_id, ordered_at, created_at, raw_data
		FROM pathology_orders WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("load pathology orders: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		ev := RawEvent{Kind: KindPathology}
		var id uuid.UUID
		var doctorID *uuid.UUID
		var orderedAt, createdAt *string
		var raw []byte
		if err := rows.Scan(&id, &ev.OrderNumber, &ev.Description, &ev.ReceiptNumber,
			&ev.TotalPrice, &doctorID, &orderedAt, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scan pathology order: %w", err)
		}
		fillCommon(&ev, id, doctorID, createdAt, nil, orderedAt, raw)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *repoPG) Admissions(ctx context.Context, patientID uuid.UUID) ([]AdmissionRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, receipt_number, stay_days, calculated_amount,
		       doctor_id, admission_date, created_at, raw_data
		FROM admissions WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, fmt.Errorf("load admissions: %w", err)
	}
	defer rows.Close()

	var out []AdmissionRecord
	for rows.Next() {
		adm := AdmissionRecord{RawEvent: RawEvent{Kind: KindAdmission}}
		var id uuid.UUID
		var doctorID *uuid.UUID
		var admissionDate, createdAt *string
		var raw []byte
		if err := rows.Scan(&id, &adm.Description, &adm.ReceiptNumber, &adm.StayDays,
			&adm.CalculatedAmount, &doctorID, &admissionDate, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scan admission: %w", err)
		}
		fillCommon(&adm.RawEvent, id, doctorID, createdAt, nil, nil, raw)
		if admissionDate != nil {
			adm.AdmissionDate = *admissionDate
		}
		out = append(out, adm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		events, err := r.admissionEvents(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Events = events
	}
	return out, nil
}

func (r *repoPG) admissionEvents(ctx context.Context, admissionID string) ([]RawEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, receipt_number, calculated_amount, created_at, raw_data
		FROM admission_events WHERE admission_id = $1`, admissionID)
	if err != nil {
		return nil, fmt.Errorf("load admission events: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		ev := RawEvent{Kind: KindAdmissionEvent}
		var id uuid.UUID
		var createdAt *string
		var raw []byte
		if err := rows.Scan(&id, &ev.Title, &ev.Description, &ev.ReceiptNumber,
			&ev.CalculatedAmount, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scan admission event: %w", err)
		}
		fillCommon(&ev, id, nil, createdAt, nil, nil, raw)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *repoPG) Payments(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error) {
	return r.simpleEvents(ctx, KindPayment, `
		SELECT id, description, receipt_number, amount, created_at, raw_data
		FROM payments WHERE patient_id = $1`, patientID)
}

func (r *repoPG) Discounts(ctx context.Context, patientID uuid.UUID) ([]RawEvent, error) {
	return r.simpleEvents(ctx, KindDiscount, `
		SELECT id, description, receipt_number, amount, created_at, raw_data
		FROM discounts WHERE patient_id = $1`, patientID)
}

func (r *repoPG) simpleEvents(ctx context.Context, kind SourceKind, query string, patientID uuid.UUID) ([]RawEvent, error) {
	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", kind, err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		ev := RawEvent{Kind: kind}
		var id uuid.UUID
		var createdAt *string
		var raw []byte
		if err := rows.Scan(&id, &ev.Description, &ev.ReceiptNumber, &ev.Amount, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", kind, err)
		}
		fillCommon(&ev, id, nil, createdAt, nil, nil, raw)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func fillCommon(ev *RawEvent, id uuid.UUID, doctorID *uuid.UUID, createdAt, scheduledAt, orderedAt *string, raw []byte) {
	ev.ID = id.String()
	if doctorID != nil {
		ev.DoctorID = doctorID.String()
	}
	if createdAt != nil {
		ev.CreatedAt = *createdAt
	}
	if scheduledAt != nil {
		ev.ScheduledAt = *scheduledAt
	}
	if orderedAt != nil {
		ev.OrderedAt = *orderedAt
	}
	if len(raw) > 0 {
		var bag map[string]any
		if err := json.Unmarshal(raw, &bag); err == nil {
			ev.RawData = bag
		}
	}
}
