package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientCols = `id, patient_number, name, age, gender, phone, address, created_at`

func (r *repoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address, &p.CreatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, patient_number, name, age, gender, phone, address)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		p.ID, p.PatientID, p.Name, p.Age, p.Gender, p.Phone, p.Address).Scan(&p.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE patient_number = $1`, patientID))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patients SET name=$2, age=$3, gender=$4, phone=$5, address=$6
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Address)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) NextRegistrationNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('patient_registration_seq')`).Scan(&n)
	return n, err
}
