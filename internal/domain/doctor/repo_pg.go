package doctor

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

const doctorCols = `id, name, specialization, consultation_fee, created_at`

func (r *repoPG) scanRow(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.ConsultationFee, &d.CreatedAt)
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctors (id, name, specialization, consultation_fee)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		d.ID, d.Name, d.Specialization, d.ConsultationFee).Scan(&d.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctors SET name=$2, specialization=$3, consultation_fee=$4
		WHERE id = $1`,
		d.ID, d.Name, d.Specialization, d.ConsultationFee)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
