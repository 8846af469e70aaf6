package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctors table.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Specialization  string    `db:"specialization" json:"specialization"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultationFee"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}
