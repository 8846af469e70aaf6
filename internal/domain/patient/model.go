package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. PatientID is the human-facing
// registration number printed on every document (PAT-0042); ID is the
// internal key.
type Patient struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID string    `db:"patient_number" json:"patientId"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	Gender    string    `db:"gender" json:"gender"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
