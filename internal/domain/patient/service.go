package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterPatient assigns the next registration number (PAT-0042) and
// persists the record.
func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	n, err := s.repo.NextRegistrationNumber(ctx)
	if err != nil {
		return fmt.Errorf("allocate registration number: %w", err)
	}
	p.PatientID = fmt.Sprintf("PAT-%04d", n)
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetPatientByNumber(ctx context.Context, patientID string) (*Patient, error) {
	return s.repo.GetByPatientID(ctx, patientID)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}
