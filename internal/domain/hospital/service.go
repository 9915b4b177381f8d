package hospital

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListHospitals(ctx context.Context) ([]Hospital, error) {
	return s.repo.ListHospitals(ctx)
}

func (s *Service) GetHospital(ctx context.Context, id int64) (*Hospital, error) {
	return s.repo.GetHospitalByID(ctx, id)
}

func (s *Service) CreateHospital(ctx context.Context, input CreateInput) (*Hospital, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	hospital := Hospital{
		Name:        name,
		Location:    trimOptional(input.Location),
		ContactInfo: trimOptional(input.ContactInfo),
	}
	if err := s.repo.CreateHospital(ctx, &hospital); err != nil {
		return nil, err
	}

	return &hospital, nil
}

// DeleteHospital removes the hospital; the store cascades to its inventory,
// donation logs, requests and transfers and detaches its recipients.
func (s *Service) DeleteHospital(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteHospital(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrHospitalNotFound
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
