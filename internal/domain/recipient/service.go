package recipient

import (
	"context"
	"strings"

	"bloodbank/internal/domain/bloodtype"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRecipients(ctx context.Context) ([]Recipient, error) {
	return s.repo.ListRecipients(ctx)
}

func (s *Service) GetRecipient(ctx context.Context, id int64) (*Recipient, error) {
	return s.repo.GetRecipientByID(ctx, id)
}

func (s *Service) CreateRecipient(ctx context.Context, input CreateInput) (*Recipient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.HospitalID <= 0 {
		return nil, ErrHospitalRequired
	}
	bloodType, err := bloodtype.Parse(input.BloodType)
	if err != nil {
		return nil, err
	}

	hospitalID := input.HospitalID
	recipient := Recipient{
		Name:        name,
		BloodType:   bloodType,
		ContactInfo: input.ContactInfo,
		HospitalID:  &hospitalID,
		RequestDate: input.RequestDate,
	}
	if err := s.repo.CreateRecipient(ctx, &recipient); err != nil {
		return nil, err
	}

	return &recipient, nil
}
