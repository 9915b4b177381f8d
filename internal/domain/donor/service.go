package donor

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

func (s *Service) ListDonors(ctx context.Context) ([]Donor, error) {
	return s.repo.ListDonors(ctx)
}

func (s *Service) GetDonor(ctx context.Context, id int64) (*Donor, error) {
	return s.repo.GetDonorByID(ctx, id)
}

func (s *Service) CreateDonor(ctx context.Context, input CreateInput) (*Donor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	bloodType, err := bloodtype.Parse(input.BloodType)
	if err != nil {
		return nil, err
	}

	donor := Donor{
		Name:             name,
		BloodType:        bloodType,
		ContactInfo:      input.ContactInfo,
		LastDonationDate: input.LastDonationDate,
	}
	if err := s.repo.CreateDonor(ctx, &donor); err != nil {
		return nil, err
	}

	return &donor, nil
}
