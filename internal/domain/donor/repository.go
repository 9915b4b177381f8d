package donor

import "context"

type Repository interface {
	ListDonors(ctx context.Context) ([]Donor, error)
	GetDonorByID(ctx context.Context, id int64) (*Donor, error)
	CreateDonor(ctx context.Context, donor *Donor) error
}
