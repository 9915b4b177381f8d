package hospital

import "context"

type Repository interface {
	ListHospitals(ctx context.Context) ([]Hospital, error)
	GetHospitalByID(ctx context.Context, id int64) (*Hospital, error)
	CreateHospital(ctx context.Context, hospital *Hospital) error
	DeleteHospital(ctx context.Context, id int64) (bool, error)
}
