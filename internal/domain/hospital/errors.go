package hospital

import "errors"

var (
	ErrHospitalNotFound = errors.New("hospital not found")
	ErrNameRequired     = errors.New("hospital name is required")
)
