package donor

import "errors"

var (
	ErrDonorNotFound = errors.New("donor not found")
	ErrNameRequired  = errors.New("donor name is required")
)
