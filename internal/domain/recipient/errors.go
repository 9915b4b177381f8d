package recipient

import "errors"

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrNameRequired      = errors.New("recipient name is required")
	ErrHospitalRequired  = errors.New("recipient hospital is required")
	ErrUnknownHospital   = errors.New("recipient hospital does not exist")
)
