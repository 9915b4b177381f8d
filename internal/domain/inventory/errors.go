package inventory

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrStockOverflow     = errors.New("stock would exceed the maximum unit count")
	ErrUnknownReference  = errors.New("referenced hospital, donor or recipient does not exist")
	ErrDonorNotFound     = errors.New("donor not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrRequestNotFound   = errors.New("blood request not found")
	ErrRequestNotPending = errors.New("blood request is not pending")
)
