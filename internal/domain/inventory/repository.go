package inventory

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// AddUnits increments the (hospital, blood type) row, creating it when absent.
	// The boolean reports whether a new row was inserted. A sum above MaxUnits
	// fails with ErrStockOverflow and leaves the row unchanged.
	AddUnits(ctx context.Context, hospitalID int64, bloodType string, units int) (*Inventory, bool, error)
	// RemoveUnits decrements only if the row holds at least units, else ErrInsufficientStock.
	RemoveUnits(ctx context.Context, hospitalID int64, bloodType string, units int) (*Inventory, error)
	GetInventory(ctx context.Context, hospitalID int64, bloodType string) (*Inventory, error)
	ListInventory(ctx context.Context, filter InventoryFilter) ([]Inventory, error)

	CreateDonationLog(ctx context.Context, log *DonationLog) error
	ListDonationLogs(ctx context.Context) ([]DonationLog, error)
	GetDonorBloodType(ctx context.Context, donorID int64) (string, error)
	SetDonorLastDonation(ctx context.Context, donorID int64, date time.Time) error

	CreateTransfer(ctx context.Context, transfer *BloodTransfer) error
	ListTransfers(ctx context.Context) ([]BloodTransfer, error)

	CreateRequest(ctx context.Context, request *BloodRequest) error
	GetRequestByID(ctx context.Context, id int64) (*BloodRequest, error)
	// ResolveRequest moves a pending request to status; false when it was not pending.
	ResolveRequest(ctx context.Context, id int64, status string, resolvedAt time.Time) (bool, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]BloodRequest, error)
	GetRecipientBloodType(ctx context.Context, recipientID int64) (string, error)
}
