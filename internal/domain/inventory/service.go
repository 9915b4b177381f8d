package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloodbank/internal/domain/bloodtype"
)

// Service is the inventory ledger. Every mutation runs in its own
// transaction scope obtained from Repository.Transaction, so a failed
// operation leaves no partial effect.
type Service struct {
	repo     Repository
	observer Observer
	now      func() time.Time
}

func NewService(repo Repository, observer Observer) *Service {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Service{repo: repo, observer: observer, now: time.Now}
}

func (s *Service) Credit(ctx context.Context, input CreditInput) (*CreditResult, error) {
	bloodType := bloodtype.Normalize(input.BloodType)
	if err := validateMovement(input.HospitalID, bloodType, input.Units); err != nil {
		s.observer.Rejected("credit", err)
		return nil, err
	}

	var result CreditResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		row, created, err := tx.AddUnits(ctx, input.HospitalID, bloodType, input.Units)
		if err != nil {
			return err
		}
		result = CreditResult{Inventory: *row, Created: created}
		return nil
	})
	if err != nil {
		s.observer.Rejected("credit", err)
		return nil, err
	}

	s.observer.Credited(bloodType, input.Units)
	return &result, nil
}

func (s *Service) Debit(ctx context.Context, input DebitInput) (*Inventory, error) {
	bloodType := bloodtype.Normalize(input.BloodType)
	if err := validateMovement(input.HospitalID, bloodType, input.Units); err != nil {
		s.observer.Rejected("debit", err)
		return nil, err
	}

	var result Inventory
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		row, err := tx.RemoveUnits(ctx, input.HospitalID, bloodType, input.Units)
		if err != nil {
			return err
		}
		result = *row
		return nil
	})
	if err != nil {
		s.observer.Rejected("debit", err)
		return nil, err
	}

	s.observer.Debited(bloodType, input.Units)
	return &result, nil
}

// Transfer moves units between two hospitals: the source is debited, the
// destination credited and the movement logged, or nothing happens at all.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (*BloodTransfer, error) {
	bloodType := bloodtype.Normalize(input.BloodType)
	if err := validateMovement(input.FromHospitalID, bloodType, input.Units); err != nil {
		s.observer.Rejected("transfer", err)
		return nil, err
	}
	if input.ToHospitalID <= 0 {
		err := fmt.Errorf("%w: destination hospital is required", ErrInvalidArgument)
		s.observer.Rejected("transfer", err)
		return nil, err
	}
	if input.FromHospitalID == input.ToHospitalID {
		err := fmt.Errorf("%w: source and destination hospital must differ", ErrInvalidArgument)
		s.observer.Rejected("transfer", err)
		return nil, err
	}

	transfer := BloodTransfer{
		FromHospitalID:   input.FromHospitalID,
		ToHospitalID:     input.ToHospitalID,
		BloodType:        bloodType,
		UnitsTransferred: input.Units,
		TransferDate:     s.dateOrToday(input.Date),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		debit := func() error {
			_, err := tx.RemoveUnits(ctx, input.FromHospitalID, bloodType, input.Units)
			return err
		}
		credit := func() error {
			_, _, err := tx.AddUnits(ctx, input.ToHospitalID, bloodType, input.Units)
			return err
		}

		// Rows are locked in ascending hospital order so opposing transfers
		// cannot deadlock; a failed debit after the credit still rolls back.
		steps := []func() error{debit, credit}
		if input.ToHospitalID < input.FromHospitalID {
			steps = []func() error{credit, debit}
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return tx.CreateTransfer(ctx, &transfer)
	})
	if err != nil {
		s.observer.Rejected("transfer", err)
		return nil, err
	}

	s.observer.Transferred(bloodType, input.Units)
	return &transfer, nil
}

// RecordDonation appends the audit entry, credits the hospital and bumps the
// donor's last donation date in one transaction.
func (s *Service) RecordDonation(ctx context.Context, input DonationInput) (*DonationResult, error) {
	if input.DonorID <= 0 {
		err := fmt.Errorf("%w: donor is required", ErrInvalidArgument)
		s.observer.Rejected("donation", err)
		return nil, err
	}
	if input.HospitalID <= 0 {
		err := fmt.Errorf("%w: hospital is required", ErrInvalidArgument)
		s.observer.Rejected("donation", err)
		return nil, err
	}
	if err := validateUnits(input.Units); err != nil {
		s.observer.Rejected("donation", err)
		return nil, err
	}

	date := s.dateOrToday(input.Date)
	requested := bloodtype.Normalize(input.BloodType)

	var result DonationResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		donorType, err := tx.GetDonorBloodType(ctx, input.DonorID)
		if err != nil {
			return err
		}
		bloodType := requested
		if bloodType == "" {
			bloodType = donorType
		}
		if bloodType != donorType {
			return fmt.Errorf("%w: blood type %s does not match donor blood type %s", ErrInvalidArgument, bloodType, donorType)
		}

		entry := DonationLog{
			DonorID:      input.DonorID,
			HospitalID:   input.HospitalID,
			BloodType:    bloodType,
			UnitsDonated: input.Units,
			Date:         date,
		}
		if err := tx.CreateDonationLog(ctx, &entry); err != nil {
			return err
		}

		row, _, err := tx.AddUnits(ctx, input.HospitalID, bloodType, input.Units)
		if err != nil {
			return err
		}

		if err := tx.SetDonorLastDonation(ctx, input.DonorID, date); err != nil {
			return err
		}

		result = DonationResult{Log: entry, Inventory: *row}
		return nil
	})
	if err != nil {
		s.observer.Rejected("donation", err)
		return nil, err
	}

	s.observer.Credited(result.Log.BloodType, input.Units)
	return &result, nil
}

func (s *Service) CreateRequest(ctx context.Context, input RequestInput) (*BloodRequest, error) {
	if input.RecipientID <= 0 {
		err := fmt.Errorf("%w: recipient is required", ErrInvalidArgument)
		s.observer.Rejected("request", err)
		return nil, err
	}
	if input.HospitalID <= 0 {
		err := fmt.Errorf("%w: hospital is required", ErrInvalidArgument)
		s.observer.Rejected("request", err)
		return nil, err
	}
	if err := validateUnits(input.Units); err != nil {
		s.observer.Rejected("request", err)
		return nil, err
	}

	request := BloodRequest{
		RecipientID:    input.RecipientID,
		HospitalID:     input.HospitalID,
		BloodType:      bloodtype.Normalize(input.BloodType),
		UnitsRequested: input.Units,
		Status:         StatusPending,
		RequestDate:    s.dateOrToday(input.Date),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if request.BloodType == "" {
			recipientType, err := tx.GetRecipientBloodType(ctx, input.RecipientID)
			if err != nil {
				return err
			}
			request.BloodType = recipientType
		}
		return tx.CreateRequest(ctx, &request)
	})
	if err != nil {
		s.observer.Rejected("request", err)
		return nil, err
	}

	return &request, nil
}

// FulfillRequest debits the requesting hospital and marks the request
// fulfilled. When stock is short the request stays pending.
func (s *Service) FulfillRequest(ctx context.Context, id int64) (*BloodRequest, error) {
	var result BloodRequest
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		request, err := tx.GetRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != StatusPending {
			return ErrRequestNotPending
		}

		resolvedAt := s.now().UTC()
		ok, err := tx.ResolveRequest(ctx, id, StatusFulfilled, resolvedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRequestNotPending
		}

		if _, err := tx.RemoveUnits(ctx, request.HospitalID, request.BloodType, request.UnitsRequested); err != nil {
			return err
		}

		request.Status = StatusFulfilled
		request.ResolvedAt = &resolvedAt
		result = *request
		return nil
	})
	if err != nil {
		s.observer.Rejected("fulfill", err)
		return nil, err
	}

	s.observer.Debited(result.BloodType, result.UnitsRequested)
	return &result, nil
}

func (s *Service) RejectRequest(ctx context.Context, id int64) (*BloodRequest, error) {
	var result BloodRequest
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		request, err := tx.GetRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if request.Status != StatusPending {
			return ErrRequestNotPending
		}

		resolvedAt := s.now().UTC()
		ok, err := tx.ResolveRequest(ctx, id, StatusRejected, resolvedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrRequestNotPending
		}

		request.Status = StatusRejected
		request.ResolvedAt = &resolvedAt
		result = *request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) GetRequest(ctx context.Context, id int64) (*BloodRequest, error) {
	return s.repo.GetRequestByID(ctx, id)
}

func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]BloodRequest, error) {
	switch filter.Status {
	case "", StatusPending, StatusFulfilled, StatusRejected:
	default:
		return nil, fmt.Errorf("%w: unknown request status %q", ErrInvalidArgument, filter.Status)
	}
	return s.repo.ListRequests(ctx, filter)
}

func (s *Service) ListInventory(ctx context.Context, filter InventoryFilter) ([]Inventory, error) {
	filter.BloodType = bloodtype.Normalize(filter.BloodType)
	return s.repo.ListInventory(ctx, filter)
}

// Balance returns the units held for the pair; a missing row counts as zero.
func (s *Service) Balance(ctx context.Context, hospitalID int64, bloodType string) (int, error) {
	row, err := s.repo.GetInventory(ctx, hospitalID, bloodtype.Normalize(bloodType))
	if err != nil {
		if errors.Is(err, ErrInventoryNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Units, nil
}

func (s *Service) ListTransfers(ctx context.Context) ([]BloodTransfer, error) {
	return s.repo.ListTransfers(ctx)
}

func (s *Service) ListDonations(ctx context.Context) ([]DonationLog, error) {
	return s.repo.ListDonationLogs(ctx)
}

func (s *Service) dateOrToday(value *time.Time) time.Time {
	if value != nil {
		return truncateDate(*value)
	}
	return truncateDate(s.now())
}

func truncateDate(value time.Time) time.Time {
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func validateMovement(hospitalID int64, bloodType string, units int) error {
	if hospitalID <= 0 {
		return fmt.Errorf("%w: hospital is required", ErrInvalidArgument)
	}
	if bloodType == "" {
		return fmt.Errorf("%w: blood type is required", ErrInvalidArgument)
	}
	return validateUnits(units)
}

func validateUnits(units int) error {
	if units <= 0 {
		return fmt.Errorf("%w: units must be positive", ErrInvalidArgument)
	}
	if units > MaxUnits {
		return fmt.Errorf("%w: units must not exceed %d", ErrInvalidArgument, MaxUnits)
	}
	return nil
}
