package inventory

import (
	"context"
	"errors"
	"time"

	"bloodbank/internal/db"
	donordomain "bloodbank/internal/domain/donor"
	inventorydomain "bloodbank/internal/domain/inventory"
	recipientdomain "bloodbank/internal/domain/recipient"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(inventorydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// AddUnits increments in place first so the common path never races on the
// unique index. When no row exists it inserts, and a concurrent insert of the
// same pair folds into the upsert branch. Both writes are capped at MaxUnits.
func (r *PostgresRepository) AddUnits(ctx context.Context, hospitalID int64, bloodType string, units int) (*inventorydomain.Inventory, bool, error) {
	now := time.Now().UTC()
	limit := inventorydomain.MaxUnits - units

	result := r.db.WithContext(ctx).
		Model(&inventorydomain.Inventory{}).
		Where("hospital_id = ? AND blood_type = ? AND units <= ?", hospitalID, bloodType, limit).
		UpdateColumns(map[string]interface{}{
			"units":      gorm.Expr("units + ?", units),
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, false, addUnitsError(result.Error)
	}

	created := false
	if result.RowsAffected == 0 {
		row := inventorydomain.Inventory{
			HospitalID: hospitalID,
			BloodType:  bloodType,
			Units:      units,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		insert := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "hospital_id"}, {Name: "blood_type"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"units":      gorm.Expr("inventories.units + ?", units),
					"updated_at": now,
				}),
				Where: clause.Where{Exprs: []clause.Expression{
					gorm.Expr("inventories.units <= ?", limit),
				}},
			}).
			Create(&row)
		if insert.Error != nil {
			return nil, false, addUnitsError(insert.Error)
		}
		// The conflict branch skipped its update: the row exists and is full.
		if insert.RowsAffected == 0 {
			return nil, false, inventorydomain.ErrStockOverflow
		}
		created = true
	}

	row, err := r.GetInventory(ctx, hospitalID, bloodType)
	if err != nil {
		return nil, false, err
	}
	return row, created, nil
}

func addUnitsError(err error) error {
	switch {
	case db.IsForeignKeyViolation(err):
		return inventorydomain.ErrUnknownReference
	case db.IsNumericOutOfRange(err):
		return inventorydomain.ErrStockOverflow
	default:
		return err
	}
}

func (r *PostgresRepository) RemoveUnits(ctx context.Context, hospitalID int64, bloodType string, units int) (*inventorydomain.Inventory, error) {
	result := r.db.WithContext(ctx).
		Model(&inventorydomain.Inventory{}).
		Where("hospital_id = ? AND blood_type = ? AND units >= ?", hospitalID, bloodType, units).
		UpdateColumns(map[string]interface{}{
			"units":      gorm.Expr("units - ?", units),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, inventorydomain.ErrInsufficientStock
	}

	return r.GetInventory(ctx, hospitalID, bloodType)
}

func (r *PostgresRepository) GetInventory(ctx context.Context, hospitalID int64, bloodType string) (*inventorydomain.Inventory, error) {
	var row inventorydomain.Inventory
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND blood_type = ?", hospitalID, bloodType).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventorydomain.ErrInventoryNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PostgresRepository) ListInventory(ctx context.Context, filter inventorydomain.InventoryFilter) ([]inventorydomain.Inventory, error) {
	query := r.db.WithContext(ctx).Model(&inventorydomain.Inventory{})
	if filter.HospitalID != nil {
		query = query.Where("hospital_id = ?", *filter.HospitalID)
	}
	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}

	var rows []inventorydomain.Inventory
	if err := query.Order("hospital_id asc, blood_type asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) CreateDonationLog(ctx context.Context, entry *inventorydomain.DonationLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return inventorydomain.ErrUnknownReference
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListDonationLogs(ctx context.Context) ([]inventorydomain.DonationLog, error) {
	var logs []inventorydomain.DonationLog
	if err := r.db.WithContext(ctx).Order("date desc, id desc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *PostgresRepository) GetDonorBloodType(ctx context.Context, donorID int64) (string, error) {
	var types []string
	if err := r.db.WithContext(ctx).
		Model(&donordomain.Donor{}).
		Where("id = ?", donorID).
		Limit(1).
		Pluck("blood_type", &types).Error; err != nil {
		return "", err
	}
	if len(types) == 0 {
		return "", inventorydomain.ErrDonorNotFound
	}
	return types[0], nil
}

// SetDonorLastDonation only moves the date forward, so back-dated donations
// never hide a more recent one.
func (r *PostgresRepository) SetDonorLastDonation(ctx context.Context, donorID int64, date time.Time) error {
	return r.db.WithContext(ctx).
		Model(&donordomain.Donor{}).
		Where("id = ? AND (last_donation_date IS NULL OR last_donation_date < ?)", donorID, date).
		UpdateColumn("last_donation_date", date).Error
}

func (r *PostgresRepository) CreateTransfer(ctx context.Context, transfer *inventorydomain.BloodTransfer) error {
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return inventorydomain.ErrUnknownReference
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) ListTransfers(ctx context.Context) ([]inventorydomain.BloodTransfer, error) {
	var transfers []inventorydomain.BloodTransfer
	if err := r.db.WithContext(ctx).Order("transfer_date desc, id desc").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

func (r *PostgresRepository) CreateRequest(ctx context.Context, request *inventorydomain.BloodRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return inventorydomain.ErrUnknownReference
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetRequestByID(ctx context.Context, id int64) (*inventorydomain.BloodRequest, error) {
	var request inventorydomain.BloodRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventorydomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *PostgresRepository) ResolveRequest(ctx context.Context, id int64, status string, resolvedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&inventorydomain.BloodRequest{}).
		Where("id = ? AND status = ?", id, inventorydomain.StatusPending).
		UpdateColumns(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListRequests(ctx context.Context, filter inventorydomain.RequestFilter) ([]inventorydomain.BloodRequest, error) {
	query := r.db.WithContext(ctx).Model(&inventorydomain.BloodRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.HospitalID != nil {
		query = query.Where("hospital_id = ?", *filter.HospitalID)
	}

	var requests []inventorydomain.BloodRequest
	if err := query.Order("request_date desc, id desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PostgresRepository) GetRecipientBloodType(ctx context.Context, recipientID int64) (string, error) {
	var types []string
	if err := r.db.WithContext(ctx).
		Model(&recipientdomain.Recipient{}).
		Where("id = ?", recipientID).
		Limit(1).
		Pluck("blood_type", &types).Error; err != nil {
		return "", err
	}
	if len(types) == 0 {
		return "", inventorydomain.ErrRecipientNotFound
	}
	return types[0], nil
}
