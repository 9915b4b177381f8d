package hospital

import (
	"context"
	"errors"

	hospitaldomain "bloodbank/internal/domain/hospital"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListHospitals(ctx context.Context) ([]hospitaldomain.Hospital, error) {
	var hospitals []hospitaldomain.Hospital
	if err := r.db.WithContext(ctx).Order("id asc").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *PostgresRepository) GetHospitalByID(ctx context.Context, id int64) (*hospitaldomain.Hospital, error) {
	var hospital hospitaldomain.Hospital
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, hospitaldomain.ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *PostgresRepository) CreateHospital(ctx context.Context, hospital *hospitaldomain.Hospital) error {
	return r.db.WithContext(ctx).Create(hospital).Error
}

// DeleteHospital removes the hospital; inventory, logs, requests and transfers
// go with it through ON DELETE CASCADE.
func (r *PostgresRepository) DeleteHospital(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&hospitaldomain.Hospital{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
