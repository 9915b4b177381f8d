package donor

import (
	"context"
	"errors"

	donordomain "bloodbank/internal/domain/donor"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListDonors(ctx context.Context) ([]donordomain.Donor, error) {
	var donors []donordomain.Donor
	if err := r.db.WithContext(ctx).Order("id asc").Find(&donors).Error; err != nil {
		return nil, err
	}
	return donors, nil
}

func (r *PostgresRepository) GetDonorByID(ctx context.Context, id int64) (*donordomain.Donor, error) {
	var donor donordomain.Donor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, donordomain.ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (r *PostgresRepository) CreateDonor(ctx context.Context, donor *donordomain.Donor) error {
	return r.db.WithContext(ctx).Create(donor).Error
}
