package recipient

import (
	"context"
	"errors"

	"bloodbank/internal/db"
	recipientdomain "bloodbank/internal/domain/recipient"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListRecipients(ctx context.Context) ([]recipientdomain.Recipient, error) {
	var recipients []recipientdomain.Recipient
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recipients).Error; err != nil {
		return nil, err
	}
	return recipients, nil
}

func (r *PostgresRepository) GetRecipientByID(ctx context.Context, id int64) (*recipientdomain.Recipient, error) {
	var recipient recipientdomain.Recipient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipientdomain.ErrRecipientNotFound
		}
		return nil, err
	}
	return &recipient, nil
}

func (r *PostgresRepository) CreateRecipient(ctx context.Context, recipient *recipientdomain.Recipient) error {
	if err := r.db.WithContext(ctx).Create(recipient).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return recipientdomain.ErrUnknownHospital
		}
		return err
	}
	return nil
}
