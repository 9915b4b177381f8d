package admin

import (
	"context"
	"errors"

	"bloodbank/internal/db"
	admindomain "bloodbank/internal/domain/admin"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAdminByEmail(ctx context.Context, email string) (*admindomain.AdminUser, error) {
	var admin admindomain.AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admindomain.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&admindomain.AdminUser{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateAdmin(ctx context.Context, admin *admindomain.AdminUser) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return admindomain.ErrEmailTaken
		case db.IsForeignKeyViolation(err):
			return admindomain.ErrUnknownHospital
		}
		return err
	}
	return nil
}
