package admin

import (
	"time"

	"bloodbank/internal/domain/hospital"
)

type AdminUser struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	HospitalID   *int64    `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Hospital *hospital.Hospital `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:SET NULL"`
}

type SignupInput struct {
	Name       string
	Email      string
	Password   string
	HospitalID *int64
}

type Options struct {
	MinPasswordLength int
	BcryptCost        int
}
