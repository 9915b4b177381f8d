package recipient

import (
	"time"

	"bloodbank/internal/domain/hospital"
)

type Recipient struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Name        string     `gorm:"size:100;not null"`
	BloodType   string     `gorm:"size:3;not null"`
	ContactInfo *string    `gorm:"size:255"`
	HospitalID  *int64     `gorm:"index"`
	RequestDate *time.Time `gorm:"type:date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`

	Hospital *hospital.Hospital `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:SET NULL"`
}

type CreateInput struct {
	Name        string
	BloodType   string
	HospitalID  int64
	ContactInfo *string
	RequestDate *time.Time
}
