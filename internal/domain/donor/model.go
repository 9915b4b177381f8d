package donor

import "time"

type Donor struct {
	ID               int64      `gorm:"primaryKey;autoIncrement"`
	Name             string     `gorm:"size:100;not null"`
	BloodType        string     `gorm:"size:3;not null;index"`
	ContactInfo      *string    `gorm:"size:255"`
	LastDonationDate *time.Time `gorm:"type:date"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

type CreateInput struct {
	Name             string
	BloodType        string
	ContactInfo      *string
	LastDonationDate *time.Time
}
