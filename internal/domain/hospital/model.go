package hospital

import "time"

type Hospital struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:100;not null"`
	Location    *string   `gorm:"size:255"`
	ContactInfo *string   `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

type CreateInput struct {
	Name        string
	Location    *string
	ContactInfo *string
}
