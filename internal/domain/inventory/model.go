package inventory

import (
	"math"
	"time"

	"bloodbank/internal/domain/donor"
	"bloodbank/internal/domain/hospital"
	"bloodbank/internal/domain/recipient"
)

const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusRejected  = "rejected"
)

// MaxUnits is the largest unit count a single row or movement may hold; the
// units columns are 32-bit integers.
const MaxUnits = math.MaxInt32

// Inventory is the unit count for one (hospital, blood type) pair.
type Inventory struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	HospitalID int64     `gorm:"not null;uniqueIndex:idx_inventories_hospital_blood_type,priority:1"`
	BloodType  string    `gorm:"size:3;not null;uniqueIndex:idx_inventories_hospital_blood_type,priority:2"`
	Units      int       `gorm:"not null;check:chk_inventories_units_non_negative,units >= 0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Hospital *hospital.Hospital `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Inventory) TableName() string {
	return "inventories"
}

type DonationLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	DonorID      int64     `gorm:"not null;index"`
	HospitalID   int64     `gorm:"not null;index"`
	BloodType    string    `gorm:"size:3;not null"`
	UnitsDonated int       `gorm:"not null"`
	Date         time.Time `gorm:"type:date;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Donor    *donor.Donor       `gorm:"foreignKey:DonorID;references:ID;constraint:OnDelete:CASCADE"`
	Hospital *hospital.Hospital `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:CASCADE"`
}

type BloodRequest struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	RecipientID    int64      `gorm:"not null;index"`
	HospitalID     int64      `gorm:"not null;index"`
	BloodType      string     `gorm:"size:3;not null"`
	UnitsRequested int        `gorm:"not null"`
	Status         string     `gorm:"size:20;not null;default:pending"`
	RequestDate    time.Time  `gorm:"type:date;not null"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`

	Recipient *recipient.Recipient `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE"`
	Hospital  *hospital.Hospital   `gorm:"foreignKey:HospitalID;references:ID;constraint:OnDelete:CASCADE"`
}

type BloodTransfer struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	FromHospitalID   int64     `gorm:"not null;index"`
	ToHospitalID     int64     `gorm:"not null;index"`
	BloodType        string    `gorm:"size:3;not null"`
	UnitsTransferred int       `gorm:"not null"`
	TransferDate     time.Time `gorm:"type:date;not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`

	FromHospital *hospital.Hospital `gorm:"foreignKey:FromHospitalID;references:ID;constraint:OnDelete:CASCADE"`
	ToHospital   *hospital.Hospital `gorm:"foreignKey:ToHospitalID;references:ID;constraint:OnDelete:CASCADE"`
}

type CreditInput struct {
	HospitalID int64
	BloodType  string
	Units      int
}

type CreditResult struct {
	Inventory Inventory
	Created   bool
}

type DebitInput struct {
	HospitalID int64
	BloodType  string
	Units      int
}

type TransferInput struct {
	FromHospitalID int64
	ToHospitalID   int64
	BloodType      string
	Units          int
	Date           *time.Time
}

// DonationInput records a donation; an empty BloodType falls back to the donor's.
type DonationInput struct {
	DonorID    int64
	HospitalID int64
	BloodType  string
	Units      int
	Date       *time.Time
}

type DonationResult struct {
	Log       DonationLog
	Inventory Inventory
}

// RequestInput opens a blood request; an empty BloodType falls back to the recipient's.
type RequestInput struct {
	RecipientID int64
	HospitalID  int64
	BloodType   string
	Units       int
	Date        *time.Time
}

type InventoryFilter struct {
	HospitalID *int64
	BloodType  string
}

type RequestFilter struct {
	Status     string
	HospitalID *int64
}
