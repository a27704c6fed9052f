package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentalStandard is a time-bounded rent agreement for one investment:
// a fixed monthly rent plus the renter identity, active over
// [StartDate, EndDate] (open-ended when EndDate is nil).
type RentalStandard struct {
	RentalStandardID uuid.UUID      `gorm:"column:rental_standard_id;type:uuid;primaryKey" json:"rental_standard_id"`
	InvestmentID     uuid.UUID      `gorm:"column:investment_id;type:uuid;not null;index" json:"investment_id"`
	MonthlyRent      int64          `gorm:"column:monthly_rent;not null" json:"monthly_rent"`
	StartDate        time.Time      `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate          *time.Time     `gorm:"column:end_date;type:date" json:"end_date"`
	RenterName       string         `gorm:"column:renter_name" json:"renter_name"`
	RenterTaxID      *string        `gorm:"column:renter_tax_id" json:"renter_tax_id"`
	Note             *string        `gorm:"column:note" json:"note"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RentalStandard) TableName() string {
	return "rental_standards"
}

func (s *RentalStandard) BeforeCreate(tx *gorm.DB) error {
	if s.RentalStandardID == uuid.Nil {
		s.RentalStandardID = uuid.New()
	}
	return nil
}

// IntervalStart implements the resolver interval contract.
func (s RentalStandard) IntervalStart() time.Time { return s.StartDate }

// IntervalEnd implements the resolver interval contract (nil = open-ended).
func (s RentalStandard) IntervalEnd() *time.Time { return s.EndDate }
