package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ProfitTypePercentage  = "PERCENTAGE"
	ProfitTypeFixedAmount = "FIXED_AMOUNT"
	ProfitTypeOther       = "OTHER"
)

// ValidProfitType reports whether t is one of the supported formula types.
func ValidProfitType(t string) bool {
	return t == ProfitTypePercentage || t == ProfitTypeFixedAmount || t == ProfitTypeOther
}

// ProfitSharingStandard is a time-bounded profit formula for one investment.
// Value is percentage points for PERCENTAGE, an amount in currency units for
// FIXED_AMOUNT and OTHER. Min/MaxAmount clamp the computed monthly amount.
// Unlike rental standards, every standard whose interval intersects the target
// year is applied independently.
type ProfitSharingStandard struct {
	ProfitStandardID uuid.UUID       `gorm:"column:profit_standard_id;type:uuid;primaryKey" json:"profit_standard_id"`
	InvestmentID     uuid.UUID       `gorm:"column:investment_id;type:uuid;not null;index" json:"investment_id"`
	Type             string          `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Value            decimal.Decimal `gorm:"column:value;type:numeric(14,4);not null" json:"value"`
	MinAmount        *int64          `gorm:"column:min_amount" json:"min_amount"`
	MaxAmount        *int64          `gorm:"column:max_amount" json:"max_amount"`
	StartDate        time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate          *time.Time      `gorm:"column:end_date;type:date" json:"end_date"`
	Note             *string         `gorm:"column:note" json:"note"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (ProfitSharingStandard) TableName() string {
	return "profit_sharing_standards"
}

func (s *ProfitSharingStandard) BeforeCreate(tx *gorm.DB) error {
	if s.ProfitStandardID == uuid.Nil {
		s.ProfitStandardID = uuid.New()
	}
	return nil
}

// IntervalStart implements the resolver interval contract.
func (s ProfitSharingStandard) IntervalStart() time.Time { return s.StartDate }

// IntervalEnd implements the resolver interval contract (nil = open-ended).
func (s ProfitSharingStandard) IntervalEnd() *time.Time { return s.EndDate }
