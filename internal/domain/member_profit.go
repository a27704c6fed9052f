package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberProfit is one generated monthly profit distribution for a member.
// Created only by the profit generator. Deliberately not unique per
// (investment, year, month): each profit-sharing standard that intersects a
// month emits its own record. Duplicate generation is guarded by the
// ProfitGenerationScope marker, whose unique index covers the
// (investment_id, year) scope.
type MemberProfit struct {
	MemberProfitID uuid.UUID  `gorm:"column:member_profit_id;type:uuid;primaryKey" json:"member_profit_id"`
	InvestmentID   uuid.UUID  `gorm:"column:investment_id;type:uuid;not null;index:idx_member_profits_scope" json:"investment_id"`
	MemberID       uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	Year           int        `gorm:"column:year;not null;index:idx_member_profits_scope" json:"year"`
	Month          int        `gorm:"column:month;not null" json:"month"`
	Amount         int64      `gorm:"column:amount;not null" json:"amount"`
	Status         string     `gorm:"column:status;not null;default:PENDING" json:"status"`
	PaymentDate    *time.Time `gorm:"column:payment_date;type:date" json:"payment_date"`
	PaymentMethod  *string    `gorm:"column:payment_method" json:"payment_method"`
	Note           *string    `gorm:"column:note" json:"note"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (MemberProfit) TableName() string {
	return "member_profits"
}

func (p *MemberProfit) BeforeCreate(tx *gorm.DB) error {
	if p.MemberProfitID == uuid.Nil {
		p.MemberProfitID = uuid.New()
	}
	return nil
}
