package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvestmentStatusActive = "active"
	InvestmentStatusClosed = "closed"
)

// Investment is a single property/asset position. UserID is the owning member;
// it may be unset on legacy rows, in which case profit generation attempts a
// one-time re-association repair (see application/profits).
type Investment struct {
	InvestmentID uuid.UUID      `gorm:"column:investment_id;type:uuid;primaryKey" json:"investment_id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Type         string         `gorm:"column:type;not null" json:"type"`
	UserID       *uuid.UUID     `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Status       string         `gorm:"column:status;not null;default:active" json:"status"`
	Note         *string        `gorm:"column:note" json:"note"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.InvestmentID == uuid.Nil {
		i.InvestmentID = uuid.New()
	}
	return nil
}
