package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RunKindRental      = "rental_generation"
	RunKindProfit      = "profit_generation"
	RunKindRentalClear = "rental_clear"
	RunKindProfitClear = "profit_clear"
)

// GenerationRun is an audit row written in the same transaction as each
// generation or clear run. Payload carries run detail (months covered,
// per-standard warnings, repair events) as JSON.
type GenerationRun struct {
	RunID          uuid.UUID      `gorm:"column:run_id;type:uuid;primaryKey" json:"run_id"`
	Kind           string         `gorm:"column:kind;type:varchar(30);not null;index" json:"kind"`
	InvestmentID   *uuid.UUID     `gorm:"column:investment_id;type:uuid;index" json:"investment_id"`
	Year           int            `gorm:"column:year;not null" json:"year"`
	Month          *int           `gorm:"column:month" json:"month"`
	RecordsCreated int            `gorm:"column:records_created;not null" json:"records_created"`
	RecordsDeleted int            `gorm:"column:records_deleted;not null" json:"records_deleted"`
	Payload        datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (GenerationRun) TableName() string {
	return "generation_runs"
}

func (r *GenerationRun) BeforeCreate(tx *gorm.DB) error {
	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	return nil
}
