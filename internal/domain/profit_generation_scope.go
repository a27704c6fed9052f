package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfitGenerationScope marks an (investment, year) scope whose member
// profits have been generated. member_profits cannot carry a unique index
// (each intersecting standard emits its own row per month), so the generator
// inserts this marker as the first write of its transaction; the unique index
// turns a concurrent generation of the same scope into a constraint violation
// instead of a double distribution. Bulk clear removes matching markers so a
// cleared scope can be regenerated.
type ProfitGenerationScope struct {
	ScopeID      uuid.UUID `gorm:"column:scope_id;type:uuid;primaryKey" json:"scope_id"`
	InvestmentID uuid.UUID `gorm:"column:investment_id;type:uuid;not null;uniqueIndex:idx_profit_generation_scopes_scope" json:"investment_id"`
	Year         int       `gorm:"column:year;not null;uniqueIndex:idx_profit_generation_scopes_scope" json:"year"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ProfitGenerationScope) TableName() string {
	return "profit_generation_scopes"
}

func (s *ProfitGenerationScope) BeforeCreate(tx *gorm.DB) error {
	if s.ScopeID == uuid.Nil {
		s.ScopeID = uuid.New()
	}
	return nil
}
