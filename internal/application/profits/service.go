package profits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"brickfolio-backend/internal/application/overdue"
	"brickfolio-backend/internal/application/standards"
	"brickfolio-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the member profit lifecycle: generation from profit-sharing
// standards, listing with overdue promotion, field edits and scoped clear.
type Service struct {
	DB       *gorm.DB
	Promoter *overdue.Promoter
}

// Warning reports a profit standard that failed during generation while the
// remaining standards proceeded.
type Warning struct {
	ProfitStandardID uuid.UUID `json:"profit_standard_id"`
	Message          string    `json:"message"`
}

// GenerateResult is the outcome of a profit generation run: the committed
// records plus per-standard warnings.
type GenerateResult struct {
	Profits  []domain.MemberProfit
	Warnings []Warning
}

// Generate expands every profit-sharing standard that intersects year into
// PENDING member profits, one per covered month that has a rental payment.
// The percentage base is the actual collected rent amount for the month, not
// the standard's nominal rent. Standards are processed independently: a
// failing standard is collected as a warning and the rest still commit —
// unlike rental generation, this is partial success by design.
func (s *Service) Generate(ctx context.Context, investmentID uuid.UUID, year int) (*GenerateResult, error) {
	result := &GenerateResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// First write of the transaction: the scope marker's unique index is
		// the atomic duplication guard. member_profits itself has no unique
		// key, so without this a concurrent generate of the same scope would
		// pass the count below and commit a second batch.
		if err := tx.Create(&domain.ProfitGenerationScope{
			InvestmentID: investmentID,
			Year:         year,
		}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateGeneration
			}
			return err
		}

		// Marker-less rows (partial clears, imported data) still count.
		var existing int64
		if err := tx.Model(&domain.MemberProfit{}).
			Where("investment_id = ? AND year = ?", investmentID, year).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateGeneration
		}

		var inv domain.Investment
		if err := tx.Where("investment_id = ?", investmentID).First(&inv).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInvestmentNotFound
			}
			return err
		}

		repaired := false
		if inv.UserID == nil {
			// Legacy rows may lack an owning member. One-time repair:
			// associate the first member in the directory and continue.
			// Misattribution hazard — logged and recorded in the audit row.
			var member domain.User
			if err := tx.Order("created_at").First(&member).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrMissingMemberAssociation
				}
				return err
			}
			inv.UserID = &member.UserID
			if err := tx.Save(&inv).Error; err != nil {
				return err
			}
			repaired = true
			log.Warn().
				Str("investment_id", investmentID.String()).
				Str("member_id", member.UserID.String()).
				Msg("investment had no member; auto-associated first available member")
		}

		var payments []domain.RentalPayment
		if err := tx.Where("investment_id = ? AND year = ?", investmentID, year).
			Find(&payments).Error; err != nil {
			return err
		}
		if len(payments) == 0 {
			return ErrMissingRentalData
		}
		rentByMonth := make(map[int]int64, len(payments))
		for _, p := range payments {
			rentByMonth[p.Month] = p.Amount
		}

		var stds []domain.ProfitSharingStandard
		if err := tx.Where("investment_id = ?", investmentID).Find(&stds).Error; err != nil {
			return err
		}
		if len(stds) == 0 {
			return ErrMissingProfitStandard
		}

		for _, std := range stds {
			first, last, ok := standards.MonthRange(std, year)
			if !ok {
				continue
			}
			batch, err := expandStandard(std, *inv.UserID, year, first, last, rentByMonth)
			if err != nil {
				result.Warnings = append(result.Warnings, Warning{
					ProfitStandardID: std.ProfitStandardID,
					Message:          err.Error(),
				})
				continue
			}
			if len(batch) == 0 {
				continue
			}
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
			result.Profits = append(result.Profits, batch...)
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"member_id":         inv.UserID,
			"member_repaired":   repaired,
			"standards_applied": len(stds),
			"warnings":          result.Warnings,
		})
		return tx.Create(&domain.GenerationRun{
			Kind:           domain.RunKindProfit,
			InvestmentID:   &investmentID,
			Year:           year,
			RecordsCreated: len(result.Profits),
			Payload:        datatypes.JSON(payload),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// expandStandard computes one PENDING profit per covered month that has a
// rental payment; months without one are skipped, not zeroed.
func expandStandard(std domain.ProfitSharingStandard, memberID uuid.UUID, year, first, last int, rentByMonth map[int]int64) ([]domain.MemberProfit, error) {
	if !std.Value.IsPositive() {
		return nil, fmt.Errorf("value %s is not positive", std.Value)
	}

	var batch []domain.MemberProfit
	for month := first; month <= last; month++ {
		rent, ok := rentByMonth[month]
		if !ok {
			continue
		}

		var raw decimal.Decimal
		switch std.Type {
		case domain.ProfitTypePercentage:
			raw = decimal.NewFromInt(rent).Mul(std.Value).Div(decimal.NewFromInt(100))
		case domain.ProfitTypeFixedAmount, domain.ProfitTypeOther:
			// OTHER is a fixed-amount passthrough.
			raw = std.Value
		default:
			return nil, fmt.Errorf("unknown profit type %q", std.Type)
		}

		// Min-clamp before max-clamp; the order is part of the contract.
		if std.MinAmount != nil {
			if min := decimal.NewFromInt(*std.MinAmount); raw.LessThan(min) {
				raw = min
			}
		}
		if std.MaxAmount != nil {
			if max := decimal.NewFromInt(*std.MaxAmount); raw.GreaterThan(max) {
				raw = max
			}
		}

		batch = append(batch, domain.MemberProfit{
			InvestmentID: std.InvestmentID,
			MemberID:     memberID,
			Year:         year,
			Month:        month,
			Amount:       raw.Round(0).IntPart(),
			Status:       domain.RecordStatusPending,
		})
	}
	return batch, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	InvestmentID *uuid.UUID
	MemberID     *uuid.UUID
	Year         *int
	Month        *int
	Status       *string
}

// List returns profits matching the filter, promoting stale PENDING rows to
// OVERDUE first so callers always observe current status.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.MemberProfit, error) {
	q := s.DB.WithContext(ctx).Model(&domain.MemberProfit{})
	if f.InvestmentID != nil {
		q = q.Where("investment_id = ?", *f.InvestmentID)
	}
	if f.MemberID != nil {
		q = q.Where("member_id = ?", *f.MemberID)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	var profits []domain.MemberProfit
	if err := q.Order("year, month").Find(&profits).Error; err != nil {
		return nil, err
	}
	if s.Promoter != nil {
		return s.Promoter.PromoteMemberProfits(ctx, profits)
	}
	return profits, nil
}

// UpdateInput carries the editable fields of a generated profit. Nil leaves
// the field untouched.
type UpdateInput struct {
	Status        *string
	Amount        *int64
	PaymentDate   *time.Time
	PaymentMethod *string
	Note          *string
}

// Update applies status transitions and field edits to one profit record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.MemberProfit, error) {
	var profit domain.MemberProfit
	if err := s.DB.WithContext(ctx).Where("member_profit_id = ?", id).First(&profit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProfitNotFound
		}
		return nil, err
	}
	if in.Status != nil {
		if !domain.ValidRecordStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		profit.Status = *in.Status
	}
	if in.Amount != nil {
		profit.Amount = *in.Amount
	}
	if in.PaymentDate != nil {
		profit.PaymentDate = in.PaymentDate
	}
	if in.PaymentMethod != nil {
		profit.PaymentMethod = in.PaymentMethod
	}
	if in.Note != nil {
		profit.Note = in.Note
	}
	if err := s.DB.WithContext(ctx).Save(&profit).Error; err != nil {
		return nil, err
	}
	return &profit, nil
}

// Delete removes a single profit record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("member_profit_id = ?", id).Delete(&domain.MemberProfit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfitNotFound
	}
	return nil
}

// ClearScope selects the records a clear run deletes. Year is required;
// investment and month are optional narrowings.
type ClearScope struct {
	InvestmentID *uuid.UUID
	Year         int
	Month        *int
}

// Clear deletes generated profits in scope inside a single transaction and
// returns the count.
func (s *Service) Clear(ctx context.Context, scope ClearScope) (int64, error) {
	var deleted int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("year = ?", scope.Year)
		if scope.InvestmentID != nil {
			q = q.Where("investment_id = ?", *scope.InvestmentID)
		}
		if scope.Month != nil {
			q = q.Where("month = ?", *scope.Month)
		}
		res := q.Delete(&domain.MemberProfit{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		// Release the generation markers for the touched scopes. After a
		// month-scoped clear the surviving rows still block regeneration
		// through the duplicate count.
		sq := tx.Where("year = ?", scope.Year)
		if scope.InvestmentID != nil {
			sq = sq.Where("investment_id = ?", *scope.InvestmentID)
		}
		if err := sq.Delete(&domain.ProfitGenerationScope{}).Error; err != nil {
			return err
		}

		return tx.Create(&domain.GenerationRun{
			Kind:           domain.RunKindProfitClear,
			InvestmentID:   scope.InvestmentID,
			Year:           scope.Year,
			Month:          scope.Month,
			RecordsDeleted: int(deleted),
		}).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
