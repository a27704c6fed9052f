package overdue

import (
	"context"

	"brickfolio-backend/internal/domain"
	"brickfolio-backend/internal/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promoter moves stale PENDING records to OVERDUE. A record is stale when its
// (year, month) is strictly earlier than the clock's current month. Promotion
// is persisted immediately — list reads return the stored status, not a view.
// Re-promoting is a no-op, so concurrent runs need no locking beyond
// per-record write atomicity.
type Promoter struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func (p *Promoter) now() (year, month int) {
	c := p.Clock
	if c == nil {
		c = clock.System{}
	}
	t := c.Now()
	return t.Year(), int(t.Month())
}

// IsPast reports whether (year, month) precedes the clock's current month.
func (p *Promoter) IsPast(year, month int) bool {
	curY, curM := p.now()
	return year < curY || (year == curY && month < curM)
}

// PromoteRentalPayments persists PENDING->OVERDUE for stale payments and
// returns the slice with statuses updated in place.
func (p *Promoter) PromoteRentalPayments(ctx context.Context, payments []domain.RentalPayment) ([]domain.RentalPayment, error) {
	var ids []uuid.UUID
	for i := range payments {
		if payments[i].Status == domain.RecordStatusPending && p.IsPast(payments[i].Year, payments[i].Month) {
			ids = append(ids, payments[i].RentalPaymentID)
			payments[i].Status = domain.RecordStatusOverdue
		}
	}
	if len(ids) == 0 {
		return payments, nil
	}
	if err := p.DB.WithContext(ctx).
		Model(&domain.RentalPayment{}).
		Where("rental_payment_id IN ? AND status = ?", ids, domain.RecordStatusPending).
		Update("status", domain.RecordStatusOverdue).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// PromoteMemberProfits persists PENDING->OVERDUE for stale profits and
// returns the slice with statuses updated in place.
func (p *Promoter) PromoteMemberProfits(ctx context.Context, profits []domain.MemberProfit) ([]domain.MemberProfit, error) {
	var ids []uuid.UUID
	for i := range profits {
		if profits[i].Status == domain.RecordStatusPending && p.IsPast(profits[i].Year, profits[i].Month) {
			ids = append(ids, profits[i].MemberProfitID)
			profits[i].Status = domain.RecordStatusOverdue
		}
	}
	if len(ids) == 0 {
		return profits, nil
	}
	if err := p.DB.WithContext(ctx).
		Model(&domain.MemberProfit{}).
		Where("member_profit_id IN ? AND status = ?", ids, domain.RecordStatusPending).
		Update("status", domain.RecordStatusOverdue).Error; err != nil {
		return nil, err
	}
	return profits, nil
}
