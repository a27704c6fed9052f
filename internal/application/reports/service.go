package reports

import (
	"context"

	"brickfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service builds read-only collection/distribution summaries over generated
// records. Summaries are computed from stored rows at call time; they never
// mutate anything.
type Service struct {
	DB *gorm.DB
}

// MonthSummary is one month of an annual report.
type MonthSummary struct {
	Month             int   `json:"month"`
	RentBilled        int64 `json:"rent_billed"`
	RentCollected     int64 `json:"rent_collected"`
	ProfitDistributed int64 `json:"profit_distributed"`
	ProfitPaid        int64 `json:"profit_paid"`
}

// AnnualSummary aggregates a year of rental payments and member profits,
// optionally scoped to one investment.
type AnnualSummary struct {
	Year            int              `json:"year"`
	InvestmentID    *uuid.UUID       `json:"investment_id"`
	RentBilled      int64            `json:"rent_billed"`
	RentCollected   int64            `json:"rent_collected"`
	RentOutstanding int64            `json:"rent_outstanding"`
	ProfitAccrued   int64            `json:"profit_accrued"`
	ProfitPaid      int64            `json:"profit_paid"`
	PaymentStatus   map[string]int64 `json:"payment_status_counts"`
	Months          []MonthSummary   `json:"months"`
}

type statusRow struct {
	Month  int
	Status string
	Total  int64
	Count  int64
}

// Annual returns the per-month and whole-year totals for a target year.
func (s *Service) Annual(ctx context.Context, year int, investmentID *uuid.UUID) (*AnnualSummary, error) {
	out := &AnnualSummary{
		Year:          year,
		InvestmentID:  investmentID,
		PaymentStatus: map[string]int64{},
		Months:        make([]MonthSummary, 12),
	}
	for i := range out.Months {
		out.Months[i].Month = i + 1
	}

	var payRows []statusRow
	q := s.DB.WithContext(ctx).Model(&domain.RentalPayment{}).
		Select("month, status, SUM(amount) AS total, COUNT(*) AS count").
		Where("year = ?", year)
	if investmentID != nil {
		q = q.Where("investment_id = ?", *investmentID)
	}
	if err := q.Group("month, status").Scan(&payRows).Error; err != nil {
		return nil, err
	}
	for _, r := range payRows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		m := &out.Months[r.Month-1]
		m.RentBilled += r.Total
		out.RentBilled += r.Total
		out.PaymentStatus[r.Status] += r.Count
		if r.Status == domain.RecordStatusPaid {
			m.RentCollected += r.Total
			out.RentCollected += r.Total
		} else {
			out.RentOutstanding += r.Total
		}
	}

	var profitRows []statusRow
	q = s.DB.WithContext(ctx).Model(&domain.MemberProfit{}).
		Select("month, status, SUM(amount) AS total, COUNT(*) AS count").
		Where("year = ?", year)
	if investmentID != nil {
		q = q.Where("investment_id = ?", *investmentID)
	}
	if err := q.Group("month, status").Scan(&profitRows).Error; err != nil {
		return nil, err
	}
	for _, r := range profitRows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		m := &out.Months[r.Month-1]
		m.ProfitDistributed += r.Total
		out.ProfitAccrued += r.Total
		if r.Status == domain.RecordStatusPaid {
			m.ProfitPaid += r.Total
			out.ProfitPaid += r.Total
		}
	}

	return out, nil
}
