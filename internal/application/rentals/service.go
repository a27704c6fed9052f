package rentals

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"brickfolio-backend/internal/application/overdue"
	"brickfolio-backend/internal/application/standards"
	"brickfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the rental payment lifecycle: generation from a rental
// standard, listing with overdue promotion, field edits and scoped clear.
type Service struct {
	DB       *gorm.DB
	Promoter *overdue.Promoter
}

// Generate expands the applicable rental standard into one PENDING payment per
// covered month of year. All-or-nothing: the batch is inserted in a single
// transaction that re-checks for existing rows right before insert; the
// composite unique index on (investment_id, year, month) is the backstop
// against concurrent generation for the same scope.
func (s *Service) Generate(ctx context.Context, investmentID uuid.UUID, year int) ([]domain.RentalPayment, error) {
	var created []domain.RentalPayment

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&domain.RentalPayment{}).
			Where("investment_id = ? AND year = ?", investmentID, year).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateGeneration
		}

		var stds []domain.RentalStandard
		if err := tx.Where("investment_id = ?", investmentID).Find(&stds).Error; err != nil {
			return err
		}

		bounded := false
		for _, std := range stds {
			if std.EndDate != nil {
				bounded = true
				break
			}
		}
		if !bounded {
			return ErrMissingStandard
		}

		var intersecting []domain.RentalStandard
		for _, std := range stds {
			if standards.IntersectsYear(std, year) {
				intersecting = append(intersecting, std)
			}
		}
		if len(intersecting) == 0 {
			return ErrNoApplicableStandard
		}

		// Overlapping intervals: the most recently effective standard wins,
		// same policy as standards.Resolve.
		applicable, _ := standards.Latest(intersecting)
		if applicable.RenterName == "" {
			return ErrIncompleteStandard
		}

		first, last, ok := standards.MonthRange(applicable, year)
		if !ok {
			return ErrNoApplicableStandard
		}

		batch := make([]domain.RentalPayment, 0, last-first+1)
		for month := first; month <= last; month++ {
			batch = append(batch, domain.RentalPayment{
				InvestmentID: investmentID,
				Year:         year,
				Month:        month,
				Amount:       applicable.MonthlyRent,
				Status:       domain.RecordStatusPending,
				RenterName:   applicable.RenterName,
				RenterTaxID:  applicable.RenterTaxID,
				PayerName:    applicable.RenterName,
			})
		}
		if err := tx.Create(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateGeneration
			}
			return err
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"rental_standard_id": applicable.RentalStandardID,
			"first_month":        first,
			"last_month":         last,
			"monthly_rent":       applicable.MonthlyRent,
		})
		if err := tx.Create(&domain.GenerationRun{
			Kind:           domain.RunKindRental,
			InvestmentID:   &investmentID,
			Year:           year,
			RecordsCreated: len(batch),
			Payload:        datatypes.JSON(payload),
		}).Error; err != nil {
			return err
		}

		created = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListFilter narrows List results. Year/Month/Status of zero value mean "any".
type ListFilter struct {
	InvestmentID *uuid.UUID
	Year         *int
	Month        *int
	Status       *string
}

// List returns payments matching the filter, promoting stale PENDING rows to
// OVERDUE first so callers always observe current status.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.RentalPayment, error) {
	q := s.DB.WithContext(ctx).Model(&domain.RentalPayment{})
	if f.InvestmentID != nil {
		q = q.Where("investment_id = ?", *f.InvestmentID)
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
	var payments []domain.RentalPayment
	if err := q.Order("year, month").Find(&payments).Error; err != nil {
		return nil, err
	}
	if s.Promoter != nil {
		return s.Promoter.PromoteRentalPayments(ctx, payments)
	}
	return payments, nil
}

// UpdateInput carries the editable fields of a generated payment. Nil leaves
// the field untouched.
type UpdateInput struct {
	Status        *string
	Amount        *int64
	PayerName     *string
	PaymentDate   *time.Time
	PaymentMethod *string
	Note          *string
}

// Update applies status transitions and field edits to one payment. Generated
// records are never regenerated in place; this is the only mutation path.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.RentalPayment, error) {
	var payment domain.RentalPayment
	if err := s.DB.WithContext(ctx).Where("rental_payment_id = ?", id).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if in.Status != nil {
		if !domain.ValidRecordStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		payment.Status = *in.Status
	}
	if in.Amount != nil {
		payment.Amount = *in.Amount
	}
	if in.PayerName != nil {
		payment.PayerName = *in.PayerName
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = in.PaymentDate
	}
	if in.PaymentMethod != nil {
		payment.PaymentMethod = in.PaymentMethod
	}
	if in.Note != nil {
		payment.Note = in.Note
	}
	if err := s.DB.WithContext(ctx).Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Delete removes a single payment.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("rental_payment_id = ?", id).Delete(&domain.RentalPayment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPaymentNotFound
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

// Clear deletes generated payments in scope inside a single transaction and
// returns the count. Destructive and irreversible; exists so an administrator
// can redo a generation run after correcting a standard.
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
		res := q.Delete(&domain.RentalPayment{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		return tx.Create(&domain.GenerationRun{
			Kind:           domain.RunKindRentalClear,
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
