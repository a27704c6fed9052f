package standards

import (
	"context"
	"time"

	"brickfolio-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service encapsulates CRUD for both standard families. Standards never
// retroactively alter generated records; generation is a point-in-time
// snapshot, so edits here only affect future runs.
type Service struct {
	DB *gorm.DB
}

// RentalStandardInput carries create/update fields for a rental standard.
type RentalStandardInput struct {
	InvestmentID uuid.UUID
	MonthlyRent  int64
	StartDate    time.Time
	EndDate      *time.Time
	RenterName   string
	RenterTaxID  *string
	Note         *string
}

// ProfitStandardInput carries create/update fields for a profit-sharing standard.
type ProfitStandardInput struct {
	InvestmentID uuid.UUID
	Type         string
	Value        decimal.Decimal
	MinAmount    *int64
	MaxAmount    *int64
	StartDate    time.Time
	EndDate      *time.Time
	Note         *string
}

func validateInterval(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrInvalidInterval
	}
	return nil
}

func validateClamp(min, max *int64) error {
	if min != nil && max != nil && *min > *max {
		return ErrInvalidClampBounds
	}
	return nil
}

// ListRentalStandards returns all rental standards for an investment, newest
// interval first.
func (s *Service) ListRentalStandards(ctx context.Context, investmentID uuid.UUID) ([]domain.RentalStandard, error) {
	if investmentID == uuid.Nil {
		return nil, ErrInvestmentRequired
	}
	var out []domain.RentalStandard
	if err := s.DB.WithContext(ctx).
		Where("investment_id = ?", investmentID).
		Order("start_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateRentalStandard(ctx context.Context, in RentalStandardInput) (*domain.RentalStandard, error) {
	if in.InvestmentID == uuid.Nil {
		return nil, ErrInvestmentRequired
	}
	if in.MonthlyRent <= 0 {
		return nil, ErrRentNotPositive
	}
	if err := validateInterval(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	std := domain.RentalStandard{
		InvestmentID: in.InvestmentID,
		MonthlyRent:  in.MonthlyRent,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		RenterName:   in.RenterName,
		RenterTaxID:  in.RenterTaxID,
		Note:         in.Note,
	}
	if err := s.DB.WithContext(ctx).Create(&std).Error; err != nil {
		return nil, err
	}
	return &std, nil
}

func (s *Service) UpdateRentalStandard(ctx context.Context, id uuid.UUID, in RentalStandardInput) (*domain.RentalStandard, error) {
	var std domain.RentalStandard
	if err := s.DB.WithContext(ctx).Where("rental_standard_id = ?", id).First(&std).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStandardNotFound
		}
		return nil, err
	}
	if in.MonthlyRent <= 0 {
		return nil, ErrRentNotPositive
	}
	if err := validateInterval(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	std.MonthlyRent = in.MonthlyRent
	std.StartDate = in.StartDate
	std.EndDate = in.EndDate
	std.RenterName = in.RenterName
	std.RenterTaxID = in.RenterTaxID
	std.Note = in.Note
	if err := s.DB.WithContext(ctx).Save(&std).Error; err != nil {
		return nil, err
	}
	return &std, nil
}

func (s *Service) DeleteRentalStandard(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("rental_standard_id = ?", id).Delete(&domain.RentalStandard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStandardNotFound
	}
	return nil
}

// ListProfitStandards returns all profit-sharing standards for an investment,
// newest interval first.
func (s *Service) ListProfitStandards(ctx context.Context, investmentID uuid.UUID) ([]domain.ProfitSharingStandard, error) {
	if investmentID == uuid.Nil {
		return nil, ErrInvestmentRequired
	}
	var out []domain.ProfitSharingStandard
	if err := s.DB.WithContext(ctx).
		Where("investment_id = ?", investmentID).
		Order("start_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateProfitStandard(ctx context.Context, in ProfitStandardInput) (*domain.ProfitSharingStandard, error) {
	if in.InvestmentID == uuid.Nil {
		return nil, ErrInvestmentRequired
	}
	if !domain.ValidProfitType(in.Type) {
		return nil, ErrInvalidProfitType
	}
	if !in.Value.IsPositive() {
		return nil, ErrValueNotPositive
	}
	if err := validateInterval(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := validateClamp(in.MinAmount, in.MaxAmount); err != nil {
		return nil, err
	}
	std := domain.ProfitSharingStandard{
		InvestmentID: in.InvestmentID,
		Type:         in.Type,
		Value:        in.Value,
		MinAmount:    in.MinAmount,
		MaxAmount:    in.MaxAmount,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Note:         in.Note,
	}
	if err := s.DB.WithContext(ctx).Create(&std).Error; err != nil {
		return nil, err
	}
	return &std, nil
}

func (s *Service) UpdateProfitStandard(ctx context.Context, id uuid.UUID, in ProfitStandardInput) (*domain.ProfitSharingStandard, error) {
	var std domain.ProfitSharingStandard
	if err := s.DB.WithContext(ctx).Where("profit_standard_id = ?", id).First(&std).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrStandardNotFound
		}
		return nil, err
	}
	if !domain.ValidProfitType(in.Type) {
		return nil, ErrInvalidProfitType
	}
	if !in.Value.IsPositive() {
		return nil, ErrValueNotPositive
	}
	if err := validateInterval(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if err := validateClamp(in.MinAmount, in.MaxAmount); err != nil {
		return nil, err
	}
	std.Type = in.Type
	std.Value = in.Value
	std.MinAmount = in.MinAmount
	std.MaxAmount = in.MaxAmount
	std.StartDate = in.StartDate
	std.EndDate = in.EndDate
	std.Note = in.Note
	if err := s.DB.WithContext(ctx).Save(&std).Error; err != nil {
		return nil, err
	}
	return &std, nil
}

func (s *Service) DeleteProfitStandard(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("profit_standard_id = ?", id).Delete(&domain.ProfitSharingStandard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStandardNotFound
	}
	return nil
}
