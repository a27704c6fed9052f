package investments

import (
	"context"
	"errors"
	"strings"

	"brickfolio-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("Investment not found")
	ErrMemberNotFound = errors.New("Member not found")
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidStatus  = errors.New("status must be active or closed")
)

// Service encapsulates investment CRUD and member re-association.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries create/update fields for an investment.
type CreateInput struct {
	Name   string
	Type   string
	UserID *uuid.UUID
	Status string
	Note   *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Investment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	status := in.Status
	if status == "" {
		status = domain.InvestmentStatusActive
	}
	if status != domain.InvestmentStatusActive && status != domain.InvestmentStatusClosed {
		return nil, ErrInvalidStatus
	}
	if in.UserID != nil {
		var member domain.User
		if err := s.DB.WithContext(ctx).Where("user_id = ?", *in.UserID).First(&member).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
	}
	inv := &domain.Investment{
		Name:   name,
		Type:   strings.TrimSpace(in.Type),
		UserID: in.UserID,
		Status: status,
		Note:   in.Note,
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Investment, error) {
	var out []domain.Investment
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	var inv domain.Investment
	if err := s.DB.WithContext(ctx).Where("investment_id = ?", id).First(&inv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in CreateInput) (*domain.Investment, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if in.Status != "" {
		if in.Status != domain.InvestmentStatusActive && in.Status != domain.InvestmentStatusClosed {
			return nil, ErrInvalidStatus
		}
		inv.Status = in.Status
	}
	inv.Name = name
	inv.Type = strings.TrimSpace(in.Type)
	inv.Note = in.Note
	if err := s.DB.WithContext(ctx).Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("investment_id = ?", id).Delete(&domain.Investment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignMember re-associates an investment with a member. This is the
// explicit administrator path for the repair the profit generator performs
// automatically on legacy rows.
func (s *Service) AssignMember(ctx context.Context, id, memberID uuid.UUID) (*domain.Investment, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var member domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", memberID).First(&member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	inv.UserID = &member.UserID
	if err := s.DB.WithContext(ctx).Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}
