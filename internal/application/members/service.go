package members

import (
	"context"
	"errors"
	"strings"

	"brickfolio-backend/internal/domain"
	"brickfolio-backend/internal/pkg/constants"
	"brickfolio-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("Member not found")
	ErrInvalidEmail    = errors.New("Invalid email format")
	ErrInvalidPassword = errors.New("Invalid password format")
	ErrEmailTaken      = errors.New("Email already registered")
	ErrInvalidFullname = errors.New("Full name is required and must contain only letters, spaces, hyphens and apostrophes")
	ErrInvalidRole     = errors.New("Invalid role")
)

// Service holds member directory operations. Members are both admin-app
// logins and the recipients of generated profit records.
type Service struct {
	DB *gorm.DB
}

// CreateInput carries fields for creating a member.
type CreateInput struct {
	Fullname string
	Email    string
	Password string
	Role     string
	TaxID    *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	fullname := strings.TrimSpace(in.Fullname)
	if fullname == "" || !validation.IsValidFullname(fullname) {
		return nil, ErrInvalidFullname
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}
	role := in.Role
	if role == "" {
		role = constants.Viewer
	}
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		TaxID:        in.TaxID,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateInput carries the editable fields of a member. Nil leaves the field
// untouched.
type UpdateInput struct {
	Fullname *string
	Email    *string
	Password *string
	Role     *string
	TaxID    *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Fullname != nil {
		fullname := strings.TrimSpace(*in.Fullname)
		if fullname == "" || !validation.IsValidFullname(fullname) {
			return nil, ErrInvalidFullname
		}
		u.Fullname = fullname
	}
	if in.Email != nil {
		if !validation.IsValidEmail(*in.Email) {
			return nil, ErrInvalidEmail
		}
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		var taken int64
		if err := s.DB.WithContext(ctx).Model(&domain.User{}).
			Where("email = ? AND user_id <> ?", email, u.UserID).
			Count(&taken).Error; err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ErrEmailTaken
		}
		u.Email = email
	}
	if in.Password != nil {
		if !validation.IsValidPassword(*in.Password) {
			return nil, ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 10)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !constants.IsValidRole(*in.Role) {
			return nil, ErrInvalidRole
		}
		u.Role = *in.Role
	}
	if in.TaxID != nil {
		u.TaxID = in.TaxID
	}
	if err := s.DB.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("user_id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
