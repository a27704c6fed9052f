package investments

import (
	"context"
	"testing"

	"brickfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvestmentsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Investment{}))
	return &Service{DB: db}, db
}

func seedMember(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	u := domain.User{Fullname: name, Email: name + "@example.com", PasswordHash: "x", Role: "viewer"}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func TestCreate(t *testing.T) {
	svc, db := setupInvestmentsTest(t)
	memberID := seedMember(t, db, "alice")

	inv, err := svc.Create(context.Background(), CreateInput{
		Name: "Unit 4B", Type: "apartment", UserID: &memberID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvestmentStatusActive, inv.Status, "status defaults to active")
	require.NotNil(t, inv.UserID)
	assert.Equal(t, memberID, *inv.UserID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := setupInvestmentsTest(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Unit", Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	missing := uuid.New()
	_, err = svc.Create(context.Background(), CreateInput{Name: "Unit", UserID: &missing})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetUpdateDelete(t *testing.T) {
	svc, _ := setupInvestmentsTest(t)
	inv, err := svc.Create(context.Background(), CreateInput{Name: "Unit 4B", Type: "apartment"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), inv.InvestmentID)
	require.NoError(t, err)
	assert.Equal(t, "Unit 4B", got.Name)

	updated, err := svc.Update(context.Background(), inv.InvestmentID, CreateInput{
		Name: "Unit 5C", Type: "apartment", Status: domain.InvestmentStatusClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, "Unit 5C", updated.Name)
	assert.Equal(t, domain.InvestmentStatusClosed, updated.Status)

	require.NoError(t, svc.Delete(context.Background(), inv.InvestmentID))
	_, err = svc.Get(context.Background(), inv.InvestmentID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), inv.InvestmentID), ErrNotFound)
}

func TestAssignMember(t *testing.T) {
	svc, db := setupInvestmentsTest(t)
	inv, err := svc.Create(context.Background(), CreateInput{Name: "Unit 4B"})
	require.NoError(t, err)
	memberID := seedMember(t, db, "bob")

	updated, err := svc.AssignMember(context.Background(), inv.InvestmentID, memberID)
	require.NoError(t, err)
	require.NotNil(t, updated.UserID)
	assert.Equal(t, memberID, *updated.UserID)

	_, err = svc.AssignMember(context.Background(), inv.InvestmentID, uuid.New())
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = svc.AssignMember(context.Background(), uuid.New(), memberID)
	assert.ErrorIs(t, err, ErrNotFound)
}
