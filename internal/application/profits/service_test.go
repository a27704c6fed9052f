package profits

import (
	"context"
	"testing"
	"time"

	"brickfolio-backend/internal/application/overdue"
	"brickfolio-backend/internal/domain"
	"brickfolio-backend/internal/pkg/clock"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProfitsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Investment{}, &domain.ProfitSharingStandard{},
		&domain.RentalPayment{}, &domain.MemberProfit{},
		&domain.ProfitGenerationScope{}, &domain.GenerationRun{},
	))
	svc := &Service{DB: db}
	return svc, db
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y, m, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func int64Ptr(v int64) *int64 { return &v }

func seedMember(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	u := domain.User{Fullname: name, Email: name + "@example.com", PasswordHash: "x", Role: "viewer"}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func seedInvestment(t *testing.T, db *gorm.DB, memberID *uuid.UUID) uuid.UUID {
	inv := domain.Investment{Name: "Unit 4B", Type: "apartment", UserID: memberID, Status: domain.InvestmentStatusActive}
	require.NoError(t, db.Create(&inv).Error)
	return inv.InvestmentID
}

func seedRent(t *testing.T, db *gorm.DB, investmentID uuid.UUID, year int, months []int, amount int64) {
	for _, m := range months {
		require.NoError(t, db.Create(&domain.RentalPayment{
			InvestmentID: investmentID,
			Year:         year,
			Month:        m,
			Amount:       amount,
			Status:       domain.RecordStatusPending,
			RenterName:   "Renter",
			PayerName:    "Renter",
		}).Error)
	}
}

func seedProfitStandard(t *testing.T, db *gorm.DB, investmentID uuid.UUID, typ string, value string, min, max *int64, start time.Time, end *time.Time) domain.ProfitSharingStandard {
	std := domain.ProfitSharingStandard{
		InvestmentID: investmentID,
		Type:         typ,
		Value:        decimal.RequireFromString(value),
		MinAmount:    min,
		MaxAmount:    max,
		StartDate:    start,
		EndDate:      end,
	}
	require.NoError(t, db.Create(&std).Error)
	return std
}

func allMonths() []int {
	out := make([]int, 12)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestGenerate_PercentageWithMinClamp(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", int64Ptr(500), nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 12)
	assert.Empty(t, result.Warnings)

	// 10% of 3000 is 300, clamped up to the 500 floor.
	for _, p := range result.Profits {
		assert.Equal(t, int64(500), p.Amount)
		assert.Equal(t, memberID, p.MemberID)
		assert.Equal(t, domain.RecordStatusPending, p.Status)
	}
}

func TestGenerate_PercentageMinNotBinding(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 10000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", int64Ptr(500), nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 12)
	for _, p := range result.Profits {
		assert.Equal(t, int64(1000), p.Amount)
	}
}

func TestGenerate_MaxClamp(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, []int{1}, 100000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, int64Ptr(8000),
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 1)
	assert.Equal(t, int64(8000), result.Profits[0].Amount)
}

func TestGenerate_FixedAmountAndOther(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, []int{1, 2}, 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypeFixedAmount, "750", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))
	// OTHER behaves as a fixed-amount passthrough.
	seedProfitStandard(t, db, invID, domain.ProfitTypeOther, "250", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 4)

	amounts := map[int64]int{}
	for _, p := range result.Profits {
		amounts[p.Amount]++
	}
	assert.Equal(t, 2, amounts[750])
	assert.Equal(t, 2, amounts[250])
}

func TestGenerate_SkipsMonthsWithoutRent(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, []int{3, 4, 7}, 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 3)
	months := []int{result.Profits[0].Month, result.Profits[1].Month, result.Profits[2].Month}
	assert.ElementsMatch(t, []int{3, 4, 7}, months)
}

func TestGenerate_Duplicate(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	_, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrDuplicateGeneration)
}

func TestGenerate_InvestmentNotFound(t *testing.T) {
	svc, _ := setupProfitsTest(t)
	_, err := svc.Generate(context.Background(), uuid.New(), 2024)
	assert.ErrorIs(t, err, ErrInvestmentNotFound)
}

func TestGenerate_MissingRentalData(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	_, err := svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrMissingRentalData)
}

func TestGenerate_MissingProfitStandard(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)

	_, err := svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrMissingProfitStandard)
}

func TestGenerate_AutoRepairsMissingMember(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "first")
	seedMember(t, db, "second")
	invID := seedInvestment(t, db, nil)
	seedRent(t, db, invID, 2024, []int{1}, 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	require.Len(t, result.Profits, 1)
	assert.Equal(t, memberID, result.Profits[0].MemberID, "first member by creation order is assigned")

	// The repair is persisted on the investment.
	var inv domain.Investment
	require.NoError(t, db.Where("investment_id = ?", invID).First(&inv).Error)
	require.NotNil(t, inv.UserID)
	assert.Equal(t, memberID, *inv.UserID)
}

func TestGenerate_RepairRollsBackWithFailedRun(t *testing.T) {
	svc, db := setupProfitsTest(t)
	seedMember(t, db, "alice")
	invID := seedInvestment(t, db, nil)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	// No rental payments: the run fails after the member repair, so the
	// repaired association must roll back with it.
	_, err := svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrMissingRentalData)

	var inv domain.Investment
	require.NoError(t, db.Where("investment_id = ?", invID).First(&inv).Error)
	assert.Nil(t, inv.UserID, "failed run must not persist the repair")
}

func TestGenerate_NoMemberAvailable(t *testing.T) {
	svc, db := setupProfitsTest(t)
	invID := seedInvestment(t, db, nil)
	seedRent(t, db, invID, 2024, []int{1}, 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	_, err := svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrMissingMemberAssociation)
}

func TestGenerate_BadStandardBecomesWarning(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	good := seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))
	// Unknown type sneaks in below the service layer; generation must not abort.
	bad := seedProfitStandard(t, db, invID, "DIVIDEND", "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	assert.Len(t, result.Profits, 12, "good standard still commits")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, bad.ProfitStandardID, result.Warnings[0].ProfitStandardID)
	assert.NotEqual(t, good.ProfitStandardID, result.Warnings[0].ProfitStandardID)
}

func TestGenerate_MultipleStandardsAllApply(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 10000)
	// Unlike rental standards, overlapping profit standards stack.
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))
	seedProfitStandard(t, db, invID, domain.ProfitTypeFixedAmount, "200", nil, nil,
		date(2024, 7, 1), datePtr(2024, 12, 31))

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	assert.Len(t, result.Profits, 18)
}

func TestList_PromotesOverdue(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2023, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2023, 1, 1), datePtr(2023, 12, 31))
	_, err := svc.Generate(context.Background(), invID, 2023)
	require.NoError(t, err)

	svc.Promoter = &overdue.Promoter{DB: db, Clock: clock.Fixed{T: date(2024, 6, 15)}}

	year := 2023
	profits, err := svc.List(context.Background(), ListFilter{InvestmentID: &invID, Year: &year})
	require.NoError(t, err)
	require.Len(t, profits, 12)
	for _, p := range profits {
		assert.Equal(t, domain.RecordStatusOverdue, p.Status)
	}
}

func TestUpdateAndClear(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))
	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)

	paid := domain.RecordStatusPaid
	updated, err := svc.Update(context.Background(), result.Profits[0].MemberProfitID, UpdateInput{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, domain.RecordStatusPaid, updated.Status)

	bad := "DONE"
	_, err = svc.Update(context.Background(), result.Profits[0].MemberProfitID, UpdateInput{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	month := 5
	deleted, err := svc.Clear(context.Background(), ClearScope{InvestmentID: &invID, Year: 2024, Month: &month})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining int64
	require.NoError(t, db.Model(&domain.MemberProfit{}).Count(&remaining).Error)
	assert.Equal(t, int64(11), remaining)
}

func TestGenerate_ScopeMarkerBlocksSecondRun(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	// A committed run that left only its scope marker (the state a concurrent
	// generator observes after the winner commits) must block this run at the
	// unique index, not at the row count.
	require.NoError(t, db.Create(&domain.ProfitGenerationScope{
		InvestmentID: invID, Year: 2024,
	}).Error)

	_, err := svc.Generate(context.Background(), invID, 2024)
	assert.ErrorIs(t, err, ErrDuplicateGeneration)

	var count int64
	require.NoError(t, db.Model(&domain.MemberProfit{}).Count(&count).Error)
	assert.Zero(t, count, "losing run must not persist any profits")
}

func TestClear_ReleasesScopeForRegeneration(t *testing.T) {
	svc, db := setupProfitsTest(t)
	memberID := seedMember(t, db, "alice")
	invID := seedInvestment(t, db, &memberID)
	seedRent(t, db, invID, 2024, allMonths(), 3000)
	seedProfitStandard(t, db, invID, domain.ProfitTypePercentage, "10", nil, nil,
		date(2024, 1, 1), datePtr(2024, 12, 31))

	_, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)

	deleted, err := svc.Clear(context.Background(), ClearScope{InvestmentID: &invID, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)

	var markers int64
	require.NoError(t, db.Model(&domain.ProfitGenerationScope{}).Count(&markers).Error)
	assert.Zero(t, markers, "clear must release the scope marker")

	result, err := svc.Generate(context.Background(), invID, 2024)
	require.NoError(t, err)
	assert.Len(t, result.Profits, 12)
}
