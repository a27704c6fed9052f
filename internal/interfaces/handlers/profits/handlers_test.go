package profits

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	profitsvc "brickfolio-backend/internal/application/profits"
	"brickfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProfitsHandlers(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Investment{}, &domain.ProfitSharingStandard{},
		&domain.RentalPayment{}, &domain.MemberProfit{},
		&domain.ProfitGenerationScope{}, &domain.GenerationRun{},
	))
	svc := &profitsvc.Service{DB: db}
	return &Handlers{Service: svc}, db
}

func seedGenerationScope(t *testing.T, db *gorm.DB) uuid.UUID {
	member := domain.User{Fullname: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: "viewer"}
	require.NoError(t, db.Create(&member).Error)
	inv := domain.Investment{Name: "Unit 4B", Type: "apartment", UserID: &member.UserID, Status: domain.InvestmentStatusActive}
	require.NoError(t, db.Create(&inv).Error)

	for m := 1; m <= 12; m++ {
		require.NoError(t, db.Create(&domain.RentalPayment{
			InvestmentID: inv.InvestmentID, Year: 2024, Month: m, Amount: 3000,
			Status: domain.RecordStatusPending, RenterName: "R", PayerName: "R",
		}).Error)
	}

	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	min := int64(500)
	require.NoError(t, db.Create(&domain.ProfitSharingStandard{
		InvestmentID: inv.InvestmentID,
		Type:         domain.ProfitTypePercentage,
		Value:        decimal.NewFromInt(10),
		MinAmount:    &min,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      &end,
	}).Error)
	return inv.InvestmentID
}

func TestGenerate_ReturnsBatchAndWarnings(t *testing.T) {
	h, db := setupProfitsHandlers(t)
	invID := seedGenerationScope(t, db)

	app := fiber.New()
	app.Post("/generate", h.Generate)

	b, _ := json.Marshal(map[string]interface{}{"investment_id": invID.String(), "year": 2024})
	req := httptest.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	profits, _ := data["profits"].([]interface{})
	assert.Len(t, profits, 12)
	warnings, ok := data["warnings"].([]interface{})
	require.True(t, ok, "warnings array must always be present")
	assert.Empty(t, warnings)

	first, _ := profits[0].(map[string]interface{})
	assert.Equal(t, float64(500), first["amount"], "10 percent of 3000 clamped up to the 500 floor")
}

func TestGenerate_MissingRentalData(t *testing.T) {
	h, db := setupProfitsHandlers(t)
	member := domain.User{Fullname: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: "viewer"}
	require.NoError(t, db.Create(&member).Error)
	inv := domain.Investment{Name: "Unit 4B", UserID: &member.UserID, Status: domain.InvestmentStatusActive}
	require.NoError(t, db.Create(&inv).Error)

	app := fiber.New()
	app.Post("/generate", h.Generate)

	b, _ := json.Marshal(map[string]interface{}{"investment_id": inv.InvestmentID.String(), "year": 2024})
	req := httptest.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	errObj, _ := out["error"].(map[string]interface{})
	assert.Equal(t, "No rental payments exist for this investment and year; generate rental payments first", errObj["message"])
}

func TestGenerate_InvestmentNotFound(t *testing.T) {
	h, _ := setupProfitsHandlers(t)
	app := fiber.New()
	app.Post("/generate", h.Generate)

	b, _ := json.Marshal(map[string]interface{}{"investment_id": uuid.New().String(), "year": 2024})
	req := httptest.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestList_FilterByMember(t *testing.T) {
	h, db := setupProfitsHandlers(t)
	invID := seedGenerationScope(t, db)

	app := fiber.New()
	app.Post("/generate", h.Generate)
	app.Get("/profits", h.List)

	b, _ := json.Marshal(map[string]interface{}{"investment_id": invID.String(), "year": 2024})
	req := httptest.NewRequest("POST", "/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest("GET", "/profits?investment_id="+invID.String()+"&year=2024", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data, _ := out["data"].([]interface{})
	assert.Len(t, data, 12)
}
