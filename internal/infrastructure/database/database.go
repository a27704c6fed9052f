package database

import (
	"brickfolio-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// when running behind a connection pooler (PgBouncer and friends).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

// AutoMigrate runs migrations for all models, including the unique indexes
// that back the duplicate-generation guards: the composite index on
// rental_payments and the scope marker for member profits.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Investment{},
		&domain.RentalStandard{},
		&domain.ProfitSharingStandard{},
		&domain.RentalPayment{},
		&domain.MemberProfit{},
		&domain.ProfitGenerationScope{},
		&domain.GenerationRun{},
	)
}
