package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecordStatusPending = "PENDING"
	RecordStatusPaid    = "PAID"
	RecordStatusOverdue = "OVERDUE"
)

// ValidRecordStatus reports whether s is an allowed payment/profit status.
func ValidRecordStatus(s string) bool {
	return s == RecordStatusPending || s == RecordStatusPaid || s == RecordStatusOverdue
}

// RentalPayment is one generated monthly rent obligation. Created only by the
// rental generator; the composite unique index on (investment_id, year, month)
// is the transactional duplication guard for a generation run.
type RentalPayment struct {
	RentalPaymentID uuid.UUID  `gorm:"column:rental_payment_id;type:uuid;primaryKey" json:"rental_payment_id"`
	InvestmentID    uuid.UUID  `gorm:"column:investment_id;type:uuid;not null;uniqueIndex:idx_rental_payments_scope" json:"investment_id"`
	Year            int        `gorm:"column:year;not null;uniqueIndex:idx_rental_payments_scope" json:"year"`
	Month           int        `gorm:"column:month;not null;uniqueIndex:idx_rental_payments_scope" json:"month"`
	Amount          int64      `gorm:"column:amount;not null" json:"amount"`
	Status          string     `gorm:"column:status;not null;default:PENDING" json:"status"`
	RenterName      string     `gorm:"column:renter_name;not null" json:"renter_name"`
	RenterTaxID     *string    `gorm:"column:renter_tax_id" json:"renter_tax_id"`
	PayerName       string     `gorm:"column:payer_name;not null" json:"payer_name"`
	PaymentDate     *time.Time `gorm:"column:payment_date;type:date" json:"payment_date"`
	PaymentMethod   *string    `gorm:"column:payment_method" json:"payment_method"`
	Note            *string    `gorm:"column:note" json:"note"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (RentalPayment) TableName() string {
	return "rental_payments"
}

func (p *RentalPayment) BeforeCreate(tx *gorm.DB) error {
	if p.RentalPaymentID == uuid.Nil {
		p.RentalPaymentID = uuid.New()
	}
	return nil
}
