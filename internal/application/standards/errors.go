package standards

import "errors"

var (
	ErrStandardNotFound   = errors.New("Standard not found")
	ErrInvestmentRequired = errors.New("investment_id is required")
	ErrInvalidInterval    = errors.New("end_date must not be before start_date")
	ErrRentNotPositive    = errors.New("monthly_rent must be greater than zero")
	ErrInvalidProfitType  = errors.New("type must be PERCENTAGE, FIXED_AMOUNT or OTHER")
	ErrValueNotPositive   = errors.New("value must be greater than zero")
	ErrInvalidClampBounds = errors.New("min_amount must not exceed max_amount")
)
