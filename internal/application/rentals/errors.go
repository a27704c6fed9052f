package rentals

import "errors"

// Generation preconditions are hard business-rule rejections, never retried.
// Messages are surfaced verbatim to the caller.
var (
	ErrDuplicateGeneration  = errors.New("Rental payments already exist for this investment and year")
	ErrMissingStandard      = errors.New("No rental standard with both start and end dates exists for this investment")
	ErrNoApplicableStandard = errors.New("No rental standard covers the target year")
	ErrIncompleteStandard   = errors.New("The applicable rental standard has no renter name")
	ErrPaymentNotFound      = errors.New("Rental payment not found")
	ErrInvalidStatus        = errors.New("status must be PENDING, PAID or OVERDUE")
)
