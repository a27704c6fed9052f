package profits

import "errors"

// Generation preconditions are hard business-rule rejections, never retried.
// Messages are surfaced verbatim to the caller.
var (
	ErrDuplicateGeneration      = errors.New("Member profits already exist for this investment and year")
	ErrInvestmentNotFound       = errors.New("Investment not found")
	ErrMissingMemberAssociation = errors.New("Investment has no associated member and no member is available to assign")
	ErrMissingRentalData        = errors.New("No rental payments exist for this investment and year; generate rental payments first")
	ErrMissingProfitStandard    = errors.New("No profit sharing standard exists for this investment")
	ErrProfitNotFound           = errors.New("Member profit not found")
	ErrInvalidStatus            = errors.New("status must be PENDING, PAID or OVERDUE")
)
