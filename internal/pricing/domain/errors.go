package domain

import (
	"context"
	"errors"
)

var (
	ErrNegativeRate            = errors.New("negative_rate")
	ErrNegativeUnits           = errors.New("negative_units")
	ErrNegativeFee             = errors.New("negative_fee")
	ErrInvalidDateRange        = errors.New("invalid_date_range")
	ErrIncompletePolicy        = errors.New("incomplete_discount_policy")
	ErrInvalidPolicyThreshold  = errors.New("invalid_discount_threshold")
	ErrInvalidPolicyPercentage = errors.New("invalid_discount_percentage")
	ErrInvalidStatus           = errors.New("invalid_status")
	ErrUnknownCategory         = errors.New("unknown_service_category")
)

// Service computes quotes for the booking surfaces. Every call site shares
// this one pipeline so quoted, displayed and billed amounts cannot drift.
type Service interface {
	QuoteProperty(ctx context.Context, req PropertyQuoteRequest) (*Quote, error)
	QuoteVehicle(ctx context.Context, req VehicleQuoteRequest) (*Quote, error)
}
