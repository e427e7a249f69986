package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
)

// Service is the recalculation adapter invoked on the approved transition of a
// booking modification. Recompute never fails on persistence: the booking row
// stays authoritative and the snapshot is a denormalized audit copy, so a
// failed write is logged and the computed snapshot is still returned.
type Service interface {
	Recompute(ctx context.Context, req RecomputeRequest) (*CalculationSnapshot, error)
	Get(ctx context.Context, bookingID uuid.UUID, bookingType pricingdomain.ServiceCategory) (*CalculationSnapshot, error)
}

var (
	ErrInvalidBooking  = errors.New("invalid_booking")
	ErrMissingDates    = errors.New("missing_dates")
	ErrSnapshotMissing = errors.New("snapshot_not_found")
)
