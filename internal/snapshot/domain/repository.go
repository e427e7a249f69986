package domain

import (
	"context"

	"github.com/google/uuid"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
)

type Repository interface {
	// Upsert writes the snapshot, replacing any prior row for the same
	// (booking_id, booking_type). Last writer wins.
	Upsert(ctx context.Context, snapshot *CalculationSnapshot) error
	FindByBooking(ctx context.Context, bookingID uuid.UUID, bookingType pricingdomain.ServiceCategory) (*CalculationSnapshot, error)
}
