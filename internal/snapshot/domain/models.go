// Package domain contains the persisted settlement snapshot for bookings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
)

// CalculationSnapshot is the frozen copy of one settlement calculation's
// inputs and outputs. One row per (booking_id, booking_type); an approved
// modification overwrites the row in place, it never appends.
type CalculationSnapshot struct {
	ID          snowflake.ID                  `json:"id" gorm:"primaryKey"`
	BookingID   uuid.UUID                     `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex:idx_snapshot_booking"`
	BookingType pricingdomain.ServiceCategory `json:"booking_type" gorm:"type:text;not null;uniqueIndex:idx_snapshot_booking"`
	Status      pricingdomain.BookingStatus   `json:"status" gorm:"type:text;not null"`

	UnitPrice  int64 `json:"unit_price" gorm:"not null"`
	HourlyRate int64 `json:"hourly_rate" gorm:"not null;default:0"`
	Units      int   `json:"units" gorm:"not null"`
	Hours      int   `json:"hours" gorm:"not null;default:0"`

	DiscountApplied bool   `json:"discount_applied" gorm:"not null"`
	DiscountAmount  int64  `json:"discount_amount" gorm:"not null"`
	DiscountType    string `json:"discount_type" gorm:"type:text"`

	// For a cancelled booking the settlement-sourced fields
	// (price_after_discount, cleaning_fee, taxes, host_commission_* and
	// host_net_amount) are zero while base_price, the fee lines and
	// customer_total keep their computed values: the row still documents
	// what was quoted even though nothing settles.
	BasePrice          int64 `json:"base_price" gorm:"not null"`
	PriceAfterDiscount int64 `json:"price_after_discount" gorm:"not null"`
	CleaningFee        int64 `json:"cleaning_fee" gorm:"not null"`
	Taxes              int64 `json:"taxes" gorm:"not null"`
	ServiceFeeHT       int64 `json:"service_fee_ht" gorm:"not null"`
	ServiceFeeVAT      int64 `json:"service_fee_vat" gorm:"not null"`
	ServiceFee         int64 `json:"service_fee" gorm:"not null"`
	TotalFees          int64 `json:"total_fees" gorm:"not null"`
	HostCommissionHT   int64 `json:"host_commission_ht" gorm:"not null"`
	HostCommissionVAT  int64 `json:"host_commission_vat" gorm:"not null"`
	HostCommission     int64 `json:"host_commission" gorm:"not null"`
	HostNetAmount      int64 `json:"host_net_amount" gorm:"not null"`
	CustomerTotal      int64 `json:"customer_total" gorm:"not null"`

	// Calculation is the append-only diagnostic blob: every input the
	// pipeline saw, for audit. Never re-parsed by the engine.
	Calculation datatypes.JSONMap `json:"calculation,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// TableName sets the database table name.
func (CalculationSnapshot) TableName() string { return "calculation_snapshots" }

// RecomputeRequest carries everything the recalculation adapter needs when a
// booking modification is approved: the new quantities and the listing
// configuration as of approval time.
type RecomputeRequest struct {
	BookingID   uuid.UUID                     `json:"booking_id"`
	BookingType pricingdomain.ServiceCategory `json:"booking_type"`
	Status      pricingdomain.BookingStatus   `json:"status"`

	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`
	Days     int        `json:"days"`
	Hours    int        `json:"hours"`

	UnitRate    int64 `json:"unit_rate"`
	HourlyRate  int64 `json:"hourly_rate"`
	GuestsCount int   `json:"guests_count"`

	Standard pricingdomain.DiscountPolicy  `json:"standard_discount"`
	LongStay *pricingdomain.DiscountPolicy `json:"long_stay_discount,omitempty"`

	Fees        pricingdomain.FeeConfig        `json:"fees"`
	VehicleFees pricingdomain.VehicleFeeConfig `json:"vehicle_fees"`

	// DiscountOverride is an already-agreed discount amount supplied by the
	// call site. When set it is trusted as-is instead of recomputed, so an
	// approval cannot re-apply a discount the booking already carries.
	DiscountOverride *int64 `json:"discount_override,omitempty"`
}
