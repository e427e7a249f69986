// Package domain contains the pricing and settlement calculation types.
//
// All monetary values are integer FCFA amounts. Fractional currency is never
// carried between calculation steps; every step rounds half-up on its own.
package domain

import "time"

// ServiceCategory selects the commission rates applied to a booking.
type ServiceCategory string

const (
	CategoryProperty ServiceCategory = "property"
	CategoryVehicle  ServiceCategory = "vehicle"
)

// BookingStatus mirrors the booking row status. Only cancelled changes the
// settlement output.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// NormalizeStatus maps an empty status to confirmed and rejects anything
// outside the booking vocabulary.
func NormalizeStatus(status BookingStatus) (BookingStatus, error) {
	switch status {
	case "":
		return StatusConfirmed, nil
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// DiscountType identifies which discount policy produced a discount.
type DiscountType string

const (
	DiscountNormal   DiscountType = "normal"
	DiscountLongStay DiscountType = "long_stay"
)

// DiscountPolicy is a listing's discount rule, denormalized at calculation
// time. A policy with Enabled set but a nil MinUnits or Percentage is never
// eligible; it degrades to "no discount" rather than erroring.
type DiscountPolicy struct {
	Enabled    bool     `json:"enabled"`
	MinUnits   *int     `json:"min_units,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// NewDiscountPolicy validates a policy at the boundary. Enabled policies must
// carry both threshold and percentage; percentages live in [0, 100].
func NewDiscountPolicy(enabled bool, minUnits *int, percentage *float64) (DiscountPolicy, error) {
	p := DiscountPolicy{Enabled: enabled, MinUnits: minUnits, Percentage: percentage}
	if !enabled {
		return p, nil
	}
	if minUnits == nil || percentage == nil {
		return DiscountPolicy{}, ErrIncompletePolicy
	}
	if *minUnits < 0 {
		return DiscountPolicy{}, ErrInvalidPolicyThreshold
	}
	if *percentage < 0 || *percentage > 100 {
		return DiscountPolicy{}, ErrInvalidPolicyPercentage
	}
	return p, nil
}

// EligibleFor reports whether the policy applies to a stay of the given
// length. Missing fields make a policy ineligible, never an error.
func (p DiscountPolicy) EligibleFor(units int) bool {
	return p.Enabled && p.MinUnits != nil && p.Percentage != nil && units >= *p.MinUnits
}

// SelectedDiscount pairs the winning policy with its type.
type SelectedDiscount struct {
	Policy DiscountPolicy
	Type   DiscountType
}

// CommissionRates holds the platform percentages for one service category.
// TravelerFeePercent is charged to the customer on top of the price; on top of
// that, HostFeePercent is withheld from the host payout. Their sum is the total
// platform take and is constant within a calculation.
type CommissionRates struct {
	TravelerFeePercent float64
	HostFeePercent     float64
}

// RateTable maps each category to its commission rates plus the VAT rate
// stacked on every fee and commission line.
type RateTable struct {
	VATRate    float64
	Categories map[ServiceCategory]CommissionRates
}

// DefaultRateTable is the production commission table: property 12%+2%,
// vehicle 10%+2%, VAT 20%.
func DefaultRateTable() RateTable {
	return RateTable{
		VATRate: 0.20,
		Categories: map[ServiceCategory]CommissionRates{
			CategoryProperty: {TravelerFeePercent: 12, HostFeePercent: 2},
			CategoryVehicle:  {TravelerFeePercent: 10, HostFeePercent: 2},
		},
	}
}

// Rates returns the commission rates for a category.
func (t RateTable) Rates(category ServiceCategory) (CommissionRates, error) {
	rates, ok := t.Categories[category]
	if !ok {
		return CommissionRates{}, ErrUnknownCategory
	}
	return rates, nil
}

// FeeConfig carries a property listing's ancillary charges. Vehicle rentals
// use a zero FeeConfig: no cleaning fee, no per-unit tax.
type FeeConfig struct {
	CleaningFee          int64 `json:"cleaning_fee"`
	TaxPerUnit           int64 `json:"tax_per_unit"`
	FreeCleaningMinUnits *int  `json:"free_cleaning_min_units,omitempty"`
}

// VehicleFeeConfig carries vehicle-specific ancillary charges. The security
// deposit is held, not earned: it never enters the settlement.
type VehicleFeeConfig struct {
	DriverFee       int64 `json:"driver_fee"`
	SecurityDeposit int64 `json:"security_deposit"`
}

// PricingResult is the output of the base-price and discount stage.
// TotalPrice = OriginalTotal - DiscountAmount.
type PricingResult struct {
	UnitPrice       int64        `json:"unit_price"`
	TotalUnits      int          `json:"total_units"`
	DiscountApplied bool         `json:"discount_applied"`
	DiscountAmount  int64        `json:"discount_amount"`
	DiscountType    DiscountType `json:"discount_type,omitempty"`
	OriginalTotal   int64        `json:"original_total"`
	TotalPrice      int64        `json:"total_price"`
}

// FeeBreakdown is the customer-side fee split.
// ServiceFee = ServiceFeeHT + ServiceFeeVAT.
type FeeBreakdown struct {
	CleaningFee   int64 `json:"cleaning_fee"`
	ServiceFeeHT  int64 `json:"service_fee_ht"`
	ServiceFeeVAT int64 `json:"service_fee_vat"`
	ServiceFee    int64 `json:"service_fee"`
	Taxes         int64 `json:"taxes"`
	TotalFees     int64 `json:"total_fees"`
}

// CommissionBreakdown is the host-side commission split.
type CommissionBreakdown struct {
	HT    int64 `json:"ht"`
	VAT   int64 `json:"vat"`
	Total int64 `json:"total"`
}

// SettlementResult is the final host-side output. Except for cancelled
// bookings, HostNetAmount = PriceAfterDiscount + CleaningFee + Taxes -
// HostCommission; a cancelled booking forces every field to zero.
type SettlementResult struct {
	BasePrice          int64 `json:"base_price"`
	PriceAfterDiscount int64 `json:"price_after_discount"`
	CleaningFee        int64 `json:"cleaning_fee"`
	Taxes              int64 `json:"taxes"`
	HostCommissionHT   int64 `json:"host_commission_ht"`
	HostCommissionVAT  int64 `json:"host_commission_vat"`
	HostCommission     int64 `json:"host_commission"`
	HostNetAmount      int64 `json:"host_net_amount"`
}

// Quote bundles everything a call site needs to display or persist a price:
// the customer total and the host settlement, from one pipeline run.
type Quote struct {
	Category        ServiceCategory  `json:"category"`
	Pricing         PricingResult    `json:"pricing"`
	Fees            FeeBreakdown     `json:"fees"`
	Settlement      SettlementResult `json:"settlement"`
	Total           int64            `json:"total"`
	SecurityDeposit int64            `json:"security_deposit,omitempty"`
}

// PropertyQuoteRequest is the input for a night-based quote. Nights may be
// derived from the date range when not supplied directly.
type PropertyQuoteRequest struct {
	NightlyRate int64           `json:"nightly_rate"`
	Nights      int             `json:"nights"`
	CheckIn     *time.Time      `json:"check_in,omitempty"`
	CheckOut    *time.Time      `json:"check_out,omitempty"`
	GuestsCount int             `json:"guests_count"`
	Status      BookingStatus   `json:"status"`
	Standard    DiscountPolicy  `json:"standard_discount"`
	LongStay    *DiscountPolicy `json:"long_stay_discount,omitempty"`
	Fees        FeeConfig       `json:"fees"`
}

// VehicleQuoteRequest is the input for a day/hour-based quote. Hourly-only
// rentals set Days to zero.
type VehicleQuoteRequest struct {
	DailyRate  int64            `json:"daily_rate"`
	Days       int              `json:"days"`
	HourlyRate int64            `json:"hourly_rate"`
	Hours      int              `json:"hours"`
	Status     BookingStatus    `json:"status"`
	Standard   DiscountPolicy   `json:"standard_discount"`
	LongStay   *DiscountPolicy  `json:"long_stay_discount,omitempty"`
	Fees       VehicleFeeConfig `json:"fees"`
}
