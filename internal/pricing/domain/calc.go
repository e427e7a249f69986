package domain

import (
	"math"
	"time"
)

// nightLength is the billing granularity for property stays.
const nightLength = 24 * time.Hour

// RoundMoney rounds half-up to the nearest integer currency unit. It is the
// single rounding primitive of the engine; applying it at every monetary step
// keeps results identical across call sites.
func RoundMoney(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}

// NightsBetween derives the billable night count from a stay's date range.
// Partial nights bill as full nights.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / nightLength.Hours()))
}

// SelectDiscount picks the policy applying to a stay of the given length.
// An eligible long-stay policy always wins over the standard policy, even when
// the standard one would discount more. That priority is a product rule, not
// an optimization. Returns nil when neither policy is eligible.
func SelectDiscount(units int, standard DiscountPolicy, longStay *DiscountPolicy) *SelectedDiscount {
	if longStay != nil && longStay.EligibleFor(units) {
		return &SelectedDiscount{Policy: *longStay, Type: DiscountLongStay}
	}
	if standard.EligibleFor(units) {
		return &SelectedDiscount{Policy: standard, Type: DiscountNormal}
	}
	return nil
}

// PropertyBasePrice is the undiscounted total for a night-based stay.
func PropertyBasePrice(nightlyRate int64, nights int) int64 {
	return nightlyRate * int64(nights)
}

// VehicleBasePrice is the undiscounted total for a day/hour rental. Hourly-only
// rentals pass zero days.
func VehicleBasePrice(dailyRate int64, days int, hourlyRate int64, hours int) int64 {
	return dailyRate*int64(days) + hourlyRate*int64(hours)
}

// ComputePricing runs the discount stage over a base price. The discount
// amount is rounded before subtraction: rounding the subtraction result
// instead can differ by one unit.
func ComputePricing(unitPrice int64, units int, basePrice int64, standard DiscountPolicy, longStay *DiscountPolicy) PricingResult {
	result := PricingResult{
		UnitPrice:     unitPrice,
		TotalUnits:    units,
		OriginalTotal: basePrice,
		TotalPrice:    basePrice,
	}

	selected := SelectDiscount(units, standard, longStay)
	if selected == nil {
		return result
	}

	discount := RoundMoney(float64(basePrice) * *selected.Policy.Percentage / 100)
	result.DiscountApplied = true
	result.DiscountAmount = discount
	result.DiscountType = selected.Type
	result.TotalPrice = basePrice - discount
	return result
}

// EffectiveCleaningFee applies the free-cleaning waiver: the fee drops to zero
// exactly at the configured threshold, never before. Only property listings
// carry a cleaning fee.
func EffectiveCleaningFee(category ServiceCategory, units int, fees FeeConfig) int64 {
	if category != CategoryProperty {
		return 0
	}
	if fees.FreeCleaningMinUnits != nil && units >= *fees.FreeCleaningMinUnits {
		return 0
	}
	return fees.CleaningFee
}

// EffectiveTaxes is the flat per-unit tax total. Vehicle rentals carry no
// per-unit tax in this model; the asymmetry is intentional.
func EffectiveTaxes(category ServiceCategory, units int, fees FeeConfig) int64 {
	if category != CategoryProperty {
		return 0
	}
	return fees.TaxPerUnit * int64(units)
}

// ComputeFees derives the customer-side fee split. The service fee is computed
// on the price after discount, never on the pre-discount base, with VAT
// stacked on the rounded HT amount.
func ComputeFees(priceAfterDiscount int64, units int, category ServiceCategory, fees FeeConfig, rates CommissionRates, vatRate float64) FeeBreakdown {
	serviceFeeHT := RoundMoney(float64(priceAfterDiscount) * rates.TravelerFeePercent / 100)
	serviceFeeVAT := RoundMoney(float64(serviceFeeHT) * vatRate)

	breakdown := FeeBreakdown{
		CleaningFee:   EffectiveCleaningFee(category, units, fees),
		ServiceFeeHT:  serviceFeeHT,
		ServiceFeeVAT: serviceFeeVAT,
		ServiceFee:    serviceFeeHT + serviceFeeVAT,
		Taxes:         EffectiveTaxes(category, units, fees),
	}
	breakdown.TotalFees = breakdown.CleaningFee + breakdown.ServiceFee + breakdown.Taxes
	return breakdown
}

// HostCommission derives the host-side commission split on the price after
// discount, with the same VAT stacking as the service fee.
func HostCommission(priceAfterDiscount int64, rates CommissionRates, vatRate float64) CommissionBreakdown {
	ht := RoundMoney(float64(priceAfterDiscount) * rates.HostFeePercent / 100)
	vat := RoundMoney(float64(ht) * vatRate)
	return CommissionBreakdown{HT: ht, VAT: vat, Total: ht + vat}
}

// SettleParams are the validated inputs of the settlement aggregation.
// Callers validate ranges before invoking; Settle performs no I/O and raises
// no errors.
type SettleParams struct {
	BasePrice      int64
	DiscountAmount int64
	Units          int
	Category       ServiceCategory
	Fees           FeeConfig
	Rates          CommissionRates
	VATRate        float64
	Status         BookingStatus
}

// Settle aggregates the host-side settlement in fixed order. The cancellation
// override runs last and unconditionally zeroes every field.
func Settle(p SettleParams) SettlementResult {
	priceAfterDiscount := p.BasePrice - p.DiscountAmount
	cleaning := EffectiveCleaningFee(p.Category, p.Units, p.Fees)
	taxes := EffectiveTaxes(p.Category, p.Units, p.Fees)
	commission := HostCommission(priceAfterDiscount, p.Rates, p.VATRate)

	result := SettlementResult{
		BasePrice:          p.BasePrice,
		PriceAfterDiscount: priceAfterDiscount,
		CleaningFee:        cleaning,
		Taxes:              taxes,
		HostCommissionHT:   commission.HT,
		HostCommissionVAT:  commission.VAT,
		HostCommission:     commission.Total,
		HostNetAmount:      priceAfterDiscount + cleaning + taxes - commission.Total,
	}

	if p.Status == StatusCancelled {
		return SettlementResult{}
	}
	return result
}
