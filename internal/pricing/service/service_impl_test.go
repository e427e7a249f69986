package service

import (
	"context"
	"testing"
	"time"

	"github.com/bric-ux/akwa-pricing/internal/config"
	"github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	return NewService(ServiceParam{
		Log:   zap.NewNop(),
		Rates: config.NewStaticRatesHolder(config.DefaultRatesConfig()),
	})
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func timePtr(v time.Time) *time.Time {
	return &v
}

func TestQuoteProperty_FiveNightStay(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 15000,
		Nights:      5,
		Fees:        domain.FeeConfig{CleaningFee: 1000, TaxPerUnit: 1000},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryProperty, quote.Category)
	assert.Equal(t, int64(75000), quote.Pricing.TotalPrice)
	assert.Equal(t, int64(10800), quote.Fees.ServiceFee)
	assert.Equal(t, int64(16800), quote.Fees.TotalFees)
	assert.Equal(t, int64(91800), quote.Total)
	assert.Equal(t, int64(79200), quote.Settlement.HostNetAmount)
}

func TestQuoteProperty_NightsDerivedFromDates(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 15000,
		CheckIn:     timePtr(time.Date(2026, 1, 10, 14, 0, 0, 0, time.UTC)),
		CheckOut:    timePtr(time.Date(2026, 1, 15, 11, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, quote.Pricing.TotalUnits)
	assert.Equal(t, int64(75000), quote.Pricing.TotalPrice)
}

func TestQuoteProperty_InvalidDateRange(t *testing.T) {
	svc := newTestService(t)
	checkIn := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)

	_, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 15000,
		CheckIn:     timePtr(checkIn),
		CheckOut:    timePtr(checkIn.Add(-24 * time.Hour)),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestQuoteProperty_LongStayDiscount(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 10000,
		Nights:      7,
		Standard:    domain.DiscountPolicy{Enabled: true, MinUnits: intPtr(2), Percentage: floatPtr(20)},
		LongStay:    &domain.DiscountPolicy{Enabled: true, MinUnits: intPtr(7), Percentage: floatPtr(5)},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DiscountLongStay, quote.Pricing.DiscountType)
	assert.Equal(t, int64(3500), quote.Pricing.DiscountAmount)
	assert.Equal(t, int64(66500), quote.Pricing.TotalPrice)
}

func TestQuoteProperty_ValidationErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.QuoteProperty(ctx, domain.PropertyQuoteRequest{NightlyRate: -1, Nights: 2})
	assert.ErrorIs(t, err, domain.ErrNegativeRate)

	_, err = svc.QuoteProperty(ctx, domain.PropertyQuoteRequest{NightlyRate: 1000, Nights: -2})
	assert.ErrorIs(t, err, domain.ErrNegativeUnits)

	_, err = svc.QuoteProperty(ctx, domain.PropertyQuoteRequest{
		NightlyRate: 1000,
		Nights:      2,
		Fees:        domain.FeeConfig{CleaningFee: -500},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeFee)

	_, err = svc.QuoteProperty(ctx, domain.PropertyQuoteRequest{
		NightlyRate: 1000,
		Nights:      2,
		Standard:    domain.DiscountPolicy{Enabled: true, MinUnits: intPtr(2)},
	})
	assert.ErrorIs(t, err, domain.ErrIncompletePolicy)

	_, err = svc.QuoteProperty(ctx, domain.PropertyQuoteRequest{
		NightlyRate: 1000,
		Nights:      2,
		Status:      "archived",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestQuoteProperty_EmptyStatusTreatedAsConfirmed(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 15000,
		Nights:      5,
	})
	require.NoError(t, err)
	assert.NotZero(t, quote.Settlement.HostNetAmount)
}

func TestQuoteProperty_CancelledZeroesSettlementOnly(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 15000,
		Nights:      5,
		Status:      domain.StatusCancelled,
		Fees:        domain.FeeConfig{CleaningFee: 1000, TaxPerUnit: 1000},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SettlementResult{}, quote.Settlement)
	// The customer-facing pricing still reflects the booking.
	assert.Equal(t, int64(75000), quote.Pricing.TotalPrice)
}

func TestQuoteVehicle_ThreeDayRentalWithDiscount(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteVehicle(context.Background(), domain.VehicleQuoteRequest{
		DailyRate: 25000,
		Days:      3,
		Standard:  domain.DiscountPolicy{Enabled: true, MinUnits: intPtr(1), Percentage: floatPtr(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryVehicle, quote.Category)
	assert.Equal(t, int64(7500), quote.Pricing.DiscountAmount)
	assert.Equal(t, int64(67500), quote.Pricing.TotalPrice)
	assert.Equal(t, int64(6750), quote.Fees.ServiceFeeHT)
	assert.Equal(t, int64(1350), quote.Fees.ServiceFeeVAT)
	assert.Equal(t, int64(8100), quote.Fees.TotalFees)
	assert.Equal(t, int64(0), quote.Fees.CleaningFee)
	assert.Equal(t, int64(0), quote.Fees.Taxes)
	assert.Equal(t, int64(65880), quote.Settlement.HostNetAmount)
	assert.Equal(t, int64(75600), quote.Total)
}

func TestQuoteVehicle_DiscountEligibilityCountsDaysAndHours(t *testing.T) {
	svc := newTestService(t)

	// 3 days alone would miss the 5-unit threshold; days plus hours reach it.
	quote, err := svc.QuoteVehicle(context.Background(), domain.VehicleQuoteRequest{
		DailyRate:  25000,
		Days:       3,
		HourlyRate: 2500,
		Hours:      5,
		Standard:   domain.DiscountPolicy{Enabled: true, MinUnits: intPtr(5), Percentage: floatPtr(10)},
	})
	require.NoError(t, err)

	assert.True(t, quote.Pricing.DiscountApplied)
	assert.Equal(t, 8, quote.Pricing.TotalUnits)
	assert.Equal(t, int64(87500), quote.Pricing.OriginalTotal)
	assert.Equal(t, int64(8750), quote.Pricing.DiscountAmount)
	assert.Equal(t, int64(78750), quote.Pricing.TotalPrice)
	assert.Equal(t, int64(88200), quote.Total)
}

func TestQuoteVehicle_DayHourComposite(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteVehicle(context.Background(), domain.VehicleQuoteRequest{
		DailyRate:  25000,
		Days:       2,
		HourlyRate: 2500,
		Hours:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(57500), quote.Pricing.OriginalTotal)
	assert.Equal(t, 5, quote.Pricing.TotalUnits)
}

func TestQuoteVehicle_DriverFeeAndDeposit(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.QuoteVehicle(context.Background(), domain.VehicleQuoteRequest{
		DailyRate: 25000,
		Days:      2,
		Fees:      domain.VehicleFeeConfig{DriverFee: 5000, SecurityDeposit: 50000},
	})
	require.NoError(t, err)

	// The driver fee reaches the customer total, the deposit never does.
	assert.Equal(t, quote.Pricing.TotalPrice+quote.Fees.TotalFees+5000, quote.Total)
	assert.Equal(t, int64(50000), quote.SecurityDeposit)
}

func TestQuoteVehicle_ValidationErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.QuoteVehicle(ctx, domain.VehicleQuoteRequest{DailyRate: -1, Days: 1})
	assert.ErrorIs(t, err, domain.ErrNegativeRate)

	_, err = svc.QuoteVehicle(ctx, domain.VehicleQuoteRequest{DailyRate: 25000, Hours: -1})
	assert.ErrorIs(t, err, domain.ErrNegativeUnits)

	_, err = svc.QuoteVehicle(ctx, domain.VehicleQuoteRequest{
		DailyRate: 25000,
		Days:      1,
		Fees:      domain.VehicleFeeConfig{DriverFee: -1},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeFee)
}

func TestRateTableFromConfig(t *testing.T) {
	cfg := config.RatesConfig{
		VATRate:  0.18,
		Property: config.CategoryRates{TravelerFeePercent: 15, HostFeePercent: 3},
		Vehicle:  config.CategoryRates{TravelerFeePercent: 8, HostFeePercent: 1},
	}

	table := RateTableFromConfig(cfg)
	assert.Equal(t, 0.18, table.VATRate)
	assert.Equal(t, 15.0, table.Categories[domain.CategoryProperty].TravelerFeePercent)
	assert.Equal(t, 1.0, table.Categories[domain.CategoryVehicle].HostFeePercent)
}

func TestQuoteProperty_ReloadedRatesPickedUp(t *testing.T) {
	holder := config.NewStaticRatesHolder(config.DefaultRatesConfig())
	svc := NewService(ServiceParam{Log: zap.NewNop(), Rates: holder})

	quote, err := svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 10000,
		Nights:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2400), quote.Fees.ServiceFeeHT)

	updated := config.DefaultRatesConfig()
	updated.Property.TravelerFeePercent = 15
	holder.Store(updated)

	quote, err = svc.QuoteProperty(context.Background(), domain.PropertyQuoteRequest{
		NightlyRate: 10000,
		Nights:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), quote.Fees.ServiceFeeHT)
}
