package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/bric-ux/akwa-pricing/internal/clock"
	"github.com/bric-ux/akwa-pricing/internal/config"
	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	pricingservice "github.com/bric-ux/akwa-pricing/internal/pricing/service"
	"github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
)

type Service struct {
	log   *zap.Logger
	clock clock.Clock

	genID *snowflake.Node
	rates *config.RatesHolder
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Rates *config.RatesHolder
	Repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("snapshot.service"),
		clock: p.Clock,

		genID: p.GenID,
		rates: p.Rates,
		repo:  p.Repo,
	}
}

func (s *Service) Recompute(ctx context.Context, req domain.RecomputeRequest) (*domain.CalculationSnapshot, error) {
	units, hours, err := resolveUnits(req)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status, err := pricingdomain.NormalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	table := pricingservice.RateTableFromConfig(s.rates.Get())
	rates, err := table.Rates(req.BookingType)
	if err != nil {
		return nil, err
	}

	// Fee configs from the other category are stale carryover on the
	// request and must not leak into the calculation.
	var basePrice int64
	fees := req.Fees
	vehicleFees := req.VehicleFees
	switch req.BookingType {
	case pricingdomain.CategoryProperty:
		basePrice = pricingdomain.PropertyBasePrice(req.UnitRate, units)
		vehicleFees = pricingdomain.VehicleFeeConfig{}
	case pricingdomain.CategoryVehicle:
		basePrice = pricingdomain.VehicleBasePrice(req.UnitRate, units, req.HourlyRate, hours)
		fees = pricingdomain.FeeConfig{}
	}

	pricing := s.resolvePricing(req, basePrice, units+hours)
	feeBreakdown := pricingdomain.ComputeFees(pricing.TotalPrice, units+hours, req.BookingType, fees, rates, table.VATRate)
	settlement := pricingdomain.Settle(pricingdomain.SettleParams{
		BasePrice:      basePrice,
		DiscountAmount: pricing.DiscountAmount,
		Units:          units + hours,
		Category:       req.BookingType,
		Fees:           fees,
		Rates:          rates,
		VATRate:        table.VATRate,
		Status:         status,
	})

	now := s.clock.Now()
	snapshot := &domain.CalculationSnapshot{
		ID:          s.genID.Generate(),
		BookingID:   req.BookingID,
		BookingType: req.BookingType,
		Status:      status,

		UnitPrice:  req.UnitRate,
		HourlyRate: req.HourlyRate,
		Units:      units,
		Hours:      hours,

		DiscountApplied: pricing.DiscountApplied,
		DiscountAmount:  pricing.DiscountAmount,
		DiscountType:    string(pricing.DiscountType),

		BasePrice:          basePrice,
		PriceAfterDiscount: settlement.PriceAfterDiscount,
		CleaningFee:        settlement.CleaningFee,
		Taxes:              settlement.Taxes,
		ServiceFeeHT:       feeBreakdown.ServiceFeeHT,
		ServiceFeeVAT:      feeBreakdown.ServiceFeeVAT,
		ServiceFee:         feeBreakdown.ServiceFee,
		TotalFees:          feeBreakdown.TotalFees,
		HostCommissionHT:   settlement.HostCommissionHT,
		HostCommissionVAT:  settlement.HostCommissionVAT,
		HostCommission:     settlement.HostCommission,
		HostNetAmount:      settlement.HostNetAmount,
		CustomerTotal:      pricing.TotalPrice + feeBreakdown.TotalFees + vehicleFees.DriverFee,

		Calculation: buildCalculationBlob(req, units, hours, rates, table.VATRate),

		CreatedAt: now,
		UpdatedAt: now,
	}

	// The booking row already carries the authoritative price; a failed
	// snapshot write must not fail the modification approval.
	if err := s.repo.Upsert(ctx, snapshot); err != nil {
		s.log.Error("snapshot write failed",
			zap.String("booking_id", req.BookingID.String()),
			zap.String("booking_type", string(req.BookingType)),
			zap.Error(err),
		)
		return snapshot, nil
	}

	stored, err := s.repo.FindByBooking(ctx, req.BookingID, req.BookingType)
	if err != nil || stored == nil {
		return snapshot, nil
	}
	return stored, nil
}

func (s *Service) Get(ctx context.Context, bookingID uuid.UUID, bookingType pricingdomain.ServiceCategory) (*domain.CalculationSnapshot, error) {
	if bookingID == uuid.Nil {
		return nil, domain.ErrInvalidBooking
	}
	row, err := s.repo.FindByBooking(ctx, bookingID, bookingType)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrSnapshotMissing
	}
	return row, nil
}

func (s *Service) resolvePricing(req domain.RecomputeRequest, basePrice int64, units int) pricingdomain.PricingResult {
	if req.DiscountOverride != nil {
		// Trusted as-is: the call site already knows the discount.
		discount := *req.DiscountOverride
		return pricingdomain.PricingResult{
			UnitPrice:       req.UnitRate,
			TotalUnits:      units,
			DiscountApplied: discount > 0,
			DiscountAmount:  discount,
			OriginalTotal:   basePrice,
			TotalPrice:      basePrice - discount,
		}
	}
	result := pricingdomain.ComputePricing(req.UnitRate, units, basePrice, req.Standard, req.LongStay)
	result.TotalUnits = units
	return result
}

func resolveUnits(req domain.RecomputeRequest) (int, int, error) {
	switch req.BookingType {
	case pricingdomain.CategoryProperty:
		if req.CheckIn == nil || req.CheckOut == nil {
			return 0, 0, domain.ErrMissingDates
		}
		if !req.CheckOut.After(*req.CheckIn) {
			return 0, 0, pricingdomain.ErrInvalidDateRange
		}
		return pricingdomain.NightsBetween(*req.CheckIn, *req.CheckOut), 0, nil
	case pricingdomain.CategoryVehicle:
		if req.Days < 0 || req.Hours < 0 {
			return 0, 0, pricingdomain.ErrNegativeUnits
		}
		return req.Days, req.Hours, nil
	default:
		return 0, 0, pricingdomain.ErrUnknownCategory
	}
}

func validateRequest(req domain.RecomputeRequest) error {
	if req.BookingID == uuid.Nil {
		return domain.ErrInvalidBooking
	}
	if req.UnitRate < 0 || req.HourlyRate < 0 {
		return pricingdomain.ErrNegativeRate
	}
	if req.Fees.CleaningFee < 0 || req.Fees.TaxPerUnit < 0 {
		return pricingdomain.ErrNegativeFee
	}
	if req.VehicleFees.DriverFee < 0 || req.VehicleFees.SecurityDeposit < 0 {
		return pricingdomain.ErrNegativeFee
	}
	if req.DiscountOverride != nil && *req.DiscountOverride < 0 {
		return pricingdomain.ErrNegativeFee
	}
	if _, err := pricingdomain.NewDiscountPolicy(req.Standard.Enabled, req.Standard.MinUnits, req.Standard.Percentage); err != nil {
		return err
	}
	if req.LongStay != nil {
		if _, err := pricingdomain.NewDiscountPolicy(req.LongStay.Enabled, req.LongStay.MinUnits, req.LongStay.Percentage); err != nil {
			return err
		}
	}
	return nil
}

func buildCalculationBlob(req domain.RecomputeRequest, units, hours int, rates pricingdomain.CommissionRates, vatRate float64) datatypes.JSONMap {
	blob := datatypes.JSONMap{
		"booking_id":           req.BookingID.String(),
		"booking_type":         string(req.BookingType),
		"unit_rate":            req.UnitRate,
		"hourly_rate":          req.HourlyRate,
		"units":                units,
		"hours":                hours,
		"guests_count":         req.GuestsCount,
		"traveler_fee_percent": rates.TravelerFeePercent,
		"host_fee_percent":     rates.HostFeePercent,
		"vat_rate":             vatRate,
		"standard_discount":    policyBlob(req.Standard),
		"cleaning_fee":         req.Fees.CleaningFee,
		"tax_per_unit":         req.Fees.TaxPerUnit,
	}
	if req.LongStay != nil {
		blob["long_stay_discount"] = policyBlob(*req.LongStay)
	}
	if req.Fees.FreeCleaningMinUnits != nil {
		blob["free_cleaning_min_units"] = *req.Fees.FreeCleaningMinUnits
	}
	if req.DiscountOverride != nil {
		blob["discount_override"] = *req.DiscountOverride
	}
	if req.CheckIn != nil && req.CheckOut != nil {
		blob["check_in"] = req.CheckIn.UTC()
		blob["check_out"] = req.CheckOut.UTC()
	}
	return blob
}

func policyBlob(p pricingdomain.DiscountPolicy) map[string]any {
	out := map[string]any{"enabled": p.Enabled}
	if p.MinUnits != nil {
		out["min_units"] = *p.MinUnits
	}
	if p.Percentage != nil {
		out["percentage"] = *p.Percentage
	}
	return out
}
