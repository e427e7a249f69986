package service

import (
	"context"

	"github.com/bric-ux/akwa-pricing/internal/config"
	"github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	rates *config.RatesHolder
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Rates *config.RatesHolder
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("pricing.service"),
		rates: p.Rates,
	}
}

func (s *Service) QuoteProperty(ctx context.Context, req domain.PropertyQuoteRequest) (*domain.Quote, error) {
	_ = ctx

	nights, err := resolveNights(req)
	if err != nil {
		return nil, err
	}
	if err := validatePropertyRequest(req, nights); err != nil {
		return nil, err
	}
	standard, longStay, err := validatePolicies(req.Standard, req.LongStay)
	if err != nil {
		return nil, err
	}
	status, err := domain.NormalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	// One table read per calculation; a concurrent reload cannot split rates.
	table := s.rateTable()
	rates, err := table.Rates(domain.CategoryProperty)
	if err != nil {
		return nil, err
	}

	basePrice := domain.PropertyBasePrice(req.NightlyRate, nights)
	pricing := domain.ComputePricing(req.NightlyRate, nights, basePrice, standard, longStay)
	fees := domain.ComputeFees(pricing.TotalPrice, nights, domain.CategoryProperty, req.Fees, rates, table.VATRate)
	settlement := domain.Settle(domain.SettleParams{
		BasePrice:      basePrice,
		DiscountAmount: pricing.DiscountAmount,
		Units:          nights,
		Category:       domain.CategoryProperty,
		Fees:           req.Fees,
		Rates:          rates,
		VATRate:        table.VATRate,
		Status:         status,
	})

	return &domain.Quote{
		Category:   domain.CategoryProperty,
		Pricing:    pricing,
		Fees:       fees,
		Settlement: settlement,
		Total:      pricing.TotalPrice + fees.TotalFees,
	}, nil
}

func (s *Service) QuoteVehicle(ctx context.Context, req domain.VehicleQuoteRequest) (*domain.Quote, error) {
	_ = ctx

	if err := validateVehicleRequest(req); err != nil {
		return nil, err
	}
	standard, longStay, err := validatePolicies(req.Standard, req.LongStay)
	if err != nil {
		return nil, err
	}
	status, err := domain.NormalizeStatus(req.Status)
	if err != nil {
		return nil, err
	}

	table := s.rateTable()
	rates, err := table.Rates(domain.CategoryVehicle)
	if err != nil {
		return nil, err
	}

	basePrice := domain.VehicleBasePrice(req.DailyRate, req.Days, req.HourlyRate, req.Hours)
	// Days and hours count as one composite unit pool, here and on the
	// recompute path, so both surfaces select the same discount.
	units := req.Days + req.Hours
	pricing := domain.ComputePricing(req.DailyRate, units, basePrice, standard, longStay)

	fees := domain.ComputeFees(pricing.TotalPrice, units, domain.CategoryVehicle, domain.FeeConfig{}, rates, table.VATRate)
	settlement := domain.Settle(domain.SettleParams{
		BasePrice:      basePrice,
		DiscountAmount: pricing.DiscountAmount,
		Units:          units,
		Category:       domain.CategoryVehicle,
		Rates:          rates,
		VATRate:        table.VATRate,
		Status:         status,
	})

	return &domain.Quote{
		Category:        domain.CategoryVehicle,
		Pricing:         pricing,
		Fees:            fees,
		Settlement:      settlement,
		Total:           pricing.TotalPrice + fees.TotalFees + req.Fees.DriverFee,
		SecurityDeposit: req.Fees.SecurityDeposit,
	}, nil
}

func (s *Service) rateTable() domain.RateTable {
	return RateTableFromConfig(s.rates.Get())
}

// RateTableFromConfig maps the hot-reloadable config shape onto the domain
// table consumed by the pipeline.
func RateTableFromConfig(cfg config.RatesConfig) domain.RateTable {
	return domain.RateTable{
		VATRate: cfg.VATRate,
		Categories: map[domain.ServiceCategory]domain.CommissionRates{
			domain.CategoryProperty: {
				TravelerFeePercent: cfg.Property.TravelerFeePercent,
				HostFeePercent:     cfg.Property.HostFeePercent,
			},
			domain.CategoryVehicle: {
				TravelerFeePercent: cfg.Vehicle.TravelerFeePercent,
				HostFeePercent:     cfg.Vehicle.HostFeePercent,
			},
		},
	}
}

func resolveNights(req domain.PropertyQuoteRequest) (int, error) {
	if req.Nights > 0 {
		return req.Nights, nil
	}
	if req.CheckIn != nil && req.CheckOut != nil {
		if !req.CheckOut.After(*req.CheckIn) {
			return 0, domain.ErrInvalidDateRange
		}
		return domain.NightsBetween(*req.CheckIn, *req.CheckOut), nil
	}
	if req.Nights < 0 {
		return 0, domain.ErrNegativeUnits
	}
	return req.Nights, nil
}

func validatePropertyRequest(req domain.PropertyQuoteRequest, nights int) error {
	if req.NightlyRate < 0 {
		return domain.ErrNegativeRate
	}
	if nights < 0 {
		return domain.ErrNegativeUnits
	}
	if req.Fees.CleaningFee < 0 || req.Fees.TaxPerUnit < 0 {
		return domain.ErrNegativeFee
	}
	return nil
}

func validateVehicleRequest(req domain.VehicleQuoteRequest) error {
	if req.DailyRate < 0 || req.HourlyRate < 0 {
		return domain.ErrNegativeRate
	}
	if req.Days < 0 || req.Hours < 0 {
		return domain.ErrNegativeUnits
	}
	if req.Fees.DriverFee < 0 || req.Fees.SecurityDeposit < 0 {
		return domain.ErrNegativeFee
	}
	return nil
}

func validatePolicies(standard domain.DiscountPolicy, longStay *domain.DiscountPolicy) (domain.DiscountPolicy, *domain.DiscountPolicy, error) {
	validStandard, err := domain.NewDiscountPolicy(standard.Enabled, standard.MinUnits, standard.Percentage)
	if err != nil {
		return domain.DiscountPolicy{}, nil, err
	}
	if longStay == nil {
		return validStandard, nil, nil
	}
	validLongStay, err := domain.NewDiscountPolicy(longStay.Enabled, longStay.MinUnits, longStay.Percentage)
	if err != nil {
		return domain.DiscountPolicy{}, nil, err
	}
	return validStandard, &validLongStay, nil
}
