package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CategoryRates holds the platform percentages for one service category.
type CategoryRates struct {
	TravelerFeePercent float64 `mapstructure:"travelerFeePercent"`
	HostFeePercent     float64 `mapstructure:"hostFeePercent"`
}

// RatesConfig is the commission-rate table applied by the pricing pipeline.
type RatesConfig struct {
	VATRate  float64       `mapstructure:"vatRate"`
	Property CategoryRates `mapstructure:"property"`
	Vehicle  CategoryRates `mapstructure:"vehicle"`
}

// DefaultRatesConfig is the production table: property 12%+2%, vehicle 10%+2%,
// VAT 20% on every fee and commission line.
func DefaultRatesConfig() RatesConfig {
	return RatesConfig{
		VATRate:  0.20,
		Property: CategoryRates{TravelerFeePercent: 12, HostFeePercent: 2},
		Vehicle:  CategoryRates{TravelerFeePercent: 10, HostFeePercent: 2},
	}
}

// RatesHolder serves the current rate table. The pipeline reads the table once
// per calculation, so a reload never changes rates mid-calculation.
type RatesHolder struct {
	current atomic.Value // holds RatesConfig
}

// NewRatesHolder loads pricing.yml and watches it for changes. A missing file
// falls back to the default table; an invalid reload is ignored and the
// previous table stays active.
func NewRatesHolder() (*RatesHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/akwa/config") // Volume-mounted config
	v.AddConfigPath("/etc/akwa")            // System config
	v.AddConfigPath(".")                    // Current directory (dev mode)

	v.SetEnvPrefix("AKWA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultRatesConfig()
		v.SetDefault("rates.vatRate", defaults.VATRate)
		v.SetDefault("rates.property", defaults.Property)
		v.SetDefault("rates.vehicle", defaults.Vehicle)
	}

	var cfg RatesConfig
	if err := v.UnmarshalKey("rates", &cfg); err != nil {
		return nil, err
	}
	if err := validateRatesConfig(cfg); err != nil {
		return nil, err
	}

	holder := &RatesHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RatesConfig
		if err := v.UnmarshalKey("rates", &updated); err != nil {
			log.Printf("[pricing-rates] reload failed: %v", err)
			return
		}
		if err := validateRatesConfig(updated); err != nil {
			log.Printf("[pricing-rates] invalid config ignored: %v", err)
			return
		}
		holder.Store(updated)
		log.Printf("[pricing-rates] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticRatesHolder wraps a fixed table, for tests.
func NewStaticRatesHolder(cfg RatesConfig) *RatesHolder {
	holder := &RatesHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *RatesHolder) Get() RatesConfig {
	return h.current.Load().(RatesConfig)
}

// Store swaps the active table. Readers in flight keep the table they already
// loaded.
func (h *RatesHolder) Store(cfg RatesConfig) {
	h.current.Store(cfg)
}

func validateRatesConfig(cfg RatesConfig) error {
	if cfg.VATRate < 0 || cfg.VATRate >= 1 {
		return errors.New("rates.vatRate must be in [0, 1)")
	}
	for _, rates := range []CategoryRates{cfg.Property, cfg.Vehicle} {
		if rates.TravelerFeePercent < 0 || rates.TravelerFeePercent > 100 {
			return errors.New("travelerFeePercent out of range")
		}
		if rates.HostFeePercent < 0 || rates.HostFeePercent > 100 {
			return errors.New("hostFeePercent out of range")
		}
	}
	return nil
}
