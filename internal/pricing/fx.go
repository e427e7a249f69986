package pricing

import (
	"github.com/bric-ux/akwa-pricing/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(service.NewService),
)
