package snapshot

import (
	"github.com/bric-ux/akwa-pricing/internal/snapshot/repository"
	"github.com/bric-ux/akwa-pricing/internal/snapshot/service"
	"go.uber.org/fx"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(repository.NewSnapshotRepository),
	fx.Provide(service.NewService),
)
