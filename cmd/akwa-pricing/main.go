package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/bric-ux/akwa-pricing/internal/clock"
	"github.com/bric-ux/akwa-pricing/internal/config"
	"github.com/bric-ux/akwa-pricing/internal/logger"
	"github.com/bric-ux/akwa-pricing/internal/migration"
	"github.com/bric-ux/akwa-pricing/internal/pricing"
	"github.com/bric-ux/akwa-pricing/internal/server"
	"github.com/bric-ux/akwa-pricing/internal/snapshot"
	"github.com/bric-ux/akwa-pricing/pkg/db"
	"github.com/bric-ux/akwa-pricing/pkg/telemetry"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		telemetry.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		pricing.Module,
		snapshot.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
