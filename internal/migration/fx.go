package migration

import (
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	snapshotdomain "github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		if strings.EqualFold(conn.Dialector.Name(), "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// mysql/sqlite (and in-memory test databases) use AutoMigrate.
		return conn.AutoMigrate(&snapshotdomain.CalculationSnapshot{})
	}),
)
