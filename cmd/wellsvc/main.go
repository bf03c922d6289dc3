package main

import (
	"github.com/drillops/wellsvc/internal/config"
	"github.com/drillops/wellsvc/internal/migration"
	"github.com/drillops/wellsvc/internal/observability"
	"github.com/drillops/wellsvc/internal/server"
	"github.com/drillops/wellsvc/internal/usagestats"
	"github.com/drillops/wellsvc/internal/well"
	"github.com/drillops/wellsvc/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,

		// Functional domains
		usagestats.Module,
		well.Module,
		server.Module,
	)
	app.Run()
}
