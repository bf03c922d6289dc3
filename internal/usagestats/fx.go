package usagestats

import (
	"context"

	"github.com/drillops/wellsvc/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("usagestats",
	fx.Provide(provideConfig),
	fx.Provide(New),
	fx.Invoke(registerFlush),
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Path:           cfg.UsageHistoryPath,
		BackupInterval: cfg.UsageBackupInterval,
	}
}

func registerFlush(lc fx.Lifecycle, tracker *Tracker) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return tracker.Flush()
		},
	})
}
