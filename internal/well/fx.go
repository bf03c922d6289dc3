package well

import (
	"github.com/drillops/wellsvc/internal/well/repository"
	"github.com/drillops/wellsvc/internal/well/service"
	"go.uber.org/fx"
)

var Module = fx.Module("well.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
