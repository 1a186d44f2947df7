package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/plant_radar/app/display/internal/repo"
	"github.com/iWorld-y/plant_radar/app/display/internal/service"
	"github.com/iWorld-y/plant_radar/app/display/internal/usecase"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Engine providers
	NewDiagnosisEngine,
	wire.Bind(new(repo.DiagnosisEngine), new(*engine.Engine)),

	// UseCase providers
	usecase.NewDiagnosisUseCase,

	// Service providers
	service.NewDisplayService,
)
