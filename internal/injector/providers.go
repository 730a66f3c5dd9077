package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/wavecore/internal/config"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/game/meta"
	"github.com/zeusync/wavecore/internal/game/scene"
	"github.com/zeusync/wavecore/internal/sim"
)

func ProvideLogger(cfg *config.Config) log.Log {
	return log.New(cfg.LogLevel())
}

func ProvideSink() *scene.Headless {
	return scene.NewHeadless()
}

func ProvideProgression(cfg *config.Config) meta.Progression {
	return &cfg.Meta
}

var WorldSet = wire.NewSet(
	ProvideLogger,
	ProvideSink,
	wire.Bind(new(scene.Sink), new(*scene.Headless)),
	ProvideProgression,
	sim.New,
)
