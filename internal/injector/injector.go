//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/wavecore/internal/config"
	"github.com/zeusync/wavecore/internal/sim"
)

func InitializeWorld(cfg *config.Config, seed uint64) (*sim.World, error) {
	wire.Build(WorldSet)
	return nil, nil
}
