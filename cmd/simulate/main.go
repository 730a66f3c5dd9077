package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/wavecore/internal/config"
	"github.com/zeusync/wavecore/internal/core/observability/log"
	"github.com/zeusync/wavecore/internal/injector"
	"github.com/zeusync/wavecore/internal/sim"
	"github.com/zeusync/wavecore/pkg/concurrent"
)

var (
	configPath = flag.String("config", "", "YAML config file; defaults when empty")
	runs       = flag.Int("runs", 1, "Number of independent seeded runs")
	ticks      = flag.Int("ticks", 60*60*10, "Maximum ticks per run")
	delta      = flag.Float64("dt", 0, "Tick delta in seconds; config fixed_delta when zero")
	workers    = flag.Int("workers", 0, "Concurrent runs; unbounded when zero")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code so deferred log flushing happens before exit.
func run() int {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			return 2
		}
	}
	dt := cfg.Simulation.FixedDelta
	if *delta > 0 {
		dt = *delta
	}

	logger := log.New(cfg.LogLevel())
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := concurrent.Range(ctx, *runs, *workers, func(ctx context.Context, i int) (outcome, error) {
		out, err := simulate(ctx, cfg, i, dt)
		if err != nil {
			return outcome{}, fmt.Errorf("run %d: %w", i, err)
		}
		return out, nil
	})
	if err != nil {
		logger.Error("simulation failed", log.Error(err))
		return 1
	}

	kills, best, lastFraction := 0, 0, 0.0
	for _, r := range results {
		kills += r.stats.TotalKills()
		best = max(best, r.stats.HighestWave)
		lastFraction = r.coreFraction
	}
	logger.Info("simulation finished",
		log.Int("runs", *runs),
		log.Int("total_kills", kills),
		log.Int("best_wave", best),
		log.Float64("last_core_hp_fraction", lastFraction),
	)
	return 0
}

type outcome struct {
	stats        sim.Stats
	coreFraction float64
}

func simulate(ctx context.Context, cfg *config.Config, index int, dt float64) (outcome, error) {
	w, err := injector.InitializeWorld(cfg, cfg.RunSeed(index))
	if err != nil {
		return outcome{}, err
	}
	w.Start()
	for range *ticks {
		if ctx.Err() != nil || !w.CoreAlive() {
			break
		}
		w.Tick(dt)
		if !cfg.Simulation.AutoBreaks {
			w.CompleteRoundBreak()
			w.CompleteWaveBreak()
		}
	}

	stats := w.Stats()
	hp, _ := w.CoreHealth()
	w.Logger().Info("run finished",
		log.Int("run", index),
		log.Int("wave", w.Wave()),
		log.Int("round", w.Round()),
		log.Float64("sim_seconds", w.Now()),
		log.Int("kills", stats.TotalKills()),
		log.Int("score", stats.Score),
		log.Int("waves_completed", stats.WavesCompleted),
		log.Float64("core_hp", hp),
		log.Float64("core_hp_fraction", w.CoreHealthFraction()),
		log.Any("kills_by_type", stats.Kills),
	)
	return outcome{stats: stats, coreFraction: w.CoreHealthFraction()}, nil
}
