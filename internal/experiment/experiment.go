// Package experiment assembles configured simulations and runs them
// with a default metric set.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/stringverse/internal/config"
	"github.com/san-kum/stringverse/internal/metrics"
	"github.com/san-kum/stringverse/internal/physics"
	"github.com/san-kum/stringverse/internal/sim"
)

// Build constructs the simulation a config names, with a rand stream
// seeded from cfg.Seed so runs reproduce exactly.
func Build(cfg *config.Config) (sim.Simulation, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	switch cfg.Model {
	case config.ModelStrings:
		return physics.NewStringSimulation(cfg.Coupling, rng), nil
	case config.ModelMatrix:
		return physics.NewMatrixModel(cfg.Size, cfg.Coupling, cfg.Mass, rng)
	default:
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

// DefaultMetrics returns the standard observation set for a model.
func DefaultMetrics(model string) []sim.Metric {
	ms := []sim.Metric{metrics.NewEnergyDrift()}
	if model == config.ModelStrings {
		ms = append(ms, metrics.NewLoopPopulation(), metrics.NewSplitTally())
	}
	return ms
}

type Experiment struct {
	cfg    *config.Config
	runner *sim.Runner
}

func New(cfg *config.Config) (*Experiment, error) {
	s, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	runner := sim.NewRunner(s)
	for _, m := range DefaultMetrics(cfg.Model) {
		runner.AddMetric(m)
	}
	return &Experiment{cfg: cfg, runner: runner}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, sim.Config{
		Dt:       e.cfg.Dt,
		Duration: e.cfg.Duration,
		Seed:     e.cfg.Seed,
	})
}

// Runner exposes the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner { return e.runner }
