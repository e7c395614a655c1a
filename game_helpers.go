package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-term/model"
	"github.com/sheikhrachel/go-gol-term/utils"
)

// gridRenderer is what the game loop needs from a display
type gridRenderer interface {
	Display(g *model.Grid) error
	Restore() error
}

// game owns the current generation and everything needed to advance and show it
type game struct {
	config   utils.Config
	grid     *model.Grid
	pool     *model.GridPool
	renderer gridRenderer
	stats    *utils.Stats
	sleep    func(time.Duration)
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer, refresh bool) (*game, error) {
	fillColor, err := config.Color()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] bad fill color")
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	var rng *rand.Rand
	if config.Seed != 0 {
		rng = rand.New(rand.NewSource(config.Seed))
	}

	mode := model.DisplayGlyph
	if config.DisplayMode == utils.DisplayModeDigits {
		mode = model.DisplayDigits
	}

	return &game{
		config:   config,
		grid:     model.NewRandomGrid(config.Rows, config.Cols, rng),
		pool:     pool,
		renderer: model.NewTerminalRenderer(out, mode, refresh, fillColor),
		stats:    utils.NewStats(),
		sleep:    time.Sleep,
	}, nil
}

// reachedLimit reports whether a bounded run has produced all its generations
func (g *game) reachedLimit(generation int) bool {
	return g.config.MaxGenerations > 0 && generation >= g.config.MaxGenerations
}

// run alternates render, step and sleep until stop is observed at the top of an
// iteration. A stop raised mid-iteration lets that iteration finish.
func (g *game) run(stop *utils.StopFlag) (int, error) {
	generation := 0
	for !stop.Stopped() && !g.reachedLimit(generation) {
		workStart := time.Now()

		if err := g.renderer.Display(g.grid); err != nil {
			return generation, errors.Wrapf(err, "[run] render failed at generation %d", generation)
		}

		next := g.grid.NextGenerationParallel(g.config.Workers, g.pool)

		// Return old grid to pool if using memory pooling
		model.GridToPool(g.grid, g.pool)
		g.grid = next
		generation++
		g.stats.Update(generation, g.grid.CountLivingCells(), time.Since(workStart))

		g.sleep(g.config.FrameInterval())
	}
	return generation, nil
}

// displayFinalStats shows the summary printed after shutdown
func displayFinalStats(w io.Writer, stats *utils.Stats) {
	fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
