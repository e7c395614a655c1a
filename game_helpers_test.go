package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sheikhrachel/go-gol-term/model"
	"github.com/sheikhrachel/go-gol-term/utils"
)

type countingRenderer struct {
	frames []*model.Grid
	err    error
}

func (r *countingRenderer) Display(g *model.Grid) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, g)
	return nil
}

func (r *countingRenderer) Restore() error {
	return nil
}

func newTestGame(t *testing.T, config utils.Config) (*game, *countingRenderer) {
	t.Helper()
	g, err := initializeGame(config, &bytes.Buffer{}, false)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	r := &countingRenderer{}
	g.renderer = r
	g.sleep = func(time.Duration) {}
	return g, r
}

func TestRunStopsAfterCurrentIteration(t *testing.T) {
	for _, stopAt := range []int{1, 2, 5} {
		g, r := newTestGame(t, utils.DefaultConfig())

		stop := &utils.StopFlag{}
		sleeps := 0
		g.sleep = func(time.Duration) {
			sleeps++
			if sleeps == stopAt {
				stop.Stop()
			}
		}

		generation, err := g.run(stop)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if len(r.frames) != stopAt || generation != stopAt {
			t.Fatalf("stop at %d: rendered %d frames, %d generations", stopAt, len(r.frames), generation)
		}
	}
}

func TestRunNeverStartsWhenAlreadyStopped(t *testing.T) {
	g, r := newTestGame(t, utils.DefaultConfig())
	stop := &utils.StopFlag{}
	stop.Stop()

	generation, err := g.run(stop)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if generation != 0 || len(r.frames) != 0 {
		t.Fatalf("ran %d generations, %d frames after stop", generation, len(r.frames))
	}
}

func TestRunRendersEachGenerationInOrder(t *testing.T) {
	config := utils.DefaultConfig()
	config.Seed = 99
	config.MaxGenerations = 4
	config.Workers = 3
	config.UseMemoryPool = true

	g, r := newTestGame(t, config)
	reference := stepFourTimes(g.grid)

	generation, err := g.run(&utils.StopFlag{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if generation != 4 || len(r.frames) != 4 {
		t.Fatalf("got %d generations, %d frames, want 4", generation, len(r.frames))
	}
	if g.stats.TotalGenerations != 4 {
		t.Fatalf("stats recorded %d generations", g.stats.TotalGenerations)
	}
	// the generation left in the game is the step after the last rendered one
	if !g.grid.Equal(reference) {
		t.Fatal("final grid does not match sequential stepping")
	}
}

// stepFourTimes steps g four times sequentially without a pool
func stepFourTimes(g *model.Grid) *model.Grid {
	next := g.NextGeneration(nil)
	for i := 0; i < 3; i++ {
		next = next.NextGeneration(nil)
	}
	return next
}

func TestRunSurfacesRenderError(t *testing.T) {
	g, r := newTestGame(t, utils.DefaultConfig())
	r.err = errors.New("broken pipe")

	generation, err := g.run(&utils.StopFlag{})
	if err == nil {
		t.Fatal("expected render error")
	}
	if generation != 0 {
		t.Fatalf("stepped %d generations after render failure", generation)
	}
}

func TestInitializeGamePlainOutput(t *testing.T) {
	config := utils.DefaultConfig()
	config.Rows = 4
	config.Cols = 6
	config.DisplayMode = utils.DisplayModeDigits
	config.MaxGenerations = 3

	var out bytes.Buffer
	g, err := initializeGame(config, &out, false)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	g.sleep = func(time.Duration) {}

	if _, err = g.run(&utils.StopFlag{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err = g.renderer.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	// each frame: border, 4 digit rows, border
	if strings.Contains(out.String(), "\x1b") {
		t.Fatalf("plain digit output contains escape sequences: %q", out.String())
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3*6 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 3*6, out.String())
	}
	for i, line := range lines {
		if len(line) != 6 {
			t.Fatalf("line %d = %q, want 6 characters", i, line)
		}
	}
}

func TestDisplayFinalStats(t *testing.T) {
	stats := utils.NewStats()
	stats.Update(12, 40, 100*time.Millisecond)

	var out bytes.Buffer
	displayFinalStats(&out, stats)
	if !strings.Contains(out.String(), "Final stats: 12 generations") {
		t.Fatalf("unexpected stats output %q", out.String())
	}
}

func TestStatsExcludeFramePause(t *testing.T) {
	config := utils.DefaultConfig()
	config.MaxGenerations = 2

	g, _ := newTestGame(t, config)
	g.sleep = func(time.Duration) { time.Sleep(50 * time.Millisecond) }

	if _, err := g.run(&utils.StopFlag{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	// a 50ms pause alone would cap the rate at 20 per second
	if g.stats.GenerationsPerSecond <= 20 {
		t.Fatalf("GenerationsPerSecond = %.1f, pause leaked into the timing", g.stats.GenerationsPerSecond)
	}
}
