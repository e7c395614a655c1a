package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records a finished generation. duration covers the render and the step
// of that generation, not the pause between frames, so GenerationsPerSecond is
// the throughput the simulation could reach without pacing.
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
