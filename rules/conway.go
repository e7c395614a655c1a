package rules

const (
	// BirthNeighbors is the exact live neighbour count that brings a dead cell to life
	BirthNeighbors = 3
	// SurviveMin and SurviveMax bound the live neighbour count that keeps a live cell alive
	SurviveMin = 2
	SurviveMax = 3
	// MaxNeighbors is the largest possible neighbour count for any cell
	MaxNeighbors = 8
)

/*
ApplyConwayRules decides whether a cell is alive in the next generation.

  - a live cell with 2 or 3 live neighbours survives
  - a dead cell with exactly 3 live neighbours is born
  - every other cell is dead
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthNeighbors
}
