package model

import (
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-term/rules"
)

// Cell is the value of a single grid position
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// Coord addresses a cell by row and column
type Coord struct {
	Row int
	Col int
}

// Grid is one generation of the board, stored row-major in a flat slice.
//
// A Grid is filled once (randomly or from patterns) and is then treated as
// read-only: stepping always writes into a different Grid.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// NewRandomGrid creates a grid where every cell is alive with 50% probability.
// A nil rng draws from the process-wide math/rand source.
func NewRandomGrid(rows, cols int, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols)
	g.Randomize(rng)
	return g
}

// GetRows returns the number of rows of the grid
func (g *Grid) GetRows() int {
	return g.rows
}

// GetCols returns the number of columns of the grid
func (g *Grid) GetCols() int {
	return g.cols
}

// Len returns the number of cells, always rows*cols
func (g *Grid) Len() int {
	return len(g.cells)
}

// reset resizes the grid and kills every cell, reusing the backing slice when possible
func (g *Grid) reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	size := rows * cols
	if cap(g.cells) < size {
		g.cells = make([]Cell, size)
		return
	}
	g.cells = g.cells[:size]
	g.clear()
}

// clear kills all cells
func (g *Grid) clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// ToFlat maps a coordinate to its index in the flat cell slice
func (g *Grid) ToFlat(c Coord) int {
	return c.Row*g.cols + c.Col
}

// FromFlat maps a flat index back to its coordinate
func (g *Grid) FromFlat(index int) Coord {
	row := index / g.cols
	return Coord{Row: row, Col: index - row*g.cols}
}

// InBounds reports whether c lies inside the grid
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Set sets a cell; out-of-bounds coordinates are ignored
func (g *Grid) Set(c Coord, value Cell) {
	if g.InBounds(c) {
		g.cells[g.ToFlat(c)] = value
	}
}

// Get returns the state of a cell; anything outside the grid reads as Dead
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Dead
	}
	return g.cells[g.ToFlat(c)]
}

// IsAlive is shorthand for Get(c) == Alive
func (g *Grid) IsAlive(c Coord) bool {
	return g.Get(c) == Alive
}

// neighborBounds clamps the 3x3 window around c to the grid, edges do not wrap
func (g *Grid) neighborBounds(c Coord) (minRow, maxRow, minCol, maxCol int) {
	return max(0, c.Row-1), min(g.rows-1, c.Row+1), max(0, c.Col-1), min(g.cols-1, c.Col+1)
}

// Neighbors returns the in-bounds cells adjacent to c
func (g *Grid) Neighbors(c Coord) []Coord {
	minRow, maxRow, minCol, maxCol := g.neighborBounds(c)

	n := make([]Coord, 0, rules.MaxNeighbors)
	for r := minRow; r <= maxRow; r++ {
		for col := minCol; col <= maxCol; col++ {
			if r == c.Row && col == c.Col {
				continue
			}
			n = append(n, Coord{Row: r, Col: col})
		}
	}
	return n
}

// CountNeighbors counts living neighbours inside the clamped window around c
func (g *Grid) CountNeighbors(c Coord) int {
	minRow, maxRow, minCol, maxCol := g.neighborBounds(c)

	count := 0
	for r := minRow; r <= maxRow; r++ {
		rowStart := r * g.cols
		for col := minCol; col <= maxCol; col++ {
			if r == c.Row && col == c.Col {
				continue
			}
			if g.cells[rowStart+col] == Alive {
				count++
			}
		}
	}
	return count
}

// NextCellState returns the value c will have in the next generation.
// It only reads g, so cells can be evaluated in any order.
func (g *Grid) NextCellState(c Coord) Cell {
	if rules.ApplyConwayRules(g.CountNeighbors(c), g.IsAlive(c)) {
		return Alive
	}
	return Dead
}

// nextGrid hands out an all-dead grid of the same size, from the pool when given
func (g *Grid) nextGrid(pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(g.rows, g.cols)
	}
	return NewGrid(g.rows, g.cols)
}

// stepRows writes the next state of rows [startRow, endRow) into next
func (g *Grid) stepRows(next *Grid, startRow, endRow int) {
	for r := startRow; r < endRow; r++ {
		for col := 0; col < g.cols; col++ {
			c := Coord{Row: r, Col: col}
			next.cells[g.ToFlat(c)] = g.NextCellState(c)
		}
	}
}

// NextGeneration computes the next generation into a fresh grid, leaving g untouched
func (g *Grid) NextGeneration(pool *GridPool) *Grid {
	next := g.nextGrid(pool)
	g.stepRows(next, 0, g.rows)
	return next
}

// NextGenerationParallel computes the next generation by splitting the rows
// into bands evaluated concurrently. The result is identical to NextGeneration
// and the call returns only once every band is written.
// workers <= 0 uses one band per CPU.
func (g *Grid) NextGenerationParallel(workers int, pool *GridPool) *Grid {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		return g.NextGeneration(pool)
	}

	next := g.nextGrid(pool)

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.rows + workers - 1) / workers // Ceiling division
	)

	for i := 0; i < workers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			g.stepRows(next, startRow, endRow)
			return nil
		})
	}

	// bands only read g and write disjoint rows of next, they cannot fail
	_ = eg.Wait()

	return next
}

// Equal reports whether both grids have the same size and cell values
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		if c == Alive {
			count++
		}
	}
	return
}

// Randomize sets every cell independently to Alive or Dead with equal probability
func (g *Grid) Randomize(rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := range g.cells {
		g.cells[i] = Cell(intn(2))
	}
}

// setPattern stamps a pattern with its top-left corner at origin
func (g *Grid) setPattern(origin Coord, pattern [][]Cell) {
	for r, row := range pattern {
		for col, cell := range row {
			g.Set(Coord{Row: origin.Row + r, Col: origin.Col + col}, cell)
		}
	}
}

// AddGlider adds a glider pattern at the specified position
func (g *Grid) AddGlider(origin Coord) {
	g.setPattern(origin, [][]Cell{
		{Dead, Alive, Dead},
		{Dead, Dead, Alive},
		{Alive, Alive, Alive},
	})
}

// AddBlinker adds a horizontal period-2 blinker
func (g *Grid) AddBlinker(origin Coord) {
	g.setPattern(origin, [][]Cell{{Alive, Alive, Alive}})
}

// AddBlock adds a 2x2 still life
func (g *Grid) AddBlock(origin Coord) {
	g.setPattern(origin, [][]Cell{
		{Alive, Alive},
		{Alive, Alive},
	})
}
