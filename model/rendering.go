package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	glyphUpperHalf = "▀"
	glyphLowerHalf = "▄"
	glyphEmpty     = " "

	borderMarker = "+"

	// frames are flushed in one write when they fit the buffer
	outputBufferSize = 128 << 10
)

// DisplayMode selects how cells are turned into characters
type DisplayMode int

const (
	// DisplayGlyph packs two grid rows into one text row using half-block glyphs
	DisplayGlyph DisplayMode = iota
	// DisplayDigits prints one 0/1 digit per cell, one grid row per line
	DisplayDigits
)

// frameState tracks whether the screen still has to be cleared before drawing
type frameState int

const (
	firstFrame frameState = iota
	steadyFrame
)

// TerminalRenderer paints grids onto a write-only terminal stream.
//
// In plain mode every frame is a bordered block printed below the previous one.
// In refresh mode the screen is cleared once and every cell is then written at
// an absolute cursor position derived from its coordinates, so frames overwrite
// each other in place.
type TerminalRenderer struct {
	out       *bufio.Writer
	mode      DisplayMode
	refresh   bool
	fillColor tcell.Color
	state     frameState
	colored   bool

	// printed rows of the last frame, used to park the cursor on Restore
	lastHeight int
}

// NewTerminalRenderer creates a renderer writing to w.
// A fillColor without a solid value falls back to black.
func NewTerminalRenderer(w io.Writer, mode DisplayMode, refresh bool, fillColor tcell.Color) *TerminalRenderer {
	if !fillColor.Valid() {
		fillColor = tcell.ColorBlack
	}
	return &TerminalRenderer{
		out:       bufio.NewWriterSize(w, outputBufferSize),
		mode:      mode,
		refresh:   refresh,
		fillColor: fillColor,
		state:     firstFrame,
	}
}

// Display renders one generation and flushes it as a single batch
func (r *TerminalRenderer) Display(g *Grid) error {
	if r.refresh && r.state == firstFrame {
		r.out.Write(csiClear)
	}
	r.state = steadyFrame

	if !r.refresh {
		r.writeBorder(g.cols)
	}

	var height int
	switch r.mode {
	case DisplayDigits:
		height = r.displayDigits(g)
	default:
		height = r.displayGlyphs(g)
	}
	r.lastHeight = height

	if r.refresh {
		writeCursorPos(r.out, 0, height)
	} else {
		r.writeBorder(g.cols)
	}

	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to flush frame")
	}
	return nil
}

// Restore leaves the terminal with default colors and the cursor below the grid.
// Plain output that never carried a color is left untouched.
func (r *TerminalRenderer) Restore() error {
	if r.refresh || r.colored {
		r.out.Write(csiSGR0)
	}
	if r.refresh && r.state == steadyFrame {
		writeCursorPos(r.out, 0, r.lastHeight)
	}
	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "[Restore] failed to reset terminal")
	}
	return nil
}

func (r *TerminalRenderer) writeBorder(cols int) {
	r.out.WriteString(strings.Repeat(borderMarker, cols))
	r.out.WriteByte('\n')
}

// beginCell positions the cursor in refresh mode; plain mode relies on sequential output
func (r *TerminalRenderer) beginCell(x, y int) {
	if r.refresh {
		writeCursorPos(r.out, x, y)
	}
}

func (r *TerminalRenderer) endLine() {
	if !r.refresh {
		r.out.WriteByte('\n')
	}
}

// displayGlyphs draws the compact half-block view and returns the number of printed rows
func (r *TerminalRenderer) displayGlyphs(g *Grid) int {
	height := GlyphRows(g.rows)

	for y := 0; y < height; y++ {
		top := 2 * y
		bottom := top + 1
		for col := 0; col < g.cols; col++ {
			r.beginCell(col, y)
			// a missing bottom row on odd-height grids reads as Dead through Get
			r.writeGlyph(g.IsAlive(Coord{Row: top, Col: col}), g.IsAlive(Coord{Row: bottom, Col: col}))
		}
		r.endLine()
	}
	return height
}

// writeGlyph prints the character for a vertical pair of cells and resets
// the color afterwards so it cannot bleed into the next cell
func (r *TerminalRenderer) writeGlyph(top, bottom bool) {
	glyph := SelectGlyph(top, bottom)
	if glyph != GlyphEmpty {
		r.colored = true
	}
	switch glyph {
	case GlyphFull:
		writeColor(r.out, r.fillColor, true)
		r.out.WriteString(glyphEmpty)
	case GlyphUpper:
		writeColor(r.out, r.fillColor, false)
		r.out.WriteString(glyphUpperHalf)
	case GlyphLower:
		writeColor(r.out, r.fillColor, false)
		r.out.WriteString(glyphLowerHalf)
	default:
		r.out.WriteString(glyphEmpty)
	}
	r.out.Write(csiSGR0)
}

// displayDigits draws one 0/1 digit per cell and returns the number of printed rows
func (r *TerminalRenderer) displayDigits(g *Grid) int {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			r.beginCell(col, row)
			if g.IsAlive(Coord{Row: row, Col: col}) {
				r.out.WriteByte('1')
			} else {
				r.out.WriteByte('0')
			}
		}
		r.endLine()
	}
	return g.rows
}

// Glyph is the visual form of a vertical pair of cells
type Glyph int

const (
	GlyphEmpty Glyph = iota
	GlyphUpper
	GlyphLower
	// GlyphFull is drawn as a space on a filled background rather than a full block character
	GlyphFull
)

// SelectGlyph picks the glyph for a top/bottom pair of cells
func SelectGlyph(top, bottom bool) Glyph {
	switch {
	case top && bottom:
		return GlyphFull
	case top:
		return GlyphUpper
	case bottom:
		return GlyphLower
	default:
		return GlyphEmpty
	}
}

// GlyphRows returns how many text rows the compact view needs for a grid of the given height
func GlyphRows(gridRows int) int {
	return (gridRows + 1) / 2
}
