package model

import (
	"bufio"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Pre-allocated ANSI sequence fragments
var (
	csi          = []byte("\x1b[")
	csiClear     = []byte("\x1b[2J")
	csiSGR0      = []byte("\x1b[0m")
	csiFg256     = []byte("\x1b[38;5;") // followed by N;m
	csiBg256     = []byte("\x1b[48;5;") // followed by N;m
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;B;m
	csiBgRGB     = []byte("\x1b[48;2;") // followed by R;G;B;m
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")
)

// writeInt writes a non-negative integer in decimal
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	var buf [20]byte
	w.Write(strconv.AppendInt(buf[:0], int64(n), 10))
}

// writeCursorPos moves the cursor to column x, row y (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeColor emits a foreground or background color sequence.
// Palette colors use the 256-color form, RGB colors the 24-bit form,
// anything else falls back to the terminal default.
func writeColor(w *bufio.Writer, c tcell.Color, background bool) {
	switch {
	case c.IsRGB():
		r, g, b := c.RGB()
		if background {
			w.Write(csiBgRGB)
		} else {
			w.Write(csiFgRGB)
		}
		writeInt(w, int(r))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
	case c.Valid():
		if background {
			w.Write(csiBg256)
		} else {
			w.Write(csiFg256)
		}
		writeInt(w, int(c-tcell.ColorValid))
		w.WriteByte('m')
	default:
		if background {
			w.Write(csiDefaultBg)
		} else {
			w.Write(csiDefaultFg)
		}
	}
}
