// Package text writes fixed-width bitmap text onto images
package text

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/arcade/vmath"
)

// Writer draws strings with the 7x13 fixed font
// Every rune occupies one cell; runes without a glyph print as spaces
type Writer struct {
	face   *basicfont.Face
	fg     image.Image
	bg     image.Image
	cell   vmath.Vec2i
	ascent int
}

// NewWriter creates a writer drawing in fg over a transparent background
func NewWriter(fg color.Color) *Writer {
	face := basicfont.Face7x13
	return &Writer{
		face:   face,
		fg:     image.NewUniform(fg),
		cell:   vmath.V2(face.Advance, face.Height),
		ascent: face.Ascent,
	}
}

// SetColor changes the glyph color
func (w *Writer) SetColor(fg color.Color) {
	w.fg = image.NewUniform(fg)
}

// SetBackground fills each cell with bg before its glyph; nil restores transparency
func (w *Writer) SetBackground(bg color.Color) {
	if bg == nil {
		w.bg = nil
		return
	}
	w.bg = image.NewUniform(bg)
}

// FontSize returns the cell size in pixels
func (w *Writer) FontSize() vmath.Vec2i {
	return w.cell
}

// Width returns the pixel width of s
func (w *Writer) Width(s string) int {
	return utf8.RuneCountInString(s) * w.cell.X
}

// Size returns the pixel size of s on one line
func (w *Writer) Size(s string) vmath.Vec2i {
	return vmath.V2(w.Width(s), w.cell.Y)
}

// printable maps control and undefined Latin-1 characters to space
func (w *Writer) printable(r rune) rune {
	if r < 32 || (r >= 127 && r <= 160) || r == utf8.RuneError {
		return ' '
	}
	if _, ok := w.face.GlyphAdvance(r); !ok {
		return ' '
	}
	return r
}

// Write draws s with its top-left corner at pos, clipped to dst
func (w *Writer) Write(dst draw.Image, s string, pos vmath.Vec2i) {
	d := font.Drawer{Dst: dst, Src: w.fg, Face: w.face}
	x := pos.X
	for _, r := range s {
		if w.bg != nil {
			cell := image.Rect(x, pos.Y, x+w.cell.X, pos.Y+w.cell.Y)
			draw.Draw(dst, cell, w.bg, image.Point{}, draw.Src)
		}
		if r = w.printable(r); r != ' ' {
			d.Dot = fixed.P(x, pos.Y+w.ascent)
			d.DrawString(string(r))
		}
		x += w.cell.X
	}
}

// WriteCentered draws s centered on pos in both directions
func (w *Writer) WriteCentered(dst draw.Image, s string, pos vmath.Vec2i) {
	w.Write(dst, s, pos.Sub(w.Size(s).Div(2)))
}

// WriteXCentered draws s centered horizontally on pos.X with its top at pos.Y
func (w *Writer) WriteXCentered(dst draw.Image, s string, pos vmath.Vec2i) {
	w.Write(dst, s, vmath.V2(pos.X-w.Width(s)/2, pos.Y))
}

// WriteRightJustified draws s so that it ends just left of pos.X
func (w *Writer) WriteRightJustified(dst draw.Image, s string, pos vmath.Vec2i) {
	w.Write(dst, s, vmath.V2(pos.X-w.Width(s), pos.Y))
}
