package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/arcade/surface"
)

// halfBlock shows the top pixel as foreground and the bottom pixel as background
const halfBlock = '▀'

// Present scales the frame to the terminal and shows it
// Each cell samples the center of its source region, two pixel rows per cell
func (s *Screen) Present(frame *surface.Surface) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if frame.Closed() {
		return surface.ErrClosed
	}
	cols, rows := s.scr.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	srcW, srcH := frame.Width(), frame.Height()
	gridH := rows * 2
	for y := 0; y < rows; y++ {
		top := ((2*y)*srcH + srcH/2) / gridH
		bottom := ((2*y+1)*srcH + srcH/2) / gridH
		for x := 0; x < cols; x++ {
			sx := (x*srcW + srcW/2) / cols
			style := tcell.StyleDefault.
				Foreground(cellColor(frame, sx, top)).
				Background(cellColor(frame, sx, bottom))
			s.scr.SetContent(x, y, halfBlock, nil, style)
		}
	}
	s.scr.Show()
	return nil
}

func cellColor(frame *surface.Surface, x, y int) tcell.Color {
	r, g, b := frame.Format().GetRGB(frame.Pixel(x, y))
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
