package export

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gogpu/gg"

	"StrokePad/internal/sketch"
)

// rasterSurface paints onto an offscreen gg context.
type rasterSurface struct {
	dc  *gg.Context
	err error
}

func newRasterSurface(width, height int, style sketch.Style) *rasterSurface {
	dc := gg.NewContext(width, height)
	dc.SetColor(style.Color)
	dc.SetStroke(gg.DefaultStroke().WithWidth(style.Width).WithCap(gg.LineCapRound))
	return &rasterSurface{dc: dc}
}

func (s *rasterSurface) Clear() {
	s.dc.ClearWithColor(gg.White)
}

func (s *rasterSurface) Line(from, to sketch.Pos) {
	s.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	if err := s.dc.Stroke(); err != nil && s.err == nil {
		s.err = err
	}
}

// Rasterize replays seq from the centre of a width x height white canvas.
func Rasterize(seq sketch.Sequence, width, height int, style sketch.Style) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d", width, height)
	}
	s := newRasterSurface(width, height, style)
	defer s.dc.Close()

	sketch.Render(seq, s, sketch.Center(float64(width), float64(height)))
	if s.err != nil {
		return nil, fmt.Errorf("stroking: %w", s.err)
	}
	if err := s.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flushing: %w", err)
	}
	return s.dc.Image(), nil
}

// WritePNG rasterizes seq and encodes it as PNG.
func WritePNG(w io.Writer, seq sketch.Sequence, width, height int, style sketch.Style) error {
	img, err := Rasterize(seq, width, height, style)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
