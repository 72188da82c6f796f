package discfolio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// FrameConfig defines the visual parameters of a raster frame.
type FrameConfig struct {
	Width      int        // Frame width in pixels
	Height     int        // Frame height in pixels
	Background color.RGBA // Cleared to at the start of every frame
	Disc       color.RGBA // Translucent disc body
	Rim        color.RGBA // Rim of unselected discs
	RimActive  color.RGBA // Rim and glow of the selected disc
	Hole       color.RGBA // Centre hole
	Text       color.RGBA // Label text
	LabelFill  color.RGBA // Label background
	OutputDir  string     // Directory CaptureFrame writes relative names into
}

// DefaultFrameConfig returns a 1280x720 dark frame.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Width:      1280,
		Height:     720,
		Background: color.RGBA{10, 10, 12, 255},
		Disc:       color.RGBA{255, 255, 255, 74},
		Rim:        color.RGBA{180, 180, 190, 160},
		RimActive:  color.RGBA{255, 214, 120, 255},
		Hole:       color.RGBA{0, 0, 0, 204},
		Text:       color.RGBA{255, 255, 255, 255},
		LabelFill:  color.RGBA{0, 0, 0, 128},
	}
}

const (
	holeSize       = 0.18
	rimWidth       = 2.0
	rimWidthActive = 4.0
	circleSegments = 96
)

// RasterSurface paints carousel frames into an RGBA image.
type RasterSurface struct {
	config FrameConfig
	img    *image.RGBA
	ras    *vector.Rasterizer
	face   font.Face
}

// NewRasterSurface allocates a frame buffer for config.
func NewRasterSurface(config FrameConfig) *RasterSurface {
	if config.Width <= 0 || config.Height <= 0 {
		def := DefaultFrameConfig()
		config.Width, config.Height = def.Width, def.Height
	}
	rect := image.Rect(0, 0, config.Width, config.Height)
	s := &RasterSurface{
		config: config,
		img:    image.NewRGBA(rect),
		ras:    vector.NewRasterizer(config.Width, config.Height),
		face:   basicfont.Face7x13,
	}
	s.Clear()
	return s
}

// Image exposes the frame buffer. It is overwritten by the next frame.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// Clear fills the frame with the background colour.
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.config.Background), image.Point{}, draw.Src)
}

// Size reports the frame size in pixels.
func (s *RasterSurface) Size() (float64, float64) {
	return float64(s.config.Width), float64(s.config.Height)
}

// MeasureText returns the advance width of str in the label face.
func (s *RasterSurface) MeasureText(str string) float64 {
	return fixedToFloat(font.MeasureString(s.face, str))
}

// DrawDisc paints a disc body, rim, centre hole and, for the selected disc, a glow ring.
func (s *RasterSurface) DrawDisc(d Disc) {
	if d.Radius <= 0 {
		return
	}
	s.fillCircle(d.X, d.Y, d.Radius, withAlpha(s.config.Disc, d.Opacity))

	rim, width := s.config.Rim, rimWidth
	if d.Selected {
		rim, width = s.config.RimActive, rimWidthActive
	}
	s.ring(d.X, d.Y, d.Radius, width, withAlpha(rim, d.Opacity))

	s.fillCircle(d.X, d.Y, d.Radius*holeSize, withAlpha(s.config.Hole, d.Opacity))
	s.ring(d.X, d.Y, d.Radius*holeSize, 1, withAlpha(color.RGBA{100, 100, 100, 128}, d.Opacity))

	if d.Selected {
		s.ring(d.X, d.Y, d.Radius+5, 3, withAlpha(s.config.RimActive, d.Opacity))
	}
}

// DrawLabel paints the rounded background box and centred text lines.
func (s *RasterSurface) DrawLabel(l Label) {
	s.fillRoundedRect(l.Box, math.Min(30, l.Box.H/2), withAlpha(s.config.LabelFill, l.Opacity*0.5))

	drawer := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(withAlpha(s.config.Text, l.Opacity)),
		Face: s.face,
	}
	ascent := fixedToFloat(s.face.Metrics().Ascent)
	centre := l.Box.X + l.Box.W/2
	y := l.Box.Y + l.PaddingY
	for _, line := range l.Lines {
		w := s.MeasureText(line)
		drawer.Dot = fixed.Point26_6{
			X: floatToFixed(centre - w/2),
			Y: floatToFixed(y + ascent),
		}
		drawer.DrawString(line)
		y += l.LineHeight
	}
}

// EncodePNG writes the current frame as PNG.
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// CaptureFrame writes the current frame to filename. Relative names are placed
// under the configured output directory.
func (s *RasterSurface) CaptureFrame(filename string) error {
	if !filepath.IsAbs(filename) && s.config.OutputDir != "" {
		filename = filepath.Join(s.config.OutputDir, filename)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	defer file.Close()

	if err := s.EncodePNG(file); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

func (s *RasterSurface) fillCircle(cx, cy, r float64, c color.Color) {
	s.ras.Reset(s.config.Width, s.config.Height)
	circlePath(s.ras, cx, cy, r, false)
	s.paint(c)
}

// ring fills the annulus between r and r-width; the inner path runs the other
// way so the rasterizer's winding cuts it out.
func (s *RasterSurface) ring(cx, cy, r, width float64, c color.Color) {
	inner := r - width
	if inner < 0 {
		inner = 0
	}
	s.ras.Reset(s.config.Width, s.config.Height)
	circlePath(s.ras, cx, cy, r, false)
	if inner > 0 {
		circlePath(s.ras, cx, cy, inner, true)
	}
	s.paint(c)
}

func (s *RasterSurface) fillRoundedRect(b Rect, radius float64, c color.Color) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	radius = math.Min(radius, math.Min(b.W, b.H)/2)
	s.ras.Reset(s.config.Width, s.config.Height)

	corners := []struct{ cx, cy, start float64 }{
		{b.X + b.W - radius, b.Y + radius, -math.Pi / 2},
		{b.X + b.W - radius, b.Y + b.H - radius, 0},
		{b.X + radius, b.Y + b.H - radius, math.Pi / 2},
		{b.X + radius, b.Y + radius, math.Pi},
	}
	const steps = 8
	first := true
	for _, corner := range corners {
		for i := 0; i <= steps; i++ {
			a := corner.start + float64(i)*(math.Pi/2)/steps
			x := float32(corner.cx + math.Cos(a)*radius)
			y := float32(corner.cy + math.Sin(a)*radius)
			if first {
				s.ras.MoveTo(x, y)
				first = false
				continue
			}
			s.ras.LineTo(x, y)
		}
	}
	s.ras.ClosePath()
	s.paint(c)
}

func (s *RasterSurface) paint(c color.Color) {
	s.ras.DrawOp = draw.Over
	s.ras.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func circlePath(ras *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		step := i
		if reverse {
			step = circleSegments - i
		}
		a := float64(step) * fullTurn / circleSegments
		x := float32(cx + math.Cos(a)*r)
		y := float32(cy + math.Sin(a)*r)
		if i == 0 {
			ras.MoveTo(x, y)
			continue
		}
		ras.LineTo(x, y)
	}
	ras.ClosePath()
}

func withAlpha(c color.RGBA, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(float64(c.A) * opacity))}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
