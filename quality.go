package discfolio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// FrameSupervisor compares captured frames against baseline PNGs.
type FrameSupervisor struct {
	baselineDir string
	currentDir  string
	tolerance   float64 // fraction of differing pixels allowed
}

// NewFrameSupervisor creates a visual regression checker with a 5% tolerance.
func NewFrameSupervisor(baselineDir, currentDir string) *FrameSupervisor {
	return &FrameSupervisor{
		baselineDir: baselineDir,
		currentDir:  currentDir,
		tolerance:   0.05,
	}
}

// WithTolerance overrides the allowed fraction of differing pixels.
func (fs *FrameSupervisor) WithTolerance(tolerance float64) *FrameSupervisor {
	fs.tolerance = tolerance
	return fs
}

// ValidateConsistency compares <current>/<name>.png with <baseline>/<name>.png.
// On regression a <name>_diff.png is written next to the current frame.
func (fs *FrameSupervisor) ValidateConsistency(name string) error {
	baselinePath := filepath.Join(fs.baselineDir, name+".png")
	currentPath := filepath.Join(fs.currentDir, name+".png")

	baseline, err := loadPNG(baselinePath)
	if err != nil {
		return fmt.Errorf("load baseline: %w", err)
	}
	current, err := loadPNG(currentPath)
	if err != nil {
		return fmt.Errorf("load current: %w", err)
	}

	difference := FrameDifference(baseline, current)
	if difference <= fs.tolerance {
		return nil
	}

	diffPath := filepath.Join(fs.currentDir, name+"_diff.png")
	if err := writeDiffImage(baseline, current, diffPath); err != nil {
		return fmt.Errorf("visual regression detected: %.2f%% difference (diff image failed: %v)", difference*100, err)
	}
	return fmt.Errorf("visual regression detected: %.2f%% difference (tolerance: %.2f%%)",
		difference*100, fs.tolerance*100)
}

// SetBaseline copies a captured frame into the baseline directory under name.
func (fs *FrameSupervisor) SetBaseline(name, framePath string) error {
	if err := os.MkdirAll(fs.baselineDir, 0o755); err != nil {
		return fmt.Errorf("create baseline directory: %w", err)
	}
	input, err := os.Open(framePath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(filepath.Join(fs.baselineDir, name+".png"))
	if err != nil {
		return err
	}
	defer output.Close()

	_, err = io.Copy(output, input)
	return err
}

// FrameDifference returns the fraction of pixels that differ. Frames of
// different sizes are 100% different.
func FrameDifference(a, b image.Image) float64 {
	ba, bb := a.Bounds(), b.Bounds()
	if ba != bb {
		return 1.0
	}
	total := ba.Dx() * ba.Dy()
	if total == 0 {
		return 0
	}
	different := 0
	for y := ba.Min.Y; y < ba.Max.Y; y++ {
		for x := ba.Min.X; x < ba.Max.X; x++ {
			if !sameColor(a.At(x, y), b.At(x, y)) {
				different++
			}
		}
	}
	return float64(different) / float64(total)
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func loadPNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return png.Decode(file)
}

// writeDiffImage marks differing pixels red and dims the rest.
func writeDiffImage(baseline, current image.Image, outputPath string) error {
	bounds := baseline.Bounds()
	diff := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			base := baseline.At(x, y)
			if !sameColor(base, current.At(x, y)) {
				diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				continue
			}
			r, g, b, a := base.RGBA()
			diff.Set(x, y, color.RGBA{uint8(r >> 9), uint8(g >> 9), uint8(b >> 9), uint8(a >> 8)})
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, diff)
}
