package discfolio

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TrackingShot records one captured frame.
type TrackingShot struct {
	Label    string
	Filename string
	Frame    int
	Selected int
	Rotation float64
	Time     time.Time
}

// Take is the result of an Operator session.
type Take struct {
	Shots            []TrackingShot
	SelectionChanges []int // indices announced by the selection callback, in order
	Frames           int
	Duration         time.Duration
	Success          bool
	Error            error
}

// Operator drives a Renderer headlessly and captures its frames as PNG files.
//
// Errors are collected rather than returned from each step so a script of
// scrolls and captures can be written fluently; Stop reports the first one.
//
// Example:
//
//	take := NewOperator(items, cfg).
//		CaptureTrackingShot("initial").
//		Scroll(480).
//		Settle(200).
//		CaptureTrackingShot("after_scroll").
//		Stop()
type Operator struct {
	renderer *Renderer
	surface  *RasterSurface
	filmDir  string
	started  time.Time
	shots    []TrackingShot
	changes  []int
	onSelect func(int)
	err      error
}

// NewOperator creates a renderer over a fresh RasterSurface built from cfg, loads
// items and advances one frame so the initial selection is known. A selection
// handler among opts is replaced; use OnSelect instead.
func NewOperator(items []DisplayItem, cfg FrameConfig, opts ...Option) *Operator {
	op := &Operator{
		surface: NewRasterSurface(cfg),
		filmDir: cfg.OutputDir,
		started: time.Now(),
	}
	opts = append(opts, WithSelectionHandler(func(i int) {
		op.changes = append(op.changes, i)
		if op.onSelect != nil {
			op.onSelect(i)
		}
	}))
	op.renderer = NewRenderer(op.surface, opts...)
	op.renderer.SetItems(items)
	op.renderer.AdvanceFrame()
	return op
}

// OnSelect forwards selection changes to fn in addition to recording them.
func (op *Operator) OnSelect(fn func(int)) *Operator {
	op.onSelect = fn
	return op
}

// Renderer exposes the driven renderer.
func (op *Operator) Renderer() *Renderer { return op.renderer }

// Surface exposes the raster surface.
func (op *Operator) Surface() *RasterSurface { return op.surface }

// Scroll feeds a wheel delta into the renderer.
func (op *Operator) Scroll(delta float64) *Operator {
	op.renderer.Scroll(delta)
	return op
}

// Rotate feeds a raw rotation delta in radians.
func (op *Operator) Rotate(delta float64) *Operator {
	op.renderer.ApplyRotationDelta(delta)
	return op
}

// Advance runs n frames.
func (op *Operator) Advance(n int) *Operator {
	for i := 0; i < n; i++ {
		op.renderer.AdvanceFrame()
	}
	return op
}

// Settle advances until the rotation has caught up with the target or maxFrames
// have run.
func (op *Operator) Settle(maxFrames int) *Operator {
	for i := 0; i < maxFrames; i++ {
		op.renderer.AdvanceFrame()
		if op.renderer.Settled(1e-4) {
			return op
		}
	}
	return op
}

// CaptureTrackingShot writes the current frame to the film directory.
func (op *Operator) CaptureTrackingShot(label string) *Operator {
	if op.filmDir == "" {
		op.recordError(fmt.Errorf("capture %q: no film directory configured", label))
		return op
	}
	frame := op.renderer.LastFrame()
	name := fmt.Sprintf("frame_%03d_%s.png", len(op.shots), sanitizeLabel(label))
	path := filepath.Join(op.filmDir, name)
	if err := op.surface.CaptureFrame(path); err != nil {
		op.recordError(fmt.Errorf("capture %q: %w", label, err))
		return op
	}
	op.shots = append(op.shots, TrackingShot{
		Label:    label,
		Filename: path,
		Frame:    frame.Number,
		Selected: frame.Selected,
		Rotation: frame.Rotation,
		Time:     time.Now(),
	})
	return op
}

// ScrollWithTrackingShot scrolls, settles and captures in one step.
func (op *Operator) ScrollWithTrackingShot(delta float64, maxFrames int, label string) *Operator {
	return op.Scroll(delta).Settle(maxFrames).CaptureTrackingShot(label)
}

// Stop ends the session.
func (op *Operator) Stop() *Take {
	return &Take{
		Shots:            append([]TrackingShot(nil), op.shots...),
		SelectionChanges: append([]int(nil), op.changes...),
		Frames:           op.renderer.FrameCount(),
		Duration:         time.Since(op.started),
		Success:          op.err == nil,
		Error:            op.err,
	}
}

func (op *Operator) recordError(err error) {
	if op.err == nil {
		op.err = err
	}
}

func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, label)
}
