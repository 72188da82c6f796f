// Package discfolio renders a musician's video portfolio as a rotating ring of discs.
//
// The Renderer owns an ordered set of display items, eases its rotation toward a
// target every frame, lays the items out on a circle and highlights the disc
// nearest a fixed anchor angle. Whenever the selected disc changes it notifies a
// callback exactly once, so hosts can swap titles and thumbnails.
//
// Basic usage:
//
//	surface := discfolio.NewRasterSurface(discfolio.DefaultFrameConfig())
//	r := discfolio.NewRenderer(surface,
//		discfolio.WithSelectionHandler(func(i int) { fmt.Println("selected", i) }))
//	r.SetItems(items)
//
//	// once per display refresh
//	r.AdvanceFrame()
//
//	// on wheel input
//	r.Scroll(event.DeltaY)
//
// For scripted, headless capture of frames:
//
//	discfolio.NewOperator(items, cfg).
//		Scroll(240).
//		Settle(120).
//		CaptureTrackingShot("settled").
//		Stop()
package discfolio

import "math"

// Option configures a Renderer.
type Option func(*Renderer)

// WithLayout fixes the ring geometry instead of deriving it from the surface size.
func WithLayout(l Layout) Option {
	return func(r *Renderer) {
		r.fixedLayout = &l
	}
}

// WithSelectionHandler registers the selection-changed callback.
func WithSelectionHandler(fn func(index int)) Option {
	return func(r *Renderer) {
		r.onSelect = fn
	}
}

// WithDiscRadius overrides the unscaled disc radius of the derived layout.
func WithDiscRadius(radius float64) Option {
	return func(r *Renderer) {
		r.discRadius = radius
	}
}

// WithActiveScale overrides the multiplier applied to the selected disc.
func WithActiveScale(scale float64) Option {
	return func(r *Renderer) {
		r.activeScale = scale
	}
}

// Renderer is the carousel state machine.
//
// It is not safe for concurrent use: AdvanceFrame and the input methods are
// expected to run on one event loop, as they do in a browser or bubbletea host.
type Renderer struct {
	surface     Surface
	items       []DisplayItem
	current     float64
	target      float64
	frame       int
	last        Frame
	fixedLayout *Layout
	activeScale float64
	discRadius  float64
	onSelect    func(int)
	tracker     *selectionTracker
}

// NewRenderer creates a renderer drawing onto surface. A nil surface is allowed;
// the renderer then only computes layout and selection.
func NewRenderer(surface Surface, opts ...Option) *Renderer {
	r := &Renderer{
		surface:     surface,
		activeScale: defaultActiveScale,
		discRadius:  defaultDiscRadius,
		last:        Frame{Selected: -1},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tracker = newSelectionTracker(func(i int) {
		if r.onSelect != nil {
			r.onSelect(i)
		}
	})
	return r
}

// SetItems replaces the working set and resets selection tracking, so the next
// frame recomputes and announces the selection from scratch.
func (r *Renderer) SetItems(items []DisplayItem) {
	r.items = append([]DisplayItem(nil), items...)
	r.tracker.reset()
}

// Items returns a copy of the current working set.
func (r *Renderer) Items() []DisplayItem {
	return append([]DisplayItem(nil), r.items...)
}

// ApplyRotationDelta adds delta radians to the target rotation. The target is
// never wrapped, which keeps easing continuous across the 2π boundary.
func (r *Renderer) ApplyRotationDelta(delta float64) {
	r.target += delta
}

// Scroll converts a wheel or drag delta into a rotation delta.
func (r *Renderer) Scroll(delta float64) {
	r.ApplyRotationDelta(delta * ScrollSensitivity)
}

// SnapTo sets both rotations to rotation, skipping the easing. Still frames
// use it to render an exact position on the next AdvanceFrame.
func (r *Renderer) SnapTo(rotation float64) {
	r.current = rotation
	r.target = rotation
}

// CurrentRotation returns the eased rotation, unwrapped.
func (r *Renderer) CurrentRotation() float64 { return r.current }

// TargetRotation returns the accumulated target rotation.
func (r *Renderer) TargetRotation() float64 { return r.target }

// Settled reports whether the eased rotation has caught up with the target.
func (r *Renderer) Settled(epsilon float64) bool {
	return math.Abs(r.target-r.current) < epsilon
}

// Renormalize subtracts whole turns from both rotations once they agree, so a
// long session does not grow them without bound. Geometry and selection are
// unaffected because both values move by the same multiple of 2π.
func (r *Renderer) Renormalize() bool {
	if !r.Settled(1e-6) {
		return false
	}
	turns := math.Floor(r.current / fullTurn)
	if turns == 0 {
		return false
	}
	shift := turns * fullTurn
	r.current -= shift
	r.target -= shift
	return true
}

// Selected returns the currently selected index. ok is false until a frame with
// at least one item has been advanced since the last SetItems.
func (r *Renderer) Selected() (index int, ok bool) {
	return r.tracker.current()
}

// SelectedItem returns the item under the anchor, if any.
func (r *Renderer) SelectedItem() (DisplayItem, bool) {
	i, ok := r.Selected()
	if !ok || i >= len(r.items) {
		return DisplayItem{}, false
	}
	return r.items[i], true
}

// LastFrame returns what the most recent AdvanceFrame computed.
func (r *Renderer) LastFrame() Frame {
	return r.last
}

// FrameCount returns how many frames have been advanced.
func (r *Renderer) FrameCount() int { return r.frame }

// AdvanceFrame runs one display refresh: ease, clear, lay out, draw, then
// compare-and-notify the selection.
func (r *Renderer) AdvanceFrame() {
	r.frame++
	r.current += (r.target - r.current) * EaseFactor

	if r.surface != nil {
		r.surface.Clear()
	}

	n := len(r.items)
	if n == 0 {
		r.last = Frame{Number: r.frame, Rotation: r.current, Selected: -1}
		return
	}

	selected := FindSelected(n, r.current)
	discs := PlaceDiscs(n, r.current, r.layout(), selected)

	var label *Label
	if sel := discs[selected]; sel.Distance < LabelThreshold {
		l := LabelFor(sel, r.items[selected].Title, r.measure)
		label = &l
	}

	if r.surface != nil {
		for _, d := range discs {
			r.surface.DrawDisc(d)
		}
		if label != nil {
			r.surface.DrawLabel(*label)
		}
	}

	r.last = Frame{
		Number:   r.frame,
		Rotation: r.current,
		Discs:    discs,
		Label:    label,
		Selected: selected,
	}

	r.tracker.observe(selected)
}

func (r *Renderer) layout() Layout {
	if r.fixedLayout != nil {
		l := *r.fixedLayout
		if l.ActiveScale == 0 {
			l.ActiveScale = r.activeScale
		}
		return l
	}
	var w, h float64
	if r.surface != nil {
		w, h = r.surface.Size()
	}
	l := LayoutFor(w, h)
	l.DiscRadius = r.discRadius
	l.ActiveScale = r.activeScale
	return l
}

// measure falls back to a fixed advance when there is no surface.
func (r *Renderer) measure(s string) float64 {
	if r.surface == nil {
		return float64(len([]rune(s))) * 7
	}
	return r.surface.MeasureText(s)
}
