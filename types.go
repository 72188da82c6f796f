package discfolio

import "math"

// Carousel constants shared by every host.
const (
	// AnchorAngle is the selection point on the ring (top-left on screen, 225°).
	AnchorAngle = math.Pi * 1.25
	// EaseFactor is the fraction of the remaining rotation gap closed per frame.
	EaseFactor = 0.15
	// ScrollSensitivity converts a wheel delta into radians.
	ScrollSensitivity = 0.002

	// MinScale and MinOpacity floor the distance falloff of far discs.
	MinScale   = 0.4
	MinOpacity = 0.15

	// LabelThreshold gates the selected disc's label on normalized distance.
	LabelThreshold = 0.15

	fullTurn = math.Pi * 2
)

// DisplayItem identifies a playable video on the carousel.
type DisplayItem struct {
	ID    string `json:"id"`    // opaque external video id
	Title string `json:"title"` // display text
}

// Disc is the computed placement of one item for a single frame.
type Disc struct {
	Index    int
	X, Y     float64
	Radius   float64 // already scaled, including the active multiplier
	Scale    float64
	Opacity  float64
	Distance float64 // normalized angular distance to the anchor, [0,1]
	Selected bool
}

// Rect is an axis-aligned box in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Label is the wrapped title box drawn next to the selected disc.
type Label struct {
	Lines      []string
	Box        Rect
	LineHeight float64
	PaddingX   float64
	PaddingY   float64
	Opacity    float64
}

// Frame captures what the renderer produced on its most recent AdvanceFrame.
type Frame struct {
	Number   int
	Rotation float64
	Discs    []Disc
	Label    *Label
	Selected int // -1 when nothing is selected
}
