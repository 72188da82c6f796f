package discfolio

import "math"

// Layout describes where the ring sits on the drawing surface.
type Layout struct {
	CenterX     float64
	CenterY     float64
	Radius      float64 // ring radius
	DiscRadius  float64 // unscaled disc radius
	ActiveScale float64 // extra multiplier for the selected disc
}

const (
	defaultDiscRadius  = 120
	defaultActiveScale = 1.1
)

// LayoutFor returns the default layout for a surface of the given size: the ring
// is centred at 70% width and half height, with a radius of 35% of the shorter side.
func LayoutFor(width, height float64) Layout {
	return Layout{
		CenterX:     width * 0.7,
		CenterY:     height * 0.5,
		Radius:      math.Min(width, height) * 0.35,
		DiscRadius:  defaultDiscRadius,
		ActiveScale: defaultActiveScale,
	}
}

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	if a >= fullTurn {
		a = 0
	}
	return a
}

// CircularDistance returns the shorter arc between two angles, in [0, π].
func CircularDistance(a, b float64) float64 {
	d := math.Abs(WrapAngle(a) - WrapAngle(b))
	if d > math.Pi {
		d = fullTurn - d
	}
	return d
}

// NormalizedDistance is the circular distance from angle to the anchor divided by π.
func NormalizedDistance(angle float64) float64 {
	return CircularDistance(angle, AnchorAngle) / math.Pi
}

// DiscScale is the size falloff for a normalized distance.
func DiscScale(d float64) float64 {
	return math.Max(MinScale, 1-d*0.6)
}

// DiscOpacity is the opacity falloff for a normalized distance.
func DiscOpacity(d float64) float64 {
	return math.Max(MinOpacity, 1-d*0.7)
}

// AngleStep returns 2π/n. Callers must guard n > 0.
func AngleStep(n int) float64 {
	return fullTurn / float64(n)
}

// ItemAngle is the unwrapped angular position of item i at the given rotation.
func ItemAngle(i, n int, rotation float64) float64 {
	return float64(i)*AngleStep(n) + rotation
}

// PlaceDiscs computes every disc for one frame. selected marks the active disc,
// which receives the layout's active multiplier.
func PlaceDiscs(n int, rotation float64, layout Layout, selected int) []Disc {
	if n <= 0 {
		return nil
	}
	active := layout.ActiveScale
	if active <= 0 {
		active = 1
	}
	discs := make([]Disc, n)
	for i := 0; i < n; i++ {
		angle := ItemAngle(i, n, rotation)
		d := NormalizedDistance(angle)
		scale := DiscScale(d)
		r := layout.DiscRadius * scale
		if i == selected {
			r *= active
		}
		discs[i] = Disc{
			Index:    i,
			X:        layout.CenterX + math.Cos(angle)*layout.Radius,
			Y:        layout.CenterY + math.Sin(angle)*layout.Radius,
			Radius:   r,
			Scale:    scale,
			Opacity:  DiscOpacity(d),
			Distance: d,
			Selected: i == selected,
		}
	}
	return discs
}
