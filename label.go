package discfolio

import (
	"math"
	"strings"
)

// Label geometry, in surface units.
const (
	LabelMaxWidth   = 300
	LabelLineHeight = 24
	LabelPaddingX   = 20
	LabelPaddingY   = 12
	labelGap        = 40
)

// WrapLabel greedily wraps title to lines no wider than maxWidth as reported by
// measure. A single word wider than maxWidth still gets its own line. It returns
// the trimmed lines and the widest measured line.
func WrapLabel(title string, measure func(string) float64, maxWidth float64) ([]string, float64) {
	words := strings.Split(title, " ")
	var lines []string
	widest := 0.0
	line := ""
	for _, word := range words {
		candidate := line + word + " "
		if measure(candidate) > maxWidth && line != "" {
			lines = append(lines, strings.TrimSpace(line))
			widest = math.Max(widest, measure(line))
			line = word + " "
			continue
		}
		line = candidate
	}
	lines = append(lines, strings.TrimSpace(line))
	widest = math.Max(widest, measure(line))
	return lines, widest
}

// LabelFor sizes the title box for a selected disc. The box hugs the wrapped
// text plus fixed padding and sits to the left of the disc, vertically centred.
func LabelFor(disc Disc, title string, measure func(string) float64) Label {
	lines, widest := WrapLabel(title, measure, LabelMaxWidth)
	h := float64(len(lines))*LabelLineHeight + LabelPaddingY*2
	w := widest + LabelPaddingX*2
	return Label{
		Lines: lines,
		Box: Rect{
			X: disc.X - disc.Radius - labelGap - w,
			Y: disc.Y - h/2,
			W: w,
			H: h,
		},
		LineHeight: LabelLineHeight,
		PaddingX:   LabelPaddingX,
		PaddingY:   LabelPaddingY,
		Opacity:    disc.Opacity,
	}
}
