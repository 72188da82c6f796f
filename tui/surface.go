package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teranos/discfolio"
)

// One terminal cell covers CellWidth x CellHeight surface units. Cells are
// roughly twice as tall as wide, so the aspect is corrected here and an
// 80x24 terminal lays out like a 1280x768 frame.
const (
	CellWidth  = 16
	CellHeight = 32
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellDisc
	cellActive
	cellLabel
)

type cell struct {
	r    rune
	kind cellKind
}

// shades from faint to solid, indexed by opacity
var shades = []rune{'·', '░', '▒', '▓'}

// Surface is a discfolio.Surface backed by a grid of terminal cells.
type Surface struct {
	cols, rows int
	cells      []cell
}

// NewSurface allocates a cols x rows grid.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize reallocates the grid; the next frame redraws it.
func (s *Surface) Resize(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear()
}

// Dimensions returns the grid size in cells.
func (s *Surface) Dimensions() (cols, rows int) { return s.cols, s.rows }

func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{r: ' '}
	}
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *Surface) MeasureText(str string) float64 {
	return float64(len([]rune(str)) * CellWidth)
}

// DrawDisc rasterises d as a shaded ring with a rim and an empty centre hole.
func (s *Surface) DrawDisc(d discfolio.Disc) {
	if d.Radius <= 0 {
		return
	}
	kind := cellDisc
	if d.Selected {
		kind = cellActive
	}
	fill := shades[min(len(shades)-1, int(d.Opacity*float64(len(shades))))]

	c0 := int(math.Floor((d.X - d.Radius) / CellWidth))
	c1 := int(math.Ceil((d.X + d.Radius) / CellWidth))
	r0 := int(math.Floor((d.Y - d.Radius) / CellHeight))
	r1 := int(math.Ceil((d.Y + d.Radius) / CellHeight))
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			x := (float64(col) + 0.5) * CellWidth
			y := (float64(row) + 0.5) * CellHeight
			dist := math.Hypot(x-d.X, y-d.Y) / d.Radius
			switch {
			case dist > 1:
				continue
			case dist < 0.18:
				s.set(col, row, cell{r: ' ', kind: kind})
			case dist > 1-float64(CellWidth)/d.Radius:
				rim := 'o'
				if d.Selected {
					rim = '●'
				}
				s.set(col, row, cell{r: rim, kind: kind})
			default:
				s.set(col, row, cell{r: fill, kind: kind})
			}
		}
	}
}

// DrawLabel writes the wrapped title, one line per row, right-aligned in the
// label box.
func (s *Surface) DrawLabel(l discfolio.Label) {
	right := int((l.Box.X + l.Box.W - l.PaddingX) / CellWidth)
	row := int(l.Box.Y / CellHeight)
	for i, line := range l.Lines {
		runes := []rune(line)
		start := right - len(runes)
		for j, r := range runes {
			s.set(start+j, row+i, cell{r: r, kind: cellLabel})
		}
	}
}

func (s *Surface) set(col, row int, c cell) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = c
}

// String returns the grid as plain text.
func (s *Surface) String() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			b.WriteRune(s.cells[row*s.cols+col].r)
		}
		if row < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render returns the grid styled with lipgloss, one style run at a time.
func (s *Surface) Render() string {
	lines := make([]string, s.rows)
	for row := 0; row < s.rows; row++ {
		var line, run strings.Builder
		kind := cellEmpty
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(styleFor(kind).Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			if c.kind != kind {
				flush()
				kind = c.kind
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellDisc:
		return DiscStyle
	case cellActive:
		return ActiveStyle
	case cellLabel:
		return LabelStyle
	default:
		return lipgloss.NewStyle()
	}
}
