package discfolio

// Surface is the 2D drawing target a Renderer paints onto.
//
// Implementations own their pixels (or cells); the renderer only asks them to
// clear, draw discs and labels, and measure text for label wrapping. Drawing a
// disc must not depend on any previously drawn disc.
type Surface interface {
	// Clear wipes the surface at the start of a frame.
	Clear()
	// Size reports the drawable width and height in surface units.
	Size() (width, height float64)
	// DrawDisc paints one disc.
	DrawDisc(d Disc)
	// DrawLabel paints the selected disc's title box.
	DrawLabel(l Label)
	// MeasureText returns the rendered width of s.
	MeasureText(s string) float64
}
