package render

import "image/color"

// Surface is the 2D raster target the pipeline draws into. Coordinates are
// pixels with (0, 0) at the top left corner.
type Surface interface {
	FillTriangle(x1, y1, x2, y2, x3, y3 float64, c color.Color)
	Size() (width, height int)
}

// Stroker is implemented by surfaces that can outline a triangle. It is
// used for the wireframe overlay.
type Stroker interface {
	StrokeTriangle(x1, y1, x2, y2, x3, y3 float64, c color.Color)
}

// Input is the read-only keyboard and mouse state a host may expose to
// camera controllers. The pipeline never reads it.
type Input interface {
	KeyPressed(key string) bool
	MousePosition() (x, y int)
}
