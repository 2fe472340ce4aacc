package render

import (
	"image"
	"image/color"
	"math"
)

// Framebuffer is an in-memory RGBA surface. It implements Surface and
// Stroker. For terminal output the height is twice the number of rows,
// since each cell shows two pixels as a half block (▀).
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
}

var (
	_ Surface = (*Framebuffer)(nil)
	_ Stroker = (*Framebuffer)(nil)
)

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// copy-doubling
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// edgeCoeffs returns A, B, C such that A*x + B*y + C is the signed doubled
// area of (x0,y0), (x1,y1), (x,y). Zero means the point is on the edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// FillTriangle fills the triangle whose pixel centers lie inside it.
// Either winding is accepted; zero-area triangles draw nothing.
func (fb *Framebuffer) FillTriangle(x1, y1, x2, y2, x3, y3 float64, c color.Color) {
	col := color.RGBAModel.Convert(c).(color.RGBA)

	area := (x2-x1)*(y3-y1) - (y2-y1)*(x3-x1)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		// make the edge functions positive inside
		x2, y2, x3, y3 = x3, y3, x2, y2
	}

	minX := int(math.Max(0, math.Floor(min(x1, x2, x3))))
	maxX := int(math.Min(float64(fb.Width-1), math.Ceil(max(x1, x2, x3))))
	minY := int(math.Max(0, math.Floor(min(y1, y2, y3))))
	maxY := int(math.Min(float64(fb.Height-1), math.Ceil(max(y1, y2, y3))))
	if minX > maxX || minY > maxY {
		return
	}

	a0, b0, c0 := edgeCoeffs(x2, y2, x3, y3)
	a1, b1, c1 := edgeCoeffs(x3, y3, x1, y1)
	a2, b2, c2 := edgeCoeffs(x1, y1, x2, y2)

	startX := float64(minX) + 0.5
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		w0 := a0*startX + b0*py + c0
		w1 := a1*startX + b1*py + c1
		w2 := a2*startX + b2*py + c2

		row := fb.Pixels[y*fb.Width:]
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = col
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
	}
}

// StrokeTriangle draws the three edges of a triangle.
func (fb *Framebuffer) StrokeTriangle(x1, y1, x2, y2, x3, y3 float64, c color.Color) {
	col := color.RGBAModel.Convert(c).(color.RGBA)
	ix1, iy1 := int(math.Floor(x1)), int(math.Floor(y1))
	ix2, iy2 := int(math.Floor(x2)), int(math.Floor(y2))
	ix3, iy3 := int(math.Floor(x3)), int(math.Floor(y3))
	fb.DrawLine(ix1, iy1, ix2, iy2, col)
	fb.DrawLine(ix2, iy2, ix3, iy3, col)
	fb.DrawLine(ix3, iy3, ix1, iy1, col)
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyTo(img)
	return img
}

// CopyTo writes the pixels into img, which must have the framebuffer's
// size.
func (fb *Framebuffer) CopyTo(img *image.RGBA) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
}
