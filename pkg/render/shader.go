package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLightnessDivisor maps an intensity of 1 to a lightness factor of 0.8.
const DefaultLightnessDivisor = 2.5

// LightnessFactor maps a light intensity in [-1, 1] to the factor applied to
// a color's HSL lightness: clamp((intensity+1)/divisor, 0, 1).
func LightnessFactor(intensity, divisor float64) float64 {
	return clamp01((intensity + 1) / divisor)
}

// Shade scales the HSL lightness of base by factor. Hue and saturation are
// kept; alpha is forced opaque.
func Shade(base color.Color, factor float64) color.RGBA {
	c, ok := colorful.MakeColor(base)
	if !ok {
		return color.RGBA{}
	}
	h, s, l := c.Hsl()
	r, g, b := colorful.Hsl(h, s, clamp01(l*factor)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// HueColor returns a fully saturated color of the given hue in [0, 1),
// wrapping around.
func HueColor(hue float64) color.RGBA {
	hue -= float64(int(hue))
	if hue < 0 {
		hue++
	}
	r, g, b := colorful.Hsv(hue*360, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
