package render

import (
	"fmt"

	"github.com/daniel-roulin/trusk/pkg/math3d"
)

// Light is a single directional light. Direction points from the lit
// surface toward the light and is kept normalized.
type Light struct {
	Direction math3d.Vec4
}

// NewLight returns a light shining from direction (x, y, z).
func NewLight(x, y, z float64) (Light, error) {
	d, err := math3d.Dir(x, y, z).Normalize()
	if err != nil {
		return Light{}, fmt.Errorf("light direction: %w", err)
	}
	return Light{Direction: d}, nil
}

// DefaultLight returns the light used when none is configured: from the
// upper right, level with the horizon in Z.
func DefaultLight() Light {
	l, _ := NewLight(1, 2, 0)
	return l
}

// Intensity returns dot(direction, normal) for a unit face normal, in [-1, 1].
func (l Light) Intensity(normal math3d.Vec4) float64 {
	return l.Direction.Dot(normal)
}
