package data

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters for weed fields.
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = int32(3)
)

// WeedField scatters weeds along a horizontal strip. Noise decides which
// slots get a weed and how tall it grows.
type WeedField struct {
	MinX      float64 `yaml:"min_x"`
	MaxX      float64 `yaml:"max_x"`
	Y         float64 `yaml:"y"` // ground level; weeds grow upward from here
	Spacing   float64 `yaml:"spacing"`
	Width     float64 `yaml:"width"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	Threshold float64 `yaml:"threshold"` // noise in [0,1] below this leaves a gap
	Scale     float64 `yaml:"scale"`
	Seed      int64   `yaml:"seed"`
}

func (f *WeedField) validate() error {
	if f.MaxX <= f.MinX {
		return fmt.Errorf("weed_field: max_x must exceed min_x")
	}
	if f.Spacing <= 0 || f.Width <= 0 {
		return fmt.Errorf("weed_field: spacing and width must be positive")
	}
	if f.MaxHeight < f.MinHeight || f.MinHeight <= 0 {
		return fmt.Errorf("weed_field: need 0 < min_height <= max_height")
	}
	return nil
}

// noise returns the field's noise at x, in [0,1].
func (f *WeedField) noise(p *perlin.Perlin, x float64) float64 {
	scale := f.Scale
	if scale == 0 {
		scale = 0.37
	}
	n := (p.Noise2D(x*scale, f.Y*scale) + 1) / 2
	return math.Max(0, math.Min(1, n))
}

// Weeds generates the weed recipes of the field. The result depends only
// on the field's parameters.
func (f *WeedField) Weeds(label string) []Recipe {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, f.Seed)
	var out []Recipe
	for x := f.MinX; x <= f.MaxX; x += f.Spacing {
		n := f.noise(p, x)
		if n < f.Threshold {
			continue
		}
		h := f.MinHeight + (f.MaxHeight-f.MinHeight)*n
		out = append(out, Recipe{
			Type:  RecipeWeed,
			Label: label,
			Pose:  PoseDef{X: x, Y: f.Y + h/2},
			Collider: ColliderDef{
				Shape:  "rect",
				Width:  f.Width,
				Height: h,
			},
		})
	}
	return out
}
