// Package preview renders top-down diagnostic images of a generated scene
// and serves them over HTTP. It reads finished data only; regeneration
// stays with the caller.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mazznoer/colorgrad"

	"terrascape/internal/forest"
	"terrascape/internal/heightfield"
)

const minImageSize = 16

var (
	deepWater    = color.RGBA{5, 25, 64, 255}
	shallowWater = color.RGBA{25, 90, 140, 255}
	rockGray     = color.RGBA{115, 115, 115, 255}
	grassGreen   = color.RGBA{60, 140, 70, 255}
)

func landGradient() (colorgrad.Gradient, error) {
	return colorgrad.NewGradient().
		Colors(
			color.RGBA{34, 85, 48, 255},
			color.RGBA{96, 128, 56, 255},
			color.RGBA{148, 124, 86, 255},
			color.RGBA{200, 200, 200, 255},
			color.RGBA{255, 255, 255, 255},
		).
		Build()
}

// HeightImage renders the height field from above. Water gets a depth ramp,
// land runs through an elevation gradient.
func HeightImage(gen *heightfield.Generator, size int) (*image.RGBA, error) {
	if size < minImageSize {
		size = minImageSize
	}
	grad, err := landGradient()
	if err != nil {
		return nil, fmt.Errorf("build land gradient: %w", err)
	}

	sea := gen.SeaHeight()
	scale := math.Max(gen.Params().HeightScale, 1e-6)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			u := float64(px) / float64(size-1)
			v := float64(py) / float64(size-1)
			h := gen.Height(u, v)
			if h <= sea {
				depth := clamp01((sea - h) / scale)
				img.SetRGBA(px, py, lerpRGBA(shallowWater, deepWater, depth))
			} else {
				t := clamp01((h - sea) / (2 * scale))
				img.Set(px, py, grad.At(t))
			}
		}
	}
	return img, nil
}

// BiomeImage colors land by the shared grass weight, so the placement rules
// can be eyeballed against the terrain shading.
func BiomeImage(gen *heightfield.Generator, size int) *image.RGBA {
	if size < minImageSize {
		size = minImageSize
	}

	sea := gen.SeaHeight()
	seaLevel := gen.Params().SeaLevel
	scale := math.Max(gen.Params().HeightScale, 1e-6)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			u := float64(px) / float64(size-1)
			v := float64(py) / float64(size-1)
			if gen.Height(u, v) <= sea {
				img.SetRGBA(px, py, shallowWater)
				continue
			}
			hNorm := clamp01((gen.SurfaceHeight(u, v) - seaLevel) / scale)
			slope := forest.SurfaceSlope(gen, u, v)
			w := heightfield.GrassWeight(hNorm, slope)
			img.SetRGBA(px, py, lerpRGBA(rockGray, grassGreen, w))
		}
	}
	return img
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mixc := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mixc(a.R, b.R), mixc(a.G, b.G), mixc(a.B, b.B), 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
