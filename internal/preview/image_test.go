package preview

import (
	"bytes"
	"image/png"
	"testing"

	"terrascape/internal/heightfield"
)

func testGenerator() *heightfield.Generator {
	p := heightfield.DefaultParams()
	p.WarpStrength = 0
	return heightfield.New(p)
}

func TestHeightImageEncodes(t *testing.T) {
	img, err := HeightImage(testGenerator(), 64)
	if err != nil {
		t.Fatalf("render height image: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected image bounds: %v", img.Bounds())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("empty png output")
	}
}

func TestHeightImageSeparatesWaterFromLand(t *testing.T) {
	gen := testGenerator()
	img, err := HeightImage(gen, 64)
	if err != nil {
		t.Fatalf("render height image: %v", err)
	}

	sea := gen.SeaHeight()
	var waterPx, landPx *[2]int
	for py := 0; py < 64 && (waterPx == nil || landPx == nil); py++ {
		for px := 0; px < 64; px++ {
			u := float64(px) / 63
			v := float64(py) / 63
			if gen.Height(u, v) <= sea {
				if waterPx == nil {
					waterPx = &[2]int{px, py}
				}
			} else if landPx == nil {
				landPx = &[2]int{px, py}
			}
		}
	}
	if waterPx == nil || landPx == nil {
		t.Fatalf("default island should show both water and land")
	}
	if img.RGBAAt(waterPx[0], waterPx[1]) == img.RGBAAt(landPx[0], landPx[1]) {
		t.Fatalf("water and land render identically")
	}
}

func TestBiomeImageShowsGrassOnGentleHighland(t *testing.T) {
	p := heightfield.DefaultParams()
	p.WarpStrength = 0
	p.HeightScale = 0.2
	p.OceanBias = -1 // lifts the whole field well above sea level
	gen := heightfield.New(p)

	img := BiomeImage(gen, 32)
	c := img.RGBAAt(16, 16)
	if c.G <= c.R {
		t.Fatalf("gentle highland should render green, got %v", c)
	}
}

func TestImagesClampTinySizes(t *testing.T) {
	img, err := HeightImage(testGenerator(), 1)
	if err != nil {
		t.Fatalf("render height image: %v", err)
	}
	if img.Bounds().Dx() != minImageSize {
		t.Fatalf("expected clamped size %d, got %d", minImageSize, img.Bounds().Dx())
	}
}
