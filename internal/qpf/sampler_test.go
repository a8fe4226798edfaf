package qpf

import (
	"image"
	"image/color"
	"testing"
)

// fill paints the whole raster with one color.
func fill(img *image.RGBA, c color.RGBA) {
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// square is a closed rectangular ring in pixel space.
func square(x0, y0, x1, y1 int) []Pixel {
	return []Pixel{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestSampleDistrict(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fill(img, color.RGBA{3, 200, 255, 255})           // 2mm everywhere
	img.SetRGBA(3, 3, color.RGBA{57, 255, 3, 255})    // one 20mm pixel inside
	img.SetRGBA(0, 0, color.RGBA{253, 201, 255, 255}) // 300mm pixel outside the ring

	rings := [][]Pixel{square(1, 1, 8, 8)}
	if got := SampleDistrict(rings, img); got != 20 {
		t.Errorf("SampleDistrict = %v, want 20", got)
	}
}

func TestSampleDistrictNoLegendMatch(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fill(img, color.RGBA{10, 10, 10, 255})

	if got := SampleDistrict([][]Pixel{square(1, 1, 8, 8)}, img); got != 0 {
		t.Errorf("SampleDistrict = %v, want 0 for unmatched colors", got)
	}
}

func TestSampleDistrictOffRaster(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fill(img, color.RGBA{253, 201, 255, 255})

	if got := SampleDistrict([][]Pixel{square(20, 20, 30, 30)}, img); got != 0 {
		t.Errorf("SampleDistrict = %v, want 0 for off-raster polygon", got)
	}
}

func TestSampleDistrictNilFrame(t *testing.T) {
	if got := SampleDistrict([][]Pixel{square(1, 1, 8, 8)}, nil); got != 0 {
		t.Errorf("SampleDistrict = %v, want 0 for nil frame", got)
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if got := SampleDistrict(nil, img); got != 0 {
		t.Errorf("SampleDistrict = %v, want 0 without rings", got)
	}
}

func TestMatchRain(t *testing.T) {
	if got := matchRain(237, 249, 254); got != 0 {
		t.Errorf("legend zero color = %v, want 0", got)
	}
	if got := matchRain(255, 0, 0); got != 70 {
		t.Errorf("legend 70mm color = %v, want 70", got)
	}
	if got := matchRain(1, 2, 3); got != 0 {
		t.Errorf("unknown color = %v, want 0", got)
	}
}
