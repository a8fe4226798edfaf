package qpf

import (
	"image"
)

// rainColor binds one legal precipitation value to its exact palette RGB.
type rainColor struct {
	Val     float64
	R, G, B uint8
}

// rainColorTable is the QPF legend: the same palette the color mapper uses
// for the precipitation variable, keyed by exact pixel color. Pixels that
// match no entry count as no rain.
var rainColorTable = []rainColor{
	{0, 237, 249, 254},   // #EDF9FE
	{0.5, 194, 194, 194}, // #C2C2C2
	{1, 156, 252, 255},   // #9CFCFF
	{2, 3, 200, 255},     // #03C8FF
	{5, 5, 155, 255},     // #059BFF
	{10, 3, 99, 255},     // #0363FF
	{15, 5, 153, 2},      // #059902
	{20, 57, 255, 3},     // #39FF03
	{30, 255, 251, 3},    // #FFFB03
	{40, 255, 200, 0},    // #FFC800
	{50, 255, 149, 0},    // #FF9500
	{70, 255, 0, 0},      // #FF0000
	{90, 204, 0, 0},      // #CC0000
	{110, 153, 0, 0},     // #990000
	{130, 150, 0, 153},   // #960099
	{150, 201, 0, 204},   // #C900CC
	{200, 251, 0, 255},   // #FB00FF
	{300, 253, 201, 255}, // #FDC9FF
}

// matchRain looks up a pixel's exact RGB in the legend.
func matchRain(r, g, b uint8) float64 {
	for _, entry := range rainColorTable {
		if r == entry.R && g == entry.G && b == entry.B {
			return entry.Val
		}
	}
	return 0
}

// SampleDistrict returns the maximum precipitation value covered by the
// district's pixel-space rings in the cropped raster. The scan is bounded
// by the rings' integer bounding box, padded by one pixel and clamped to
// the raster, so a polygon entirely off-raster yields 0. A nil frame
// (failed fetch) also yields 0.
func SampleDistrict(rings [][]Pixel, img *image.RGBA) float64 {
	if img == nil || len(rings) == 0 {
		return 0
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	minX, maxX := w, 0
	minY, maxY := h, 0
	for _, ring := range rings {
		for _, p := range ring {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}

	minX = max(0, minX-1)
	maxX = min(w-1, maxX+1)
	minY = max(0, minY-1)
	maxY = min(h-1, maxY+1)

	maxRain := 0.0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			inside := false
			for _, ring := range rings {
				if pointInRing(x, y, ring) {
					inside = true
					break
				}
			}
			if !inside {
				continue
			}
			c := img.RGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			if val := matchRain(c.R, c.G, c.B); val > maxRain {
				maxRain = val
			}
		}
	}
	return maxRain
}

// pointInRing is the standard ray-casting test: a point is inside when a
// horizontal ray from it crosses an odd number of ring edges.
func pointInRing(x, y int, ring []Pixel) bool {
	inside := false
	fx, fy := float64(x), float64(y)
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := float64(ring[i].X), float64(ring[i].Y)
		xj, yj := float64(ring[j].X), float64(ring[j].Y)
		if (yi > fy) != (yj > fy) && fx < (xj-xi)*(fy-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
