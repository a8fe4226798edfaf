package qpf

import (
	"math"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// Bounds is the geographic bounding box spanning every district polygon.
// The cropped raster is assumed to cover exactly this box.
type Bounds struct {
	MinLng, MaxLng float64
	MinLat, MaxLat float64
}

// Pixel is a point in raster coordinates.
type Pixel struct {
	X, Y int
}

// ComputeBounds scans all district rings for the combined bounding box.
// ok is false when no district has any geometry.
func ComputeBounds(districts []*models.District) (Bounds, bool) {
	b := Bounds{
		MinLng: math.Inf(1), MaxLng: math.Inf(-1),
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
	}
	found := false
	for _, d := range districts {
		for _, ring := range d.Polygons {
			for _, pt := range ring {
				if pt.Lng < b.MinLng {
					b.MinLng = pt.Lng
				}
				if pt.Lng > b.MaxLng {
					b.MaxLng = pt.Lng
				}
				if pt.Lat < b.MinLat {
					b.MinLat = pt.Lat
				}
				if pt.Lat > b.MaxLat {
					b.MaxLat = pt.Lat
				}
				found = true
			}
		}
	}
	return b, found
}

// ProjectRings linearly maps geographic rings onto a w×h raster. The Y axis
// is inverted: image rows grow downward while latitude grows northward.
func ProjectRings(rings []models.Ring, b Bounds, w, h int) [][]Pixel {
	lngRange := b.MaxLng - b.MinLng
	latRange := b.MaxLat - b.MinLat
	if lngRange <= 0 || latRange <= 0 {
		return nil
	}

	out := make([][]Pixel, 0, len(rings))
	for _, ring := range rings {
		px := make([]Pixel, 0, len(ring))
		for _, pt := range ring {
			px = append(px, Pixel{
				X: int(math.Floor((pt.Lng - b.MinLng) / lngRange * float64(w))),
				Y: int(math.Floor((b.MaxLat - pt.Lat) / latRange * float64(h))),
			})
		}
		out = append(out, px)
	}
	return out
}
