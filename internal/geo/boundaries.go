package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// nameMapping translates pre-2014 township names in the boundary file to the
// current district names used by the forecast feed.
var nameMapping = map[string]string{
	"桃園市": "桃園區",
	"中壢市": "中壢區",
	"平鎮市": "平鎮區",
	"八德市": "八德區",
	"楊梅市": "楊梅區",
	"大溪鎮": "大溪區",
	"蘆竹鄉": "蘆竹區",
	"大園鄉": "大園區",
	"龜山鄉": "龜山區",
	"龍潭鄉": "龍潭區",
	"新屋鄉": "新屋區",
	"觀音鄉": "觀音區",
	"復興鄉": "復興區",
}

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties struct {
		County string `json:"county"`
		Town   string `json:"town"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// LoadBoundaries reads a township boundary GeoJSON file and returns the outer
// polygon rings for every district in the given county, keyed by current
// district name.
func LoadBoundaries(path, county string) (map[string][]models.Ring, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBoundaries(b, county)
}

func ParseBoundaries(data []byte, county string) (map[string][]models.Ring, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	out := make(map[string][]models.Ring)
	for _, f := range fc.Features {
		if !strings.Contains(f.Properties.County, county) {
			continue
		}
		name := f.Properties.Town
		if mapped, ok := nameMapping[name]; ok {
			name = mapped
		}

		rings, err := outerRings(f.Geometry.Type, f.Geometry.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = append(out[name], rings...)
	}
	return out, nil
}

// outerRings extracts the first ring of each polygon. Hole rings are ignored
// since the rasters have no data inside district interiors worth excluding.
func outerRings(geomType string, coords json.RawMessage) ([]models.Ring, error) {
	var polys [][][][]float64
	switch geomType {
	case "Polygon":
		var p [][][]float64
		if err := json.Unmarshal(coords, &p); err != nil {
			return nil, err
		}
		polys = [][][][]float64{p}
	case "MultiPolygon":
		if err := json.Unmarshal(coords, &polys); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geomType)
	}

	var rings []models.Ring
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		ring := make(models.Ring, 0, len(poly[0]))
		for _, pt := range poly[0] {
			if len(pt) < 2 {
				continue
			}
			ring = append(ring, models.Point{Lng: pt[0], Lat: pt[1]})
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings, nil
}
