package models

import (
	"time"
)

// District is one administrative district with its forecast elements and
// boundary rings. Elements are keyed by the upstream element name.
type District struct {
	Name     string
	Elements map[string]*WeatherElement
	Polygons []Ring
}

// Ring is a closed boundary ring of (longitude, latitude) pairs.
type Ring []Point

// Point is a geographic coordinate.
type Point struct {
	Lng float64
	Lat float64
}

// WeatherElement is the time series for one variable at one district.
type WeatherElement struct {
	Name  string
	Times []TimeStep
}

// TimeStep is a single forecast value bag at one timestamp. StartTime is
// preferred; some elements carry DataTime instead.
type TimeStep struct {
	StartTime string
	DataTime  string
	Values    ValueBag
}

// Time returns the timestamp string for the step, preferring StartTime.
func (t TimeStep) Time() string {
	if t.StartTime != "" {
		return t.StartTime
	}
	return t.DataTime
}

// ValueMeta is the per-sub-variable metadata from DatasetInfo.DataValueInfo.
type ValueMeta struct {
	Description string `json:"@description"`
	Unit        string `json:"@unit"`
}

// Dataset is a fully parsed forecast snapshot for all districts.
type Dataset struct {
	Districts []*District
	Meta      map[string]ValueMeta
	FetchedAt time.Time

	byName map[string]*District
}

// Index builds the name lookup. Call once after the district list is final.
func (d *Dataset) Index() {
	d.byName = make(map[string]*District, len(d.Districts))
	for _, loc := range d.Districts {
		d.byName[loc.Name] = loc
	}
}

// District returns the district with the given (already normalized) name.
func (d *Dataset) District(name string) *District {
	return d.byName[name]
}

// Element returns the named element of the named district, or nil.
func (d *Dataset) Element(district, element string) *WeatherElement {
	loc := d.District(district)
	if loc == nil {
		return nil
	}
	return loc.Elements[element]
}
