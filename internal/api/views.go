package api

import (
	"fmt"

	"github.com/ncuwatch/taoyuanwx/internal/forecast"
	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// TableAlpha is the transparency suffix appended to table cell colors. The
// palette itself is opaque; translucency is purely presentational.
const TableAlpha = "80"

type VariableInfo struct {
	Key     string   `json:"key"`
	Element string   `json:"element"`
	Unit    string   `json:"unit"`
	Colors  []string `json:"colors"`
	SubKeys []string `json:"subKeys,omitempty"`
}

type TableView struct {
	Variable string   `json:"variable"`
	SubKey   string   `json:"subKey,omitempty"`
	Unit     string   `json:"unit"`
	Mode     string   `json:"mode"`
	Columns  []Column `json:"columns"`
	Rows     []Row    `json:"rows"`
}

type Column struct {
	Label  string `json:"label"`
	Date   string `json:"date"`
	Period string `json:"period,omitempty"`
	// NewDay marks the first column of each forecast date, for separator
	// styling.
	NewDay bool `json:"newDay"`
}

type Row struct {
	District string `json:"district"`
	Cells    []Cell `json:"cells"`
}

type Cell struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Valid bool   `json:"valid"`
}

type MapView struct {
	Variable  string         `json:"variable"`
	SubKey    string         `json:"subKey,omitempty"`
	Unit      string         `json:"unit"`
	Mode      string         `json:"mode"`
	Group     int            `json:"group"`
	Label     string         `json:"label"`
	Districts []DistrictFill `json:"districts"`
}

type DistrictFill struct {
	Name  string  `json:"name"`
	Text  string  `json:"text"`
	Num   float64 `json:"num"`
	Color string  `json:"color"`
	Valid bool    `json:"valid"`
}

// resolveMode forces the precipitation variable onto its frame-based grouping
// and validates the requested mode for everything else.
func resolveMode(variable string, mode string) (forecast.Mode, error) {
	if variable == forecast.VarQPF {
		return forecast.ModeQPF, nil
	}
	switch forecast.Mode(mode) {
	case "", forecast.ModeNone:
		return forecast.ModeNone, nil
	case forecast.Mode3Hours:
		return forecast.Mode3Hours, nil
	case forecast.Mode6Hours:
		return forecast.Mode6Hours, nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

// elementTimes returns the display timestamps of a representative district's
// element. All districts in a feed share the same time axis.
func elementTimes(ds *models.Dataset, element string) []string {
	for _, d := range ds.Districts {
		el := d.Elements[element]
		if el == nil || len(el.Times) == 0 {
			continue
		}
		times := make([]string, len(el.Times))
		for i, t := range el.Times {
			times[i] = t.Time()
		}
		return times
	}
	return nil
}

// SubKeys lists the sub-value keys of a representative district's element.
// Variables with a single sub-value report none.
func SubKeys(ds *models.Dataset, element string) []string {
	for _, d := range ds.Districts {
		el := d.Elements[element]
		if el == nil || len(el.Times) == 0 {
			continue
		}
		keys := el.Times[0].Values.Keys()
		if len(keys) <= 1 {
			return nil
		}
		return keys
	}
	return nil
}

// BuildTable assembles the full table view model for one variable.
func BuildTable(ds *models.Dataset, grouper *forecast.Grouper, variable, subKey, mode string) (*TableView, error) {
	spec, ok := forecast.Variables[variable]
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", variable)
	}
	m, err := resolveMode(variable, mode)
	if err != nil {
		return nil, err
	}

	times := elementTimes(ds, spec.Key)
	if len(times) == 0 {
		return nil, fmt.Errorf("no data for %q", variable)
	}
	groups := grouper.Groups(times, m, grouper.DetectInterval(times))

	view := &TableView{
		Variable: variable,
		SubKey:   subKey,
		Unit:     forecast.Unit(variable, subKey, ds.Meta),
		Mode:     string(m),
	}

	prevDate := ""
	for _, grp := range groups {
		view.Columns = append(view.Columns, Column{
			Label:  grp.Label,
			Date:   grp.DateKey,
			Period: grp.PeriodLabel,
			NewDay: grp.DateKey != prevDate,
		})
		prevDate = grp.DateKey
	}

	for _, d := range ds.Districts {
		row := Row{District: d.Name}
		el := d.Elements[spec.Key]
		for _, grp := range groups {
			res := forecast.Aggregate(el, grp.Indices, subKey)
			cell := Cell{Text: res.Str, Valid: res.Valid, Color: forecast.NoDataColor + TableAlpha}
			if res.Valid {
				cell.Color = forecast.ColorFor(res.Num, variable, subKey) + TableAlpha
			}
			row.Cells = append(row.Cells, cell)
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

// BuildMap assembles the choropleth view model for one variable and one
// group. group -1 selects the maximum across every group.
func BuildMap(ds *models.Dataset, grouper *forecast.Grouper, variable, subKey, mode string, group int) (*MapView, error) {
	spec, ok := forecast.Variables[variable]
	if !ok {
		return nil, fmt.Errorf("unknown variable %q", variable)
	}
	m, err := resolveMode(variable, mode)
	if err != nil {
		return nil, err
	}

	times := elementTimes(ds, spec.Key)
	if len(times) == 0 {
		return nil, fmt.Errorf("no data for %q", variable)
	}
	groups := grouper.Groups(times, m, grouper.DetectInterval(times))
	if len(groups) == 0 {
		return nil, fmt.Errorf("no display window data for %q", variable)
	}

	view := &MapView{
		Variable: variable,
		SubKey:   subKey,
		Unit:     forecast.Unit(variable, subKey, ds.Meta),
		Mode:     string(m),
		Group:    group,
	}

	var pick func(el *models.WeatherElement) forecast.AggregatedValue
	switch {
	case group == -1:
		view.Label = "最大值"
		pick = func(el *models.WeatherElement) forecast.AggregatedValue {
			return forecast.AggregateMax(el, groups, subKey)
		}
	case group >= 0 && group < len(groups):
		grp := groups[group]
		view.Label = grp.Label
		pick = func(el *models.WeatherElement) forecast.AggregatedValue {
			return forecast.Aggregate(el, grp.Indices, subKey)
		}
	default:
		return nil, fmt.Errorf("group %d out of range", group)
	}

	for _, d := range ds.Districts {
		res := pick(d.Elements[spec.Key])
		fill := DistrictFill{Name: d.Name, Text: res.Str, Num: res.Num, Valid: res.Valid, Color: forecast.NoDataColor}
		if res.Valid {
			fill.Color = forecast.ColorFor(res.Num, variable, subKey)
		}
		view.Districts = append(view.Districts, fill)
	}
	return view, nil
}

// BuildVariables lists every selectable variable with its palette, resolved
// unit and available sub-keys.
func BuildVariables(ds *models.Dataset) []VariableInfo {
	out := make([]VariableInfo, 0, len(forecast.VariableOrder))
	for _, key := range forecast.VariableOrder {
		spec := forecast.Variables[key]
		out = append(out, VariableInfo{
			Key:     key,
			Element: spec.Key,
			Unit:    forecast.Unit(key, "", ds.Meta),
			Colors:  spec.Colors,
			SubKeys: SubKeys(ds, spec.Key),
		})
	}
	return out
}
