package forecast

import (
	"math"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// AggregatedValue is the representative value for one district over one
// group of timesteps.
type AggregatedValue struct {
	Num   float64
	Str   string
	Valid bool
}

// Aggregate reduces the group members to the maximum valid value. For each
// index the raw value is resolved from the timestep's value bag: the
// sub-variable key when given and present, otherwise the first value in the
// bag (a documented default for single-value bags). The winning member's
// display string is returned verbatim.
//
// Structural gaps never fail the call: out-of-range indices, missing bags
// and unparsable values are skipped. With no valid member the result is
// invalid with numeric 0.
func Aggregate(element *models.WeatherElement, indices []int, subKey string) AggregatedValue {
	if element == nil || len(indices) == 0 {
		return AggregatedValue{Num: 0, Str: "N/A", Valid: false}
	}

	maxVal := math.Inf(-1)
	maxStr := "N/A"
	found := false

	for _, idx := range indices {
		if idx < 0 || idx >= len(element.Times) {
			continue
		}
		step := element.Times[idx]
		if step.Values.Len() == 0 {
			continue
		}

		var raw any
		if subKey != "" {
			if v, ok := step.Values.Get(subKey); ok {
				raw = v
			}
		}
		if raw == nil {
			raw = step.Values.First()
		}

		parsed := ParseValue(raw)
		if !parsed.Valid {
			continue
		}
		if parsed.Num > maxVal {
			maxVal = parsed.Num
			maxStr = parsed.Str
		}
		found = true
	}

	if !found {
		return AggregatedValue{Num: 0, Str: "N/A", Valid: false}
	}
	return AggregatedValue{Num: maxVal, Str: maxStr, Valid: true}
}

// AggregateMax reduces a whole group list to the single maximum valid value
// across all groups, used for the "all periods" map view.
func AggregateMax(element *models.WeatherElement, groups []Group, subKey string) AggregatedValue {
	maxVal := math.Inf(-1)
	maxStr := "N/A"
	found := false

	for _, grp := range groups {
		res := Aggregate(element, grp.Indices, subKey)
		if res.Valid && res.Num > maxVal {
			maxVal = res.Num
			maxStr = res.Str
			found = true
		}
	}

	if !found {
		return AggregatedValue{Num: 0, Str: "N/A", Valid: false}
	}
	return AggregatedValue{Num: maxVal, Str: maxStr, Valid: true}
}
