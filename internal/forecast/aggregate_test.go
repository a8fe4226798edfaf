package forecast

import (
	"testing"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

func element(values ...models.ValueBag) *models.WeatherElement {
	el := &models.WeatherElement{Name: "test"}
	for _, v := range values {
		el.Times = append(el.Times, models.TimeStep{Values: v})
	}
	return el
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		element   *models.WeatherElement
		indices   []int
		subKey    string
		wantNum   float64
		wantStr   string
		wantValid bool
	}{
		{
			name: "max of valid values",
			element: element(
				models.NewValueBag("Temperature", "22"),
				models.NewValueBag("Temperature", "28"),
				models.NewValueBag("Temperature", "25"),
			),
			indices: []int{0, 1, 2},
			wantNum: 28, wantStr: "28", wantValid: true,
		},
		{
			name: "winner keeps its display string",
			element: element(
				models.NewValueBag("WindSpeed", "3"),
				models.NewValueBag("WindSpeed", "10以上"),
			),
			indices: []int{0, 1},
			wantNum: 10, wantStr: "10以上", wantValid: true,
		},
		{
			name: "trace sentinel counts as zero",
			element: element(
				models.NewValueBag("Precipitation", "<=1"),
				models.NewValueBag("Precipitation", "3"),
			),
			indices: []int{0, 1},
			wantNum: 3, wantStr: "3", wantValid: true,
		},
		{
			name: "trace sentinel alone stays valid",
			element: element(
				models.NewValueBag("Precipitation", "<=1"),
			),
			indices: []int{0},
			wantNum: 0, wantStr: "<=1", wantValid: true,
		},
		{
			name: "tie keeps the first member",
			element: element(
				models.NewValueBag("Temperature", "25first"),
				models.NewValueBag("Temperature", "25second"),
			),
			indices: []int{0, 1},
			wantNum: 25, wantStr: "25first", wantValid: true,
		},
		{
			name: "sub key selects the value",
			element: element(
				models.NewValueBag("WindSpeed", "4", "BeaufortScale", "3"),
				models.NewValueBag("WindSpeed", "6", "BeaufortScale", "5"),
			),
			indices: []int{0, 1},
			subKey:  "BeaufortScale",
			wantNum: 5, wantStr: "5", wantValid: true,
		},
		{
			name: "missing sub key falls back to first value",
			element: element(
				models.NewValueBag("WindSpeed", "7"),
			),
			indices: []int{0},
			subKey:  "BeaufortScale",
			wantNum: 7, wantStr: "7", wantValid: true,
		},
		{
			name: "invalid members are skipped",
			element: element(
				models.NewValueBag("Temperature", nil),
				models.NewValueBag("Temperature", "19"),
				models.NewValueBag("Temperature", "-"),
			),
			indices: []int{0, 1, 2},
			wantNum: 19, wantStr: "19", wantValid: true,
		},
		{
			name: "out of range indices are skipped",
			element: element(
				models.NewValueBag("Temperature", "21"),
			),
			indices: []int{-1, 0, 5},
			wantNum: 21, wantStr: "21", wantValid: true,
		},
		{
			name: "no valid members",
			element: element(
				models.NewValueBag("Temperature", nil),
				models.NewValueBag("Temperature", "x"),
			),
			indices: []int{0, 1},
			wantNum: 0, wantStr: "N/A", wantValid: false,
		},
		{
			name:    "empty indices",
			element: element(models.NewValueBag("Temperature", "21")),
			indices: nil,
			wantNum: 0, wantStr: "N/A", wantValid: false,
		},
		{
			name:    "nil element",
			element: nil,
			indices: []int{0},
			wantNum: 0, wantStr: "N/A", wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.element, tt.indices, tt.subKey)
			if got.Num != tt.wantNum || got.Str != tt.wantStr || got.Valid != tt.wantValid {
				t.Errorf("Aggregate() = {%v %q %v}, want {%v %q %v}",
					got.Num, got.Str, got.Valid, tt.wantNum, tt.wantStr, tt.wantValid)
			}
		})
	}
}

func TestAggregateMax(t *testing.T) {
	el := element(
		models.NewValueBag("Temperature", "22"),
		models.NewValueBag("Temperature", "31"),
		models.NewValueBag("Temperature", "27"),
		models.NewValueBag("Temperature", nil),
	)
	groups := []Group{
		{Indices: []int{0, 1}},
		{Indices: []int{2, 3}},
	}

	got := AggregateMax(el, groups, "")
	if !got.Valid || got.Num != 31 || got.Str != "31" {
		t.Errorf("AggregateMax() = {%v %q %v}, want {31 \"31\" true}", got.Num, got.Str, got.Valid)
	}

	empty := AggregateMax(el, nil, "")
	if empty.Valid {
		t.Errorf("AggregateMax with no groups should be invalid, got %+v", empty)
	}
}
