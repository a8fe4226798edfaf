package forecast

import "testing"

func TestColorFor(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		variable string
		sub      string
		want     string
	}{
		{name: "temperature below all thresholds", val: -5, variable: VarTemperature, want: "#117388"},
		{name: "temperature at threshold goes to next bucket", val: 0, variable: VarTemperature, want: "#207E92"},
		{name: "temperature between top thresholds", val: 38.5, variable: VarTemperature, want: "#8520A0"},
		{name: "temperature clamps at top", val: 100, variable: VarTemperature, want: "#8520A0"},
		{name: "rain chance low", val: 5, variable: VarRainChance, want: "#FFFFFF"},
		{name: "rain chance at boundary", val: 10, variable: VarRainChance, want: "#E0F2F7"},
		{name: "rain chance full", val: 100, variable: VarRainChance, want: "#5C0A0A"},
		{name: "wind m/s thresholds", val: 5, variable: VarWindSpeed, want: "#F2DB79"},
		{name: "wind beaufort thresholds", val: 5, variable: VarWindSpeed, sub: SubBeaufort, want: "#80f9be"},
		{name: "wind unknown sub uses default thresholds", val: 5, variable: VarWindSpeed, sub: "Gust", want: "#F2DB79"},
		{name: "unknown variable", val: 20, variable: "能見度", want: NoDataColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFor(tt.val, tt.variable, tt.sub); got != tt.want {
				t.Errorf("ColorFor(%v, %s, %s) = %s, want %s", tt.val, tt.variable, tt.sub, got, tt.want)
			}
		})
	}
}

func TestColorForPrecipitation(t *testing.T) {
	tests := []struct {
		name string
		val  float64
		want string
	}{
		{name: "zero is always the first color", val: 0, want: "#EDF9FE"},
		{name: "exact bin takes the bin color", val: 2, want: "#03C8FF"},
		{name: "exact bin at ten", val: 10, want: "#0363FF"},
		{name: "exact top bin", val: 300, want: "#FDC9FF"},
		{name: "between bins falls back to bucket rule", val: 0.7, want: "#C2C2C2"},
		{name: "twelve lands in the fifteen bucket", val: 12, want: "#0363FF"},
		{name: "between high bins", val: 95, want: "#CC0000"},
		{name: "above all bins clamps", val: 350, want: "#FDC9FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFor(tt.val, VarQPF, ""); got != tt.want {
				t.Errorf("ColorFor(%v) = %s, want %s", tt.val, got, tt.want)
			}
		})
	}
}

func TestVariableTableShape(t *testing.T) {
	for _, key := range VariableOrder {
		spec, ok := Variables[key]
		if !ok {
			t.Fatalf("variable %s missing from table", key)
		}
		for i, thresholds := range spec.Thresholds {
			if spec.Discrete {
				continue
			}
			// The temperature palette has exactly one color per threshold
			// and clamps above; the rest carry one extra top color.
			n := len(spec.Colors)
			if n != len(thresholds) && n != len(thresholds)+1 {
				t.Errorf("%s thresholds[%d]: %d colors for %d thresholds", key, i, n, len(thresholds))
			}
		}
	}
}
