package forecast

// NoDataColor is the neutral fill for unknown variables and invalid values.
const NoDataColor = "#cccccc"

// Variable identifiers as they appear in the menu and in lookups. These are
// fixed-locale display strings, matching the upstream dataset's language.
const (
	VarTemperature = "溫度"
	VarRainChance  = "降雨機率"
	VarHumidity    = "相對濕度"
	VarWindSpeed   = "風速"
	VarQPF         = "定量降水預報"
	ElementQPF     = "QPF"
	SubBeaufort    = "BeaufortScale"
)

// VariableSpec is the static configuration for one display variable.
type VariableSpec struct {
	// Key is the element name looked up in the raw data.
	Key string
	// Unit is a static unit override for variables without metadata.
	Unit string
	// Colors is the ordered palette.
	Colors []string
	// Thresholds holds one or more ascending boundary arrays. The first is
	// the default; Alternates selects another by sub-variable.
	Thresholds [][]float64
	// Alternates maps a sub-variable key to a Thresholds index, for
	// variables whose bucket boundaries depend on the displayed unit.
	Alternates map[string]int
	// Discrete marks the precipitation scheme: thresholds are authored as
	// exact legal bins rather than strictly-less-than boundaries.
	Discrete bool
}

// VariableOrder lists the variables in menu order.
var VariableOrder = []string{VarTemperature, VarRainChance, VarHumidity, VarWindSpeed, VarQPF}

// Variables is the per-variable threshold and palette table.
var Variables = map[string]VariableSpec{
	VarTemperature: {
		Key: "溫度",
		Colors: []string{
			"#117388", "#207E92", "#2E899C", "#3D93A6", "#4C9EB0", "#5BA9BA", "#69B4C4", "#78BFCE",
			"#87CAD8", "#96D4E2", "#A4DFEC", "#B3EAF6", "#0C924B", "#1D9A51", "#2FA257", "#40A95E",
			"#51B164", "#62B96A", "#74C170", "#85C876", "#96D07C", "#A7D883", "#B9E089", "#CAE78F",
			"#DBEF95", "#F4F4C3", "#F7E78A", "#F4D576", "#F1C362", "#EEB14E", "#EA9E3A", "#E78C26",
			"#E07B03", "#ED5138", "#ED1759", "#AD053A", "#780101", "#9C68AD", "#845194", "#8520A0",
		},
		Thresholds: [][]float64{{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
			20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39,
		}},
	},
	VarRainChance: {
		Key: "3小時降雨機率",
		Colors: []string{
			"#FFFFFF", "#E0F2F7", "#B3D9E8", "#7FB3D5", "#4A90C2", "#2E5C8A",
			"#FF9500", "#FF6B35", "#E63946", "#A4161A", "#5C0A0A",
		},
		Thresholds: [][]float64{{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
	},
	VarHumidity: {
		Key: "相對濕度",
		Colors: []string{
			"#D3E6EB", "#A7CFD8", "#82F550", "#4ADC0C", "#93F4FF", "#2DEAFF", "#02D4E3",
		},
		Thresholds: [][]float64{{65, 70, 75, 80, 85, 90}},
	},
	VarWindSpeed: {
		Key: "風速",
		Colors: []string{
			"#FFFFFF", "#b0fff2", "#80f9be", "#50fcaf", "#FFFEA5", "#F2DB79",
			"#E6B167", "#EA83ED", "#B940BD", "#6942AE", "#272F6E",
		},
		Thresholds: [][]float64{
			{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},      // m/s
			{2, 4, 6, 8, 10, 12, 14, 15, 16, 17}, // Beaufort
		},
		Alternates: map[string]int{SubBeaufort: 1},
	},
	VarQPF: {
		Key:  ElementQPF,
		Unit: "mm",
		Colors: []string{
			"#EDF9FE", "#C2C2C2", "#9CFCFF", "#03C8FF", "#059BFF", "#0363FF",
			"#059902", "#39FF03", "#FFFB03", "#FFC800", "#FF9500", "#FF0000",
			"#CC0000", "#990000", "#960099", "#C900CC", "#FB00FF", "#FDC9FF",
		},
		Thresholds: [][]float64{{0.5, 1, 2, 5, 10, 15, 20, 30, 40, 50, 70, 90, 110, 130, 150, 200, 300}},
		Discrete:   true,
	},
}

// ColorFor maps a numeric value to its discrete bucket color for the given
// variable. Unknown variables get the neutral no-data color; an out-of-range
// bucket clamps to the last color. The returned color carries no
// transparency — alpha is the caller's presentation concern.
func ColorFor(val float64, variable, subVariable string) string {
	spec, ok := Variables[variable]
	if !ok {
		return NoDataColor
	}

	if spec.Discrete {
		return discreteColor(val, spec)
	}

	thresholds := spec.Thresholds[0]
	if altIdx, ok := spec.Alternates[subVariable]; ok && altIdx < len(spec.Thresholds) {
		thresholds = spec.Thresholds[altIdx]
	}

	idx := bucketIndex(val, thresholds)
	if idx >= len(spec.Colors) {
		idx = len(spec.Colors) - 1
	}
	return spec.Colors[idx]
}

// discreteColor implements the precipitation dual rule: zero is always the
// first color, a value exactly on a bin boundary takes that bin's color,
// and anything between bins (raster-derived values) falls back to the
// general strictly-less-than rule.
func discreteColor(val float64, spec VariableSpec) string {
	if val == 0 {
		return spec.Colors[0]
	}

	thresholds := spec.Thresholds[0]
	for i, t := range thresholds {
		if val == t {
			if i+1 >= len(spec.Colors) {
				return spec.Colors[len(spec.Colors)-1]
			}
			return spec.Colors[i+1]
		}
	}

	idx := bucketIndex(val, thresholds)
	if idx >= len(spec.Colors) {
		idx = len(spec.Colors) - 1
	}
	return spec.Colors[idx]
}

// bucketIndex returns the index of the first threshold strictly greater
// than val, or len(thresholds) when val is on or above them all.
func bucketIndex(val float64, thresholds []float64) int {
	for i, t := range thresholds {
		if val < t {
			return i
		}
	}
	return len(thresholds)
}
