package forecast

import "github.com/ncuwatch/taoyuanwx/internal/models"

// unitSymbols maps upstream unit descriptions to display symbols.
var unitSymbols = map[string]string{
	"攝氏度":  "°C",
	"百分比":  "%",
	"公尺/秒": "m/s",
	"蒲福風級": "級",
}

// Unit resolves the display unit for a variable and active sub-variable:
// sub-variable metadata first, then the variable's static unit, then "".
func Unit(variable, subVariable string, meta map[string]models.ValueMeta) string {
	if subVariable != "" {
		if info, ok := meta[subVariable]; ok {
			u := info.Unit
			if u != "" && u != "NA" && u != "null" {
				if sym, ok := unitSymbols[u]; ok {
					return sym
				}
				return u
			}
		}
	}
	if spec, ok := Variables[variable]; ok && spec.Unit != "" {
		return spec.Unit
	}
	return ""
}
