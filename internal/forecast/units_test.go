package forecast

import (
	"testing"

	"github.com/ncuwatch/taoyuanwx/internal/models"
)

func TestUnit(t *testing.T) {
	meta := map[string]models.ValueMeta{
		"Temperature":   {Unit: "攝氏度"},
		"WindSpeed":     {Unit: "公尺/秒"},
		"BeaufortScale": {Unit: "蒲福風級"},
		"Custom":        {Unit: "hPa"},
		"Missing":       {Unit: "NA"},
	}

	tests := []struct {
		name     string
		variable string
		sub      string
		want     string
	}{
		{name: "metadata unit mapped to symbol", variable: VarTemperature, sub: "Temperature", want: "°C"},
		{name: "beaufort symbol", variable: VarWindSpeed, sub: "BeaufortScale", want: "級"},
		{name: "unmapped metadata unit verbatim", variable: VarTemperature, sub: "Custom", want: "hPa"},
		{name: "NA placeholder falls through", variable: VarQPF, sub: "Missing", want: "mm"},
		{name: "static unit without sub", variable: VarQPF, want: "mm"},
		{name: "no unit anywhere", variable: VarTemperature, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unit(tt.variable, tt.sub, meta); got != tt.want {
				t.Errorf("Unit(%s, %s) = %q, want %q", tt.variable, tt.sub, got, tt.want)
			}
		})
	}
}
