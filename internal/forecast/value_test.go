package forecast

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		wantNum   float64
		wantStr   string
		wantValid bool
	}{
		{name: "nil", raw: nil, wantNum: 0, wantStr: "N/A", wantValid: false},
		{name: "float", raw: 25.5, wantNum: 25.5, wantStr: "25.5", wantValid: true},
		{name: "whole float", raw: 23.0, wantNum: 23, wantStr: "23", wantValid: true},
		{name: "int", raw: 30, wantNum: 30, wantStr: "30", wantValid: true},
		{name: "numeric string", raw: "26", wantNum: 26, wantStr: "26", wantValid: true},
		{name: "string with whitespace", raw: " 18.5 ", wantNum: 18.5, wantStr: "18.5", wantValid: true},
		{name: "trace sentinel", raw: "<=1", wantNum: 0, wantStr: "<=1", wantValid: true},
		{name: "trace sentinel with prefix", raw: " <=0.5", wantNum: 0, wantStr: "<=0.5", wantValid: true},
		{name: "numeric prefix", raw: "15m/s", wantNum: 15, wantStr: "15m/s", wantValid: true},
		{name: "negative", raw: "-3", wantNum: -3, wantStr: "-3", wantValid: true},
		{name: "second dot stops scan", raw: "3.5.2", wantNum: 3.5, wantStr: "3.5.2", wantValid: true},
		{name: "exponent", raw: "1e3", wantNum: 1000, wantStr: "1e3", wantValid: true},
		{name: "incomplete exponent", raw: "1e", wantNum: 1, wantStr: "1e", wantValid: true},
		{name: "bare dash", raw: "-", wantNum: 0, wantStr: "-", wantValid: false},
		{name: "non-numeric string", raw: "abc", wantNum: 0, wantStr: "abc", wantValid: false},
		{name: "empty string", raw: "", wantNum: 0, wantStr: "", wantValid: false},
		{name: "unsupported type", raw: true, wantNum: 0, wantStr: "N/A", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.raw)
			if got.Num != tt.wantNum {
				t.Errorf("Num = %v, want %v", got.Num, tt.wantNum)
			}
			if got.Str != tt.wantStr {
				t.Errorf("Str = %q, want %q", got.Str, tt.wantStr)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
		})
	}
}
