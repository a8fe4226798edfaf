package forecast

import (
	"strconv"
	"strings"
)

// ParsedValue is the normalized form of one raw observation value.
type ParsedValue struct {
	Num   float64
	Str   string
	Valid bool
}

// ParseValue normalizes a raw value of unknown shape (nil, numeric, or
// string) into a ParsedValue. It never fails: unparsable input yields
// Valid=false with the "N/A" display string.
//
// The "<=" sentinel (e.g. "<=1" for trace rainfall) is treated as numeric 0
// so it sits at the floor of any max comparison, while the display string is
// kept verbatim.
func ParseValue(raw any) ParsedValue {
	switch v := raw.(type) {
	case nil:
		return ParsedValue{Num: 0, Str: "N/A", Valid: false}
	case float64:
		return ParsedValue{Num: v, Str: strconv.FormatFloat(v, 'f', -1, 64), Valid: true}
	case float32:
		return ParseValue(float64(v))
	case int:
		return ParseValue(float64(v))
	case int64:
		return ParseValue(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if strings.Contains(s, "<=") {
			return ParsedValue{Num: 0, Str: s, Valid: true}
		}
		num, ok := leadingFloat(s)
		if !ok {
			return ParsedValue{Num: 0, Str: s, Valid: false}
		}
		return ParsedValue{Num: num, Str: s, Valid: true}
	default:
		return ParsedValue{Num: 0, Str: "N/A", Valid: false}
	}
}

// leadingFloat parses the longest numeric prefix of s: optional sign,
// digits, one decimal point, optional exponent. Returns ok=false when the
// prefix contains no digits.
func leadingFloat(s string) (float64, bool) {
	end := 0
	sawDigit := false
	sawDot := false

	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			sawDigit = true
			end++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			end++
			continue
		}
		break
	}
	if !sawDigit {
		return 0, false
	}

	// Optional exponent, only if it is complete.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expEnd := end + 1
		if expEnd < len(s) && (s[expEnd] == '+' || s[expEnd] == '-') {
			expEnd++
		}
		expDigits := false
		for expEnd < len(s) && s[expEnd] >= '0' && s[expEnd] <= '9' {
			expDigits = true
			expEnd++
		}
		if expDigits {
			end = expEnd
		}
	}

	num, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return num, true
}
