package forecast

// Mode selects how timestamps are grouped for display.
type Mode string

const (
	// ModeNone shows every timestamp as its own column.
	ModeNone Mode = "none"
	// Mode3Hours groups into eight fixed 3-hour periods per forecast day.
	Mode3Hours Mode = "3hours"
	// Mode6Hours groups into four fixed 6-hour periods per forecast day.
	Mode6Hours Mode = "6hours"
	// ModeQPF is the synthetic mode for the precipitation raster frames.
	ModeQPF Mode = "QPF"
)

// Period is one classified bucket for a timestamp's hour of day.
//
// The forecast day runs from local noon to the next day's noon, so periods
// in the hours before noon belong to the previous calendar day's grouping:
// DayOffset is -1 for those and 0 otherwise.
type Period struct {
	Label     string
	DayOffset int
}

// ClassifyPeriod maps an hour of day (0-23) to its period for the given
// mode. ok is false for modes without fixed periods (none/QPF); the hour
// ranges themselves are exhaustive for 0-23.
func ClassifyPeriod(hour int, mode Mode) (Period, bool) {
	switch mode {
	case Mode6Hours:
		switch {
		case hour >= 12 && hour < 18:
			return Period{Label: "12-18"}, true
		case hour >= 18:
			return Period{Label: "18-00"}, true
		case hour < 6:
			return Period{Label: "00-06", DayOffset: -1}, true
		default: // 6 <= hour < 12
			return Period{Label: "06-12", DayOffset: -1}, true
		}
	case Mode3Hours:
		switch {
		case hour >= 12 && hour < 15:
			return Period{Label: "12-15"}, true
		case hour >= 15 && hour < 18:
			return Period{Label: "15-18"}, true
		case hour >= 18 && hour < 21:
			return Period{Label: "18-21"}, true
		case hour >= 21:
			return Period{Label: "21-00"}, true
		case hour < 3:
			return Period{Label: "00-03", DayOffset: -1}, true
		case hour < 6:
			return Period{Label: "03-06", DayOffset: -1}, true
		case hour < 9:
			return Period{Label: "06-09", DayOffset: -1}, true
		default: // 9 <= hour < 12
			return Period{Label: "09-12", DayOffset: -1}, true
		}
	default:
		return Period{}, false
	}
}
