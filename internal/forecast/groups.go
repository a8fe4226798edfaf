package forecast

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// qpfDateKey is the header label for the synthetic QPF frame groups.
const qpfDateKey = "未來預報"

// Group is an ordered set of timestep indices displayed as one column.
type Group struct {
	// Indices are positions into the element's timestep list.
	Indices []int
	// Label is the full display label ("MM/DD HH:00" or "date\nperiod").
	Label string
	// DateKey is the logical forecast date ("YYYY/MM/DD"), used for header
	// merging and day-boundary styling.
	DateKey string
	// PeriodLabel is the period part ("12-15"), empty in none mode.
	PeriodLabel string
	// Timestamp orders groups and drives the display-window filter. For
	// period groups it is the earliest member's time.
	Timestamp time.Time
}

// Grouper partitions timestamp lists into display groups. Results are
// memoized per (mode, interval, length, first timestamp); the cache is
// append-only and a new variable or mode selection naturally changes the
// key, so entries are never evicted.
type Grouper struct {
	loc *time.Location

	mu    sync.Mutex
	cache map[string][]Group
}

// NewGrouper returns a Grouper that evaluates calendar rules in loc.
func NewGrouper(loc *time.Location) *Grouper {
	if loc == nil {
		loc = time.Local
	}
	return &Grouper{loc: loc, cache: make(map[string][]Group)}
}

// Groups partitions times according to mode and returns the groups in
// ascending time order, filtered to the active noon-to-noon display window
// (QPF frames are relative forecast offsets and always pass).
//
// interval is the sampling interval hint in hours (1 or 3). With
// classification-based membership it does not change which indices land in
// a period when the series' native sampling matches the period granularity;
// it participates in the memo key so the hint can be supplied per element.
func (g *Grouper) Groups(times []string, mode Mode, interval int) []Group {
	first := ""
	if len(times) > 0 {
		first = times[0]
	}
	key := fmt.Sprintf("%s-%d-%d-%s", mode, interval, len(times), first)

	g.mu.Lock()
	cached, ok := g.cache[key]
	g.mu.Unlock()
	if ok {
		return cached
	}

	var groups []Group
	switch mode {
	case ModeQPF:
		groups = g.qpfGroups(times)
	case ModeNone:
		groups = g.filterWindow(g.singleGroups(times))
	default:
		groups = g.filterWindow(g.periodGroups(times, mode))
	}

	g.mu.Lock()
	g.cache[key] = groups
	g.mu.Unlock()
	return groups
}

// qpfGroups builds one group per raster frame. Labels are relative forecast
// offsets (frame i covers hours i*6 to i*6+6), not wall-clock time.
func (g *Grouper) qpfGroups(times []string) []Group {
	now := clock.Now()
	groups := make([]Group, 0, len(times))
	for i := range times {
		label := fmt.Sprintf("%d-%dhr", i*6, (i+1)*6)
		groups = append(groups, Group{
			Indices:     []int{i},
			Label:       label,
			PeriodLabel: label,
			DateKey:     qpfDateKey,
			Timestamp:   now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return groups
}

// singleGroups builds one group per timestamp. Unparsable timestamps are
// dropped rather than failing the whole list.
func (g *Grouper) singleGroups(times []string) []Group {
	groups := make([]Group, 0, len(times))
	for i, raw := range times {
		t, err := parseTime(raw, g.loc)
		if err != nil {
			continue
		}
		local := t.In(g.loc)
		groups = append(groups, Group{
			Indices:   []int{i},
			Label:     local.Format("01/02 15:00"),
			DateKey:   local.Format("2006/01/02"),
			Timestamp: t,
		})
	}
	return groups
}

// periodGroups buckets timestamps by (logical date, period). The logical
// date applies the classifier's pre-noon offset so the forecast day runs
// noon to noon.
func (g *Grouper) periodGroups(times []string, mode Mode) []Group {
	buckets := make(map[string]*Group)

	for i, raw := range times {
		t, err := parseTime(raw, g.loc)
		if err != nil {
			continue
		}
		local := t.In(g.loc)

		period, ok := ClassifyPeriod(local.Hour(), mode)
		if !ok {
			continue
		}

		logical := local.AddDate(0, 0, period.DayOffset)
		dateKey := logical.Format("2006/01/02")
		key := dateKey + "|" + period.Label

		bucket, exists := buckets[key]
		if !exists {
			bucket = &Group{
				Label:       dateKey + "\n" + period.Label,
				DateKey:     dateKey,
				PeriodLabel: period.Label,
				Timestamp:   t, // first member's time is the sort key
			}
			buckets[key] = bucket
		}
		bucket.Indices = append(bucket.Indices, i)
	}

	groups := make([]Group, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, *b)
	}
	sortGroups(groups)
	return groups
}

// filterWindow keeps groups inside [today 12:00, tomorrow 12:00) local
// time. The interval is half-open: a group exactly at today's noon stays,
// one at tomorrow's noon is dropped.
func (g *Grouper) filterWindow(groups []Group) []Group {
	now := clock.Now().In(g.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, g.loc)
	end := start.AddDate(0, 0, 1)

	kept := groups[:0:0]
	for _, grp := range groups {
		if !grp.Timestamp.Before(start) && grp.Timestamp.Before(end) {
			kept = append(kept, grp)
		}
	}
	sortGroups(kept)
	return kept
}

// sortGroups orders ascending by timestamp with a deterministic tie-break
// so regrouping the same input is structurally identical.
func sortGroups(groups []Group) {
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].Timestamp.Equal(groups[j].Timestamp) {
			return groups[i].Timestamp.Before(groups[j].Timestamp)
		}
		if groups[i].DateKey != groups[j].DateKey {
			return groups[i].DateKey < groups[j].DateKey
		}
		return groups[i].PeriodLabel < groups[j].PeriodLabel
	})
}

// timeLayouts covers the timestamp formats the upstream dataset uses.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse time %q: %w", raw, lastErr)
}

// DetectInterval returns the sampling interval hint (1 or 3 hours) from the
// first two timestamps of a series.
func (g *Grouper) DetectInterval(times []string) int {
	if len(times) < 2 {
		return 1
	}
	t0, err0 := parseTime(times[0], g.loc)
	t1, err1 := parseTime(times[1], g.loc)
	if err0 != nil || err1 != nil {
		return 1
	}
	if t1.Sub(t0) >= 3*time.Hour {
		return 3
	}
	return 1
}
