// Package availability computes cross-timezone meeting windows for a
// set of contacts.
//
// Each contact's local working hours are modeled as a fixed interval,
// translated to the UTC axis using the zone's offset at the moment of
// computation. The intersection across all zones is the "golden
// window". Zone offsets are a snapshot: no correction is attempted for
// future daylight-saving transitions.
package availability

import (
	"fmt"
	"math"
	"time"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// Params configures the working-hours model and the guidance
// thresholds. Hours are fractional local hours.
type Params struct {
	WorkStart float64 // local working hours start, default 09:00
	WorkEnd   float64 // local working hours end, default 18:00

	GreatThreshold float64 // hours of overlap considered comfortable
	TightThreshold float64 // hours of overlap considered workable
}

// DefaultParams returns the standard 09:00-18:00 working window with
// 3h/1h guidance thresholds.
func DefaultParams() Params {
	return Params{
		WorkStart:      9,
		WorkEnd:        18,
		GreatThreshold: 3,
		TightThreshold: 1,
	}
}

// TimezoneWindow is one distinct timezone's working window on the UTC
// axis, with the contacts that live in it.
type TimezoneWindow struct {
	Timezone string   `json:"timezone"`
	Offset   float64  `json:"offset"`
	StartUTC float64  `json:"start_utc"`
	EndUTC   float64  `json:"end_utc"`
	Members  []string `json:"members"`
}

// GoldenWindow is the UTC interval where all zones' working hours
// overlap. Duration is rounded to one decimal.
type GoldenWindow struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// MeetingSlot is one suggested meeting time inside the golden window.
type MeetingSlot struct {
	Label string  `json:"label"`
	Day   string  `json:"day"`
	UTC   float64 `json:"utc"`
}

// Overlap is the full result of a golden-hours computation. Golden is
// nil when the zones' working hours do not intersect, which is an
// expected outcome for widely spread teams, not an error.
type Overlap struct {
	Windows  []TimezoneWindow `json:"timezone_windows"`
	Golden   *GoldenWindow    `json:"golden_window,omitempty"`
	Guidance string           `json:"guidance"`
	Slots    []MeetingSlot    `json:"suggested_slots"`
}

// ComputeGoldenHours runs the overlap computation with default
// parameters, taking the zone-offset snapshot at now.
func ComputeGoldenHours(contacts []common.Contact, now time.Time) Overlap {
	return Compute(contacts, now, DefaultParams())
}

// Compute deduplicates contacts by id (first occurrence wins), groups
// them by timezone (empty means UTC), translates each zone's working
// window to the UTC axis and intersects all windows. When a golden
// window exists, four suggested slots are produced: the window start
// rounded up to the next half hour and the midpoint rounded up to the
// next whole hour, each for today and tomorrow.
func Compute(contacts []common.Contact, now time.Time, params Params) Overlap {
	seen := make(map[string]struct{}, len(contacts))
	groups := make(map[string][]string)
	var order []string

	for _, c := range contacts {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		tz := c.Timezone
		if tz == "" {
			tz = "UTC"
		}
		if _, exists := groups[tz]; !exists {
			order = append(order, tz)
		}
		groups[tz] = append(groups[tz], c.ID)
	}

	windows := make([]TimezoneWindow, 0, len(order))
	for _, tz := range order {
		offset := zoneOffsetHours(tz, now)
		windows = append(windows, TimezoneWindow{
			Timezone: tz,
			Offset:   offset,
			StartUTC: params.WorkStart - offset,
			EndUTC:   params.WorkEnd - offset,
			Members:  groups[tz],
		})
	}

	result := Overlap{Windows: windows, Slots: []MeetingSlot{}}
	if len(windows) == 0 {
		result.Guidance = "no contacts to schedule"
		return result
	}

	overlapStart := windows[0].StartUTC
	overlapEnd := windows[0].EndUTC
	for _, w := range windows[1:] {
		overlapStart = math.Max(overlapStart, w.StartUTC)
		overlapEnd = math.Min(overlapEnd, w.EndUTC)
	}

	if overlapEnd <= overlapStart {
		result.Guidance = "no overlapping working hours, schedule async or rotate meeting times"
		return result
	}

	duration := math.Round((overlapEnd-overlapStart)*10) / 10
	result.Golden = &GoldenWindow{
		Start:    overlapStart,
		End:      overlapEnd,
		Duration: duration,
	}

	switch {
	case duration >= params.GreatThreshold:
		result.Guidance = "great window for synchronous meetings"
	case duration >= params.TightThreshold:
		result.Guidance = "tight, prioritize short standups"
	default:
		result.Guidance = "very limited overlap, consider async"
	}

	result.Slots = suggestSlots(overlapStart, overlapEnd)
	return result
}

// suggestSlots picks two UTC times inside [start, end) and labels each
// for today and tomorrow. This is a heuristic, not an optimization; its
// only guarantee is that every suggestion falls inside the window.
func suggestSlots(start, end float64) []MeetingSlot {
	first := math.Ceil(start*2) / 2
	if first >= end {
		first = start
	}

	mid := math.Ceil((start + end) / 2)
	if mid >= end {
		mid = first
	}

	slots := make([]MeetingSlot, 0, 4)
	for _, day := range []string{"today", "tomorrow"} {
		for _, at := range []float64{first, mid} {
			slots = append(slots, MeetingSlot{
				Label: fmt.Sprintf("%s %s UTC", day, FormatHour(at)),
				Day:   day,
				UTC:   at,
			})
		}
	}
	return slots
}

// FormatHour renders a fractional UTC hour as "HH:MM". Hours outside
// [0, 24) wrap around the clock, since offsets can push window bounds
// past midnight.
func FormatHour(h float64) string {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours = (hours + 1) % 24
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// zoneOffsetHours resolves the UTC offset of an IANA zone at the given
// instant, in fractional hours. Unknown zones resolve as UTC.
func zoneOffsetHours(tz string, now time.Time) float64 {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0
	}
	_, offsetSeconds := now.In(loc).Zone()
	return float64(offsetSeconds) / 3600
}
