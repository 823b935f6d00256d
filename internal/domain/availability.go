package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AgendaService/pkg/types"
)

var (
	// ErrInvalidAvailability is returned for a malformed or inconsistent weekly schedule
	ErrInvalidAvailability = errors.New("invalid availability")

	// ErrUnsupportedAvailabilityVersion is returned for an unknown schema version
	ErrUnsupportedAvailabilityVersion = errors.New("unsupported availability schema version")
)

// DayKey identifies a weekday in the availability document
type DayKey string

const (
	Monday    DayKey = "mon"
	Tuesday   DayKey = "tue"
	Wednesday DayKey = "wed"
	Thursday  DayKey = "thu"
	Friday    DayKey = "fri"
	Saturday  DayKey = "sat"
	Sunday    DayKey = "sun"
)

// DayKeys all weekday keys, Monday first
var DayKeys = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayKeys = map[time.Weekday]DayKey{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// DayKeyFor maps a time.Weekday to its availability key
func DayKeyFor(w time.Weekday) (DayKey, bool) {
	key, ok := weekdayKeys[w]
	return key, ok
}

// IsValid returns true for one of the seven known keys
func (k DayKey) IsValid() bool {
	for _, key := range DayKeys {
		if key == k {
			return true
		}
	}
	return false
}

// TimeRange is an open interval of one civil day, [Start, End)
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks HH:MM format and Start < End
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidAvailability, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidAvailability, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: range %s-%s must end after it starts", ErrInvalidAvailability, r.Start, r.End)
	}
	return nil
}

// WeeklyAvailability is the recurring weekly schedule of a provider.
// A day that is missing from Week or has no ranges is closed.
type WeeklyAvailability struct {
	Version     int                    `json:"version"`
	Timezone    string                 `json:"timezone"`
	SlotMinutes int                    `json:"slotMinutes"`
	Week        map[DayKey][]TimeRange `json:"week"`
}

// legacyDay is the single-interval-per-day shape of schema v1
type legacyDay struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// versionedDocument accepts both v2 spellings of the slot granularity
type versionedDocument struct {
	Version           int                    `json:"version"`
	Timezone          string                 `json:"timezone"`
	SlotMinutes       int                    `json:"slotMinutes"`
	SlotMinutesLegacy int                    `json:"slot_minutes"`
	Week              map[DayKey][]TimeRange `json:"week"`
}

// ParseWeeklyAvailability decodes a stored availability document.
// Documents with a "version" or "week" key are read as schema v2; otherwise the
// document is treated as the v1 day map ({"mon": {"start","end"} | null}) and
// upgraded. The result is normalized but not validated.
func ParseWeeklyAvailability(raw []byte) (*WeeklyAvailability, error) {
	var topLevel map[string]json.RawMessage
	if err := json.Unmarshal(raw, &topLevel); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
	}

	_, hasVersion := topLevel["version"]
	_, hasWeek := topLevel["week"]

	var result *WeeklyAvailability
	if hasVersion || hasWeek {
		var doc versionedDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
		}
		if doc.Version == 0 {
			doc.Version = AvailabilitySchemaVersion
		}
		if doc.Version != AvailabilitySchemaVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedAvailabilityVersion, doc.Version)
		}
		slotMinutes := doc.SlotMinutes
		if slotMinutes == 0 {
			slotMinutes = doc.SlotMinutesLegacy
		}
		result = &WeeklyAvailability{
			Version:     doc.Version,
			Timezone:    doc.Timezone,
			SlotMinutes: slotMinutes,
			Week:        doc.Week,
		}
	} else {
		upgraded, err := upgradeLegacy(topLevel)
		if err != nil {
			return nil, err
		}
		result = upgraded
	}

	result.Normalize()
	return result, nil
}

func upgradeLegacy(days map[string]json.RawMessage) (*WeeklyAvailability, error) {
	week := make(map[DayKey][]TimeRange, len(days))

	for key, raw := range days {
		dayKey := DayKey(key)
		if !dayKey.IsValid() {
			return nil, fmt.Errorf("%w: unknown day key %q", ErrInvalidAvailability, key)
		}

		var day *legacyDay
		if err := json.Unmarshal(raw, &day); err != nil {
			return nil, fmt.Errorf("%w: day %s: %v", ErrInvalidAvailability, key, err)
		}
		if day == nil || day.Start == "" || day.End == "" {
			continue
		}
		week[dayKey] = []TimeRange{{Start: types.TimeString(day.Start), End: types.TimeString(day.End)}}
	}

	return &WeeklyAvailability{
		Version: LegacyAvailabilitySchemaVersion,
		Week:    week,
	}, nil
}

// Normalize fills defaults, upgrades the version and sorts ranges by start time
func (a *WeeklyAvailability) Normalize() {
	a.Version = AvailabilitySchemaVersion
	if a.Timezone == "" {
		a.Timezone = DefaultTimezone
	}
	if a.SlotMinutes == 0 {
		a.SlotMinutes = DefaultSlotMinutes
	}
	if a.Week == nil {
		a.Week = make(map[DayKey][]TimeRange)
	}
	for key, ranges := range a.Week {
		if len(ranges) == 0 {
			delete(a.Week, key)
			continue
		}
		a.Week[key] = sortedRanges(ranges)
	}
}

func sortedRanges(ranges []TimeRange) []TimeRange {
	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})
	return sorted
}

// Validate checks day keys, ranges, disjointness, timezone and slot granularity
func (a *WeeklyAvailability) Validate() error {
	if a.Version != AvailabilitySchemaVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedAvailabilityVersion, a.Version)
	}
	if _, err := time.LoadLocation(a.Timezone); err != nil || a.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidAvailability, a.Timezone)
	}
	if a.SlotMinutes < MinSlotMinutes || a.SlotMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slotMinutes must be between %d and %d",
			ErrInvalidAvailability, MinSlotMinutes, MaxSlotMinutes)
	}

	for key, ranges := range a.Week {
		if !key.IsValid() {
			return fmt.Errorf("%w: unknown day key %q", ErrInvalidAvailability, key)
		}
		for _, r := range ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		sorted := sortedRanges(ranges)
		for i := 1; i < len(sorted); i++ {
			// Touching ranges are fine, overlapping ones are not
			if sorted[i].Start.IsBefore(sorted[i-1].End) {
				return fmt.Errorf("%w: %s ranges %s-%s and %s-%s overlap", ErrInvalidAvailability,
					key, sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End)
			}
		}
	}

	return nil
}

// RangesFor returns the open ranges of a weekday in chronological order
func (a *WeeklyAvailability) RangesFor(w time.Weekday) []TimeRange {
	if a == nil {
		return nil
	}
	key, ok := DayKeyFor(w)
	if !ok {
		return nil
	}
	return a.Week[key]
}

// IsClosed returns true if no range is configured for the weekday
func (a *WeeklyAvailability) IsClosed(w time.Weekday) bool {
	return len(a.RangesFor(w)) == 0
}

// Location loads the civil timezone of the schedule
func (a *WeeklyAvailability) Location() (*time.Location, error) {
	tz := a.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidAvailability, tz)
	}
	return loc, nil
}

// Marshal encodes the schedule as a v2 document
func (a *WeeklyAvailability) Marshal() ([]byte, error) {
	return json.Marshal(a)
}
