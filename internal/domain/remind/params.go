package remind

import (
	"errors"
	"sort"
	"time"
)

// Params defines the configurable offsets for meeting reminders.
// Each offset is the duration before the meeting start at which a
// reminder should fire.
type Params struct {
	Offsets []time.Duration
}

// Default reminder offsets: one day, one hour, and ten minutes before the
// meeting starts. These mirror the three notification slots the mobile
// application schedules per meeting.
const (
	DefaultDayOffset    = 24 * time.Hour
	DefaultHourOffset   = time.Hour
	DefaultMinuteOffset = 10 * time.Minute
)

// ErrInvalidOffset is returned when a configured offset is not positive.
var ErrInvalidOffset = errors.New("reminder offset must be positive")

// NewDefaultParams creates a new Params instance with the default
// three-reminder schedule.
func NewDefaultParams() *Params {
	return &Params{
		Offsets: []time.Duration{
			DefaultDayOffset,
			DefaultHourOffset,
			DefaultMinuteOffset,
		},
	}
}

// NewParams creates a Params instance with custom offsets. Duplicates are
// collapsed and the offsets are kept sorted largest-first so that computed
// fire times come out soonest-first. Returns ErrInvalidOffset if any offset
// is zero or negative.
func NewParams(offsets []time.Duration) (*Params, error) {
	if len(offsets) == 0 {
		return NewDefaultParams(), nil
	}

	seen := make(map[time.Duration]bool, len(offsets))
	unique := make([]time.Duration, 0, len(offsets))
	for _, offset := range offsets {
		if offset <= 0 {
			return nil, ErrInvalidOffset
		}
		if seen[offset] {
			continue
		}
		seen[offset] = true
		unique = append(unique, offset)
	}

	sort.Slice(unique, func(i, j int) bool { return unique[i] > unique[j] })

	return &Params{Offsets: unique}, nil
}
