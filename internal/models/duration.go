package models

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrAmbiguousDuration is returned when encoded JSON carries both minutes and seasons.
var ErrAmbiguousDuration = errors.New("duration has both minutes and seasons")

// DurationKind tags which representation a Duration holds.
type DurationKind uint8

// Duration kinds.
const (
	DurationNone DurationKind = iota
	DurationMinutes
	DurationSeasons
)

// String returns the kind name.
func (k DurationKind) String() string {
	switch k {
	case DurationMinutes:
		return "minutes"
	case DurationSeasons:
		return "seasons"
	}

	return "none"
}

// Duration is either a runtime in minutes or a number of seasons, never both.
// The zero value holds no duration.
type Duration struct {
	kind  DurationKind
	value int
}

// Minutes returns a runtime duration of n minutes.
func Minutes(n int) Duration {
	return Duration{kind: DurationMinutes, value: n}
}

// Seasons returns a season-count duration of n seasons.
func Seasons(n int) Duration {
	return Duration{kind: DurationSeasons, value: n}
}

// Kind returns the duration tag.
func (d Duration) Kind() DurationKind {
	return d.kind
}

// IsZero reports whether no duration is held.
func (d Duration) IsZero() bool {
	return d.kind == DurationNone
}

// Minutes returns the minute count when d is a runtime.
func (d Duration) Minutes() (int, bool) {
	if d.kind != DurationMinutes {
		return 0, false
	}

	return d.value, true
}

// Seasons returns the season count when d is a season count.
func (d Duration) Seasons() (int, bool) {
	if d.kind != DurationSeasons {
		return 0, false
	}

	return d.value, true
}

// String formats the duration the way it appears in the source data.
func (d Duration) String() string {
	switch d.kind {
	case DurationMinutes:
		return fmt.Sprintf("%d min", d.value)
	case DurationSeasons:
		if d.value == 1 {
			return "1 Season"
		}

		return fmt.Sprintf("%d Seasons", d.value)
	}

	return ""
}

type durationJSON struct {
	Minutes *int `json:"minutes,omitempty"`
	Seasons *int `json:"seasons,omitempty"`
}

// MarshalJSON encodes the populated variant only, e.g. {"minutes":90}.
func (d Duration) MarshalJSON() ([]byte, error) {
	var out durationJSON

	switch d.kind {
	case DurationMinutes:
		out.Minutes = &d.value
	case DurationSeasons:
		out.Seasons = &d.value
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var in durationJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch {
	case in.Minutes != nil && in.Seasons != nil:
		return ErrAmbiguousDuration
	case in.Minutes != nil:
		*d = Minutes(*in.Minutes)
	case in.Seasons != nil:
		*d = Seasons(*in.Seasons)
	default:
		*d = Duration{}
	}

	return nil
}
