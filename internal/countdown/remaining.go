package countdown

import (
	"fmt"
	"time"
)

// Remaining is the time left until a target instant, broken down for
// display. Once the target has passed the snapshot is the terminal
// expired state: all components zero, Expired true.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Expired bool
}

// Until computes the remaining time between now and target at
// whole-second granularity. It is pure: same inputs, same snapshot.
func Until(target, now time.Time) Remaining {
	diff := int64(target.Sub(now) / time.Second)
	if diff <= 0 {
		return Remaining{Expired: true}
	}

	return Remaining{
		Days:    int(diff / 86400),
		Hours:   int(diff % 86400 / 3600),
		Minutes: int(diff % 3600 / 60),
		Seconds: int(diff % 60),
	}
}

// TotalSeconds flattens the breakdown back into seconds.
func (r Remaining) TotalSeconds() int64 {
	return int64(r.Days)*86400 + int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
}

// dateLayouts are the accepted forms of a countdown date string. The
// canonical form written by the app is the first one.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate parses a countdown date string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

// FormatDate renders an instant in the canonical date string form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}
