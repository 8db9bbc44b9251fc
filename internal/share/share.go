// Package share encodes a single countdown to and from the query string
// of a shareable URL. Identity and local-only fields (id, color, pin,
// view counters) never travel; only the display fields round-trip.
package share

import (
	"fmt"
	"net/url"

	"github.com/sadopc/till/internal/store"
)

const (
	paramTitle       = "title"
	paramDate        = "date"
	paramIcon        = "icon"
	paramHijri       = "isHijri"
	paramBackground  = "bg"
	paramDescription = "desc"
)

// Encode serializes the shareable fields of a countdown.
func Encode(c store.Countdown) url.Values {
	v := url.Values{}
	v.Set(paramTitle, c.Title)
	v.Set(paramDate, c.Date)

	if c.Icon != "" {
		v.Set(paramIcon, c.Icon)
	}
	if c.IsHijri {
		v.Set(paramHijri, "true")
	}
	if c.Background != "" {
		v.Set(paramBackground, c.Background)
	}
	if c.Description != "" {
		v.Set(paramDescription, c.Description)
	}
	return v
}

// EncodeURL builds a full shareable URL on top of base.
func EncodeURL(base string, c store.Countdown) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = Encode(c).Encode()
	return u.String(), nil
}

// Decode reads a countdown back from query parameters. Both title and
// date must be present; anything less means "no shared countdown", which
// is a normal empty input, not an error.
func Decode(v url.Values) (store.NewCountdown, bool) {
	title := v.Get(paramTitle)
	date := v.Get(paramDate)
	if title == "" || date == "" {
		return store.NewCountdown{}, false
	}

	return store.NewCountdown{
		Title:       title,
		Date:        date,
		Icon:        v.Get(paramIcon),
		IsHijri:     v.Get(paramHijri) == "true",
		Background:  v.Get(paramBackground),
		Description: v.Get(paramDescription),
	}, true
}

// FromURL decodes a shared countdown out of a full URL string.
func FromURL(raw string) (store.NewCountdown, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return store.NewCountdown{}, false
	}
	return Decode(u.Query())
}
