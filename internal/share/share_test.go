package share

import (
	"net/url"
	"testing"

	"github.com/sadopc/till/internal/store"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := store.Countdown{
		ID:          "abc-123",
		Title:       "Launch 🚀",
		Date:        "2030-01-01T00:00",
		Icon:        "🎉",
		Color:       "#3B82F6",
		Background:  "https://example.com/bg.jpg",
		IsHijri:     true,
		Description: "the big day & more",
	}

	got, ok := Decode(Encode(c))
	if !ok {
		t.Fatal("decode failed")
	}

	want := store.NewCountdown{
		Title:       c.Title,
		Date:        c.Date,
		Icon:        c.Icon,
		Background:  c.Background,
		IsHijri:     c.IsHijri,
		Description: c.Description,
	}
	if got != want {
		t.Fatalf("round trip:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestEncodeOmitsUnsetFields(t *testing.T) {
	c := store.Countdown{ID: "x", Title: "Plain", Date: "2030-01-01T00:00", Color: "#3B82F6"}
	v := Encode(c)

	for _, p := range []string{"icon", "isHijri", "bg", "desc"} {
		if v.Has(p) {
			t.Fatalf("unset field %q should be omitted", p)
		}
	}
}

func TestEncodeNeverCarriesIdentity(t *testing.T) {
	c := store.Countdown{
		ID: "secret-id", Title: "T", Date: "2030-01-01T00:00", Color: "#EC4899",
		IsPinned: true, ReminderTime: 10, Shares: 5, Views: 9,
	}
	v := Encode(c)

	for _, p := range []string{"id", "color", "isPinned", "reminderTime", "shares", "views"} {
		if v.Has(p) {
			t.Fatalf("field %q must never be encoded", p)
		}
	}
}

func TestDecodeRequiresTitleAndDate(t *testing.T) {
	cases := []url.Values{
		{},
		{"title": {"Launch"}},
		{"date": {"2030-01-01T00:00"}},
		{"icon": {"🎉"}, "desc": {"x"}},
	}
	for _, v := range cases {
		if _, ok := Decode(v); ok {
			t.Fatalf("Decode(%v) should yield no shared countdown", v)
		}
	}
}

func TestDecodeEmptyQuery(t *testing.T) {
	v, err := url.ParseQuery("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Decode(v); ok {
		t.Fatal("empty query should yield no shared countdown")
	}
}

func TestDecodeHijriFlag(t *testing.T) {
	v := url.Values{"title": {"T"}, "date": {"2030-01-01T00:00"}}

	if nc, _ := Decode(v); nc.IsHijri {
		t.Fatal("absent isHijri should decode as false")
	}

	v.Set("isHijri", "false")
	if nc, _ := Decode(v); nc.IsHijri {
		t.Fatal(`only the literal "true" sets the flag`)
	}

	v.Set("isHijri", "true")
	if nc, _ := Decode(v); !nc.IsHijri {
		t.Fatal("isHijri=true should decode as true")
	}
}

func TestEncodeURL(t *testing.T) {
	c := store.Countdown{Title: "Launch", Date: "2030-01-01T00:00", Color: "#3B82F6"}
	link, err := EncodeURL("till://countdown", c)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := FromURL(link)
	if !ok {
		t.Fatalf("FromURL(%q) failed", link)
	}
	if got.Title != "Launch" || got.Date != "2030-01-01T00:00" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestFromURLWebLink(t *testing.T) {
	raw := "https://example.com/?title=Eid&date=2030-03-20T18%3A00&isHijri=true&icon=%F0%9F%8C%99"
	got, ok := FromURL(raw)
	if !ok {
		t.Fatal("expected a shared countdown")
	}
	if got.Title != "Eid" || got.Date != "2030-03-20T18:00" || !got.IsHijri || got.Icon != "🌙" {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestFromURLGarbage(t *testing.T) {
	for _, raw := range []string{"", "://bad", "https://example.com/"} {
		if _, ok := FromURL(raw); ok {
			t.Fatalf("FromURL(%q) should yield no shared countdown", raw)
		}
	}
}
