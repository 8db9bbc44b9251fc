package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/till/internal/countdown"
	"github.com/sadopc/till/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCountdowns viewState = iota
	viewStats
	viewSettings
)

var viewNames = []string{"Countdowns", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

// snapshotMsg carries a live snapshot from the selected countdown's driver.
type snapshotMsg struct {
	remaining countdown.Remaining
}

type countdownsDataMsg struct {
	countdowns []store.Countdown
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

type linkCopiedMsg struct{}

// --- Helpers ---

// timeUnit is one displayed component of a remaining-time breakdown.
type timeUnit struct {
	value int
	label string
}

// remainingUnits labels a snapshot for display, honoring the UI language
// and singular forms the way the web original does.
func remainingUnits(r countdown.Remaining, lang store.Language) []timeUnit {
	type names struct{ plural, singular string }
	var n [4]names
	if lang == store.LanguageArabic {
		n = [4]names{
			{"أيام", "يوم"},
			{"ساعات", "ساعة"},
			{"دقائق", "دقيقة"},
			{"ثواني", "ثانية"},
		}
	} else {
		n = [4]names{
			{"days", "day"},
			{"hours", "hour"},
			{"mins", "min"},
			{"secs", "sec"},
		}
	}

	values := [4]int{r.Days, r.Hours, r.Minutes, r.Seconds}
	units := make([]timeUnit, 4)
	for i, v := range values {
		label := n[i].plural
		if v == 1 {
			label = n[i].singular
		}
		units[i] = timeUnit{value: v, label: label}
	}
	return units
}

// formatCompact renders a snapshot as "12d 03:45:12" for list rows.
func formatCompact(r countdown.Remaining) string {
	if r.Expired {
		return "expired"
	}
	if r.Days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", r.Days, r.Hours, r.Minutes, r.Seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// formatDateLabel renders a stored date string for display, tagging the
// Hijri calendar flag. No conversion happens; the flag is cosmetic.
func formatDateLabel(date string, hijri bool) string {
	label := date
	if t, err := countdown.ParseDate(date); err == nil {
		label = t.Format("2006-01-02 15:04")
	}
	if hijri {
		label += " (Hijri)"
	}
	return label
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
