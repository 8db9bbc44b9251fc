package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/till/internal/countdown"
	"github.com/sadopc/till/internal/store"
)

type jsonExport struct {
	ExportedAt string          `json:"exported_at"`
	Count      int             `json:"count"`
	Countdowns []jsonCountdown `json:"countdowns"`
}

type jsonCountdown struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	DaysLeft    int    `json:"days_left"`
	Expired     bool   `json:"expired"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color"`
	Background  string `json:"background,omitempty"`
	IsHijri     bool   `json:"is_hijri,omitempty"`
	Description string `json:"description,omitempty"`
}

func ToJSON(countdowns []store.Countdown, now time.Time, path string) error {
	out := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(countdowns),
	}

	for _, c := range countdowns {
		jc := jsonCountdown{
			ID:          c.ID,
			Title:       c.Title,
			Date:        c.Date,
			Icon:        c.Icon,
			Color:       c.Color,
			Background:  c.Background,
			IsHijri:     c.IsHijri,
			Description: c.Description,
		}
		if target, err := countdown.ParseDate(c.Date); err == nil {
			r := countdown.Until(target, now)
			jc.DaysLeft = r.Days
			jc.Expired = r.Expired
		}
		out.Countdowns = append(out.Countdowns, jc)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
