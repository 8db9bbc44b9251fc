package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/till/internal/countdown"
	"github.com/sadopc/till/internal/store"
)

func ToCSV(countdowns []store.Countdown, now time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Date", "Days Left", "Expired", "Icon", "Color", "Description"}); err != nil {
		return err
	}

	for _, c := range countdowns {
		daysLeft := ""
		expired := ""
		if target, err := countdown.ParseDate(c.Date); err == nil {
			r := countdown.Until(target, now)
			daysLeft = fmt.Sprintf("%d", r.Days)
			expired = fmt.Sprintf("%t", r.Expired)
		}

		row := []string{
			c.ID,
			c.Title,
			c.Date,
			daysLeft,
			expired,
			c.Icon,
			c.Color,
			c.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
