package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/till/internal/store"
)

func testCountdowns() []store.Countdown {
	return []store.Countdown{
		{
			ID:    "id-1",
			Title: "Launch",
			Date:  "2030-01-01T00:00",
			Icon:  "🚀",
			Color: "#3B82F6",
		},
		{
			ID:          "id-2",
			Title:       "Party",
			Date:        "2020-01-01T00:00", // long past
			Color:       "#EC4899",
			Description: "it happened",
		},
		{
			ID:    "id-3",
			Title: "Broken",
			Date:  "not-a-date",
			Color: "#F97316",
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	if err := ToCSV(testCountdowns(), now, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Days Left" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	// Future countdown has a computed day count.
	if rows[1][1] != "Launch" || rows[1][3] == "" || rows[1][4] != "false" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
	// Past countdown is flagged expired.
	if rows[2][4] != "true" {
		t.Fatalf("expected expired row: %v", rows[2])
	}
	// Unparseable date leaves the derived columns blank.
	if rows[3][3] != "" || rows[3][4] != "" {
		t.Fatalf("expected blank derived columns: %v", rows[3])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	if err := ToJSON(testCountdowns(), now, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 || len(out.Countdowns) != 3 {
		t.Fatalf("expected 3 countdowns, got %+v", out)
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}

	launch := out.Countdowns[0]
	if launch.Title != "Launch" || launch.Expired || launch.DaysLeft <= 0 {
		t.Fatalf("unexpected countdown: %+v", launch)
	}
	if !out.Countdowns[1].Expired {
		t.Fatalf("expected expired countdown: %+v", out.Countdowns[1])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, time.Now(), filepath.Join(t.TempDir(), "missing", "out.csv"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestToJSONEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, time.Now(), path); err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 0 {
		t.Fatalf("expected empty export, got %+v", out)
	}
}
