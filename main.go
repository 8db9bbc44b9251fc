package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"
	"github.com/sadopc/till/internal/share"
	"github.com/sadopc/till/internal/store"
	"github.com/sadopc/till/internal/tui"
)

// acquireLock takes the single-instance lock next to the database file,
// creating the config directory on a first run.
func acquireLock(dbPath string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("another instance of till is already running")
	}
	return lock, nil
}

func main() {
	importURL := flag.String("import", "", "shared countdown link to import")
	flag.Parse()

	// A bare link argument works too: till "till://countdown?title=..."
	if *importURL == "" && flag.NArg() > 0 && strings.Contains(flag.Arg(0), "?") {
		*importURL = flag.Arg(0)
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Single writer: refuse to start a second instance on the same data.
	lock, err := acquireLock(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer lock.Unlock()

	backend, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	var shared *store.NewCountdown
	if *importURL != "" {
		if nc, ok := share.FromURL(*importURL); ok {
			shared = &nc
		}
	}

	s := store.NewStore(backend)
	s.Hydrate(shared)
	prefs := store.NewSettingsStore(backend)

	app := tui.NewApp(s, prefs)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
