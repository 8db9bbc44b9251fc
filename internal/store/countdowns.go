package store

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned by Reorder for indices outside the
// current collection bounds. The collection is left untouched.
var ErrIndexOutOfRange = fmt.Errorf("index out of range")

// Store owns the ordered countdown collection. All mutations go through
// it; each one rewrites the whole collection blob through the backend.
// Persistence failures are swallowed so the in-memory state keeps serving
// the current session.
type Store struct {
	mu      sync.Mutex
	backend Backend

	countdowns []Countdown
	hydrated   bool
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

// Hydrate loads the persisted collection and merges an optional shared
// countdown into it. It runs once per process; later calls are no-ops.
// A malformed or absent blob yields an empty collection, never an error.
func (s *Store) Hydrate(shared *NewCountdown) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	if data, err := s.backend.Get(keyCountdowns); err == nil && data != nil {
		var saved []Countdown
		if err := json.Unmarshal(data, &saved); err == nil {
			s.countdowns = saved
		}
	}

	if shared == nil {
		return
	}

	// Exact title+date match suppresses re-imports of the same link.
	for _, c := range s.countdowns {
		if c.Title == shared.Title && c.Date == shared.Date {
			return
		}
	}

	in := *shared
	in.Color = pickColor(in.Title, in.Date)
	s.append(in)
}

// Countdowns returns a copy of the ordered collection.
func (s *Store) Countdowns() []Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Countdown, len(s.countdowns))
	copy(out, s.countdowns)
	return out
}

// Add assigns a fresh ID, appends the countdown to the end of the
// collection and returns the full record.
func (s *Store) Add(in NewCountdown) Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(in)
}

func (s *Store) append(in NewCountdown) Countdown {
	c := Countdown{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Date:          in.Date,
		Icon:          in.Icon,
		Color:         in.Color,
		Background:    in.Background,
		IsHijri:       in.IsHijri,
		Description:   in.Description,
		IsPinned:      in.IsPinned,
		ReminderTime:  in.ReminderTime,
		Shares:        in.Shares,
		Views:         in.Views,
		ShowTimeSince: in.ShowTimeSince,
	}
	s.countdowns = append(s.countdowns, c)
	s.persist()
	return c
}

// Update replaces the countdown with the same ID in place. An unknown ID
// is a no-op, not an error.
func (s *Store) Update(c Countdown) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.countdowns {
		if s.countdowns[i].ID == c.ID {
			s.countdowns[i] = c
			s.persist()
			return
		}
	}
}

// Delete removes the countdown with the given ID if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.countdowns {
		if s.countdowns[i].ID == id {
			s.countdowns = append(s.countdowns[:i], s.countdowns[i+1:]...)
			s.persist()
			return
		}
	}
}

// Reorder moves the element at from to position to, shifting the rest.
func (s *Store) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.countdowns)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("reorder %d -> %d with %d countdowns: %w", from, to, n, ErrIndexOutOfRange)
	}
	if from == to {
		return nil
	}

	moved := s.countdowns[from]
	rest := append(s.countdowns[:from], s.countdowns[from+1:]...)
	s.countdowns = append(rest[:to], append([]Countdown{moved}, rest[to:]...)...)
	s.persist()
	return nil
}

func (s *Store) persist() {
	data, err := json.Marshal(s.countdowns)
	if err != nil {
		return
	}
	// Write failures (quota, locked file) are deliberately dropped; the
	// in-memory collection stays the source of truth for this session.
	_ = s.backend.Put(keyCountdowns, data)
}

// pickColor derives a palette color from the title+date pair so the same
// shared link always imports with the same color.
func pickColor(title, date string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(date))
	return DefaultColors[h.Sum32()%uint32(len(DefaultColors))]
}
