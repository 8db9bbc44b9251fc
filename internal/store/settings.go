package store

import (
	"encoding/json"
	"sync"
)

// SettingsStore holds the persisted preference record. Every setter
// rewrites the whole record; a malformed blob falls back to defaults.
type SettingsStore struct {
	mu      sync.Mutex
	backend Backend
	current Settings
}

func NewSettingsStore(b Backend) *SettingsStore {
	st := &SettingsStore{backend: b, current: DefaultSettings()}
	if data, err := b.Get(keySettings); err == nil && data != nil {
		var saved Settings
		if err := json.Unmarshal(data, &saved); err == nil {
			st.current = saved
		}
	}
	return st
}

func (st *SettingsStore) Get() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

func (st *SettingsStore) SetLanguage(l Language) {
	st.set(func(s *Settings) { s.Language = l })
}

func (st *SettingsStore) SetDefaultCalendar(c CalendarType) {
	st.set(func(s *Settings) { s.DefaultCalendar = c })
}

func (st *SettingsStore) SetTheme(t Theme) {
	st.set(func(s *Settings) { s.Theme = t })
}

func (st *SettingsStore) SetMinimalMode(on bool) {
	st.set(func(s *Settings) { s.MinimalMode = on })
}

func (st *SettingsStore) SetNotificationsEnabled(on bool) {
	st.set(func(s *Settings) { s.NotificationsEnabled = on })
}

func (st *SettingsStore) SetSoundEnabled(on bool) {
	st.set(func(s *Settings) { s.SoundEnabled = on })
}

// IsRTL reports whether the UI should lay out right-to-left.
func (st *SettingsStore) IsRTL() bool {
	return st.Get().Language == LanguageArabic
}

func (st *SettingsStore) set(mutate func(*Settings)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	mutate(&st.current)
	data, err := json.Marshal(st.current)
	if err != nil {
		return
	}
	_ = st.backend.Put(keySettings, data)
}
