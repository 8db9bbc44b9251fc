package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/till/internal/store"
)

type settingsModel struct {
	store  *store.SettingsStore
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	language      *string
	calendar      *string
	theme         *string
	minimalMode   *bool
	notifications *bool
	sound         *bool
}

func newSettingsModel(s *store.SettingsStore) settingsModel {
	lang, cal, theme := "", "", ""
	minimal, notif, sound := false, false, false
	return settingsModel{
		store:         s,
		language:      &lang,
		calendar:      &cal,
		theme:         &theme,
		minimalMode:   &minimal,
		notifications: &notif,
		sound:         &sound,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	current := m.store.Get()
	*m.language = string(current.Language)
	*m.calendar = string(current.DefaultCalendar)
	*m.theme = string(current.Theme)
	*m.minimalMode = current.MinimalMode
	*m.notifications = current.NotificationsEnabled
	*m.sound = current.SoundEnabled

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Language").
				Options(
					huh.NewOption("English", string(store.LanguageEnglish)),
					huh.NewOption("العربية", string(store.LanguageArabic)),
				).Value(m.language),
			huh.NewSelect[string]().Title("Default calendar").
				Options(
					huh.NewOption("Gregorian", string(store.CalendarGregorian)),
					huh.NewOption("Hijri", string(store.CalendarHijri)),
				).Value(m.calendar),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Dark", string(store.ThemeDark)),
					huh.NewOption("Light", string(store.ThemeLight)),
					huh.NewOption("System", string(store.ThemeSystem)),
				).Value(m.theme),
		).Title("Display"),
		huh.NewGroup(
			huh.NewConfirm().Title("Minimal mode").Value(m.minimalMode),
			huh.NewConfirm().Title("Notifications").Value(m.notifications),
			huh.NewConfirm().Title("Sound").Value(m.sound),
		).Title("Extras"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.saveSettings()
		return m, nil
	}

	return m, cmd
}

func (m settingsModel) saveSettings() {
	m.store.SetLanguage(store.Language(*m.language))
	m.store.SetDefaultCalendar(store.CalendarType(*m.calendar))
	m.store.SetTheme(store.Theme(*m.theme))
	m.store.SetMinimalMode(*m.minimalMode)
	m.store.SetNotificationsEnabled(*m.notifications)
	m.store.SetSoundEnabled(*m.sound)
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	current := m.store.Get()
	rows := []string{
		titleStyle.Render("Settings"),
		"",
		settingRow("Language", string(current.Language)),
		settingRow("Default calendar", string(current.DefaultCalendar)),
		settingRow("Theme", string(current.Theme)),
		settingRow("Minimal mode", onOff(current.MinimalMode)),
		settingRow("Notifications", onOff(current.NotificationsEnabled)),
		settingRow("Sound", onOff(current.SoundEnabled)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(24).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
