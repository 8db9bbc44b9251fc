package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/till/internal/countdown"
	"github.com/sadopc/till/internal/share"
	"github.com/sadopc/till/internal/store"
)

// shareBase is the scheme shared links are encoded on. Anything carrying
// the query string works; `till -import <link>` reads it back.
const shareBase = "till://countdown"

type countdownsModel struct {
	store    *store.Store
	settings *store.SettingsStore
	width    int
	height   int

	countdowns []store.Countdown
	cursor     int

	// driver feeds the live display of the selected countdown. It is
	// created once and retargeted as the selection changes.
	driver      *countdown.Driver
	snapshot    countdown.Remaining
	hasSnapshot bool

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formTitle       *string
	formDate        *string
	formIcon        *string
	formColor       *string
	formBackground  *string
	formDescription *string
	formHijri       *bool
	formTimeSince   *bool

	editingID string
}

func newCountdownsModel(s *store.Store, settings *store.SettingsStore) countdownsModel {
	title, date, icon, color := "", "", "", store.DefaultColors[0]
	background, description := "", ""
	hijri, timeSince := false, false
	return countdownsModel{
		store:           s,
		settings:        settings,
		formTitle:       &title,
		formDate:        &date,
		formIcon:        &icon,
		formColor:       &color,
		formBackground:  &background,
		formDescription: &description,
		formHijri:       &hijri,
		formTimeSince:   &timeSince,
	}
}

func (m countdownsModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *countdownsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m countdownsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return countdownsDataMsg{countdowns: m.store.Countdowns()}
	}
}

func waitForSnapshot(d *countdown.Driver) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-d.C()
		if !ok {
			return nil
		}
		return snapshotMsg{remaining: r}
	}
}

// syncDriver points the tick driver at the currently selected countdown,
// retiring it when nothing displayable is selected. The returned cmd
// starts the snapshot read loop the first time around.
func (m *countdownsModel) syncDriver() tea.Cmd {
	if len(m.countdowns) == 0 {
		m.stopDriver()
		return nil
	}
	target, err := countdown.ParseDate(m.countdowns[m.cursor].Date)
	if err != nil {
		m.stopDriver()
		return nil
	}

	if m.driver == nil {
		m.driver = countdown.NewDriver(target)
		m.driver.Start()
		return waitForSnapshot(m.driver)
	}
	m.driver.Retarget(target)
	return nil
}

// stopDriver retires the driver for good; the next valid selection
// starts a fresh one.
func (m *countdownsModel) stopDriver() {
	m.hasSnapshot = false
	if m.driver != nil {
		m.driver.Stop()
		m.driver = nil
	}
}

func (m countdownsModel) update(msg tea.Msg) (countdownsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case countdownsDataMsg:
		m.countdowns = msg.countdowns
		if m.cursor >= len(m.countdowns) {
			m.cursor = max(0, len(m.countdowns)-1)
		}
		return m, m.syncDriver()

	case snapshotMsg:
		if m.driver == nil {
			return m, nil
		}
		m.snapshot = msg.remaining
		m.hasSnapshot = true
		return m, waitForSnapshot(m.driver)

	case tea.KeyMsg:
		return m.updateList(msg)
	}
	return m, nil
}

func (m countdownsModel) updateList(msg tea.KeyMsg) (countdownsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			return m, m.syncDriver()
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.countdowns)-1 {
			m.cursor++
			return m, m.syncDriver()
		}
	case key.Matches(msg, keys.MoveUp):
		return m.move(-1)
	case key.Matches(msg, keys.MoveDown):
		return m.move(1)
	case key.Matches(msg, keys.New):
		return m.showNewForm()
	case key.Matches(msg, keys.Edit):
		if len(m.countdowns) > 0 {
			return m.showEditForm()
		}
	case key.Matches(msg, keys.Delete):
		if len(m.countdowns) > 0 {
			m.store.Delete(m.countdowns[m.cursor].ID)
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Share):
		if len(m.countdowns) > 0 {
			return m, m.copyShareLink(m.countdowns[m.cursor])
		}
	}
	return m, nil
}

func (m countdownsModel) move(delta int) (countdownsModel, tea.Cmd) {
	to := m.cursor + delta
	if err := m.store.Reorder(m.cursor, to); err != nil {
		return m, nil
	}
	m.cursor = to
	return m, m.refresh()
}

func (m countdownsModel) copyShareLink(c store.Countdown) tea.Cmd {
	return func() tea.Msg {
		link, err := share.EncodeURL(shareBase, c)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Share error: %v", err), isError: true}
		}
		if err := clipboard.WriteAll(link); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard error: %v", err), isError: true}
		}
		return linkCopiedMsg{}
	}
}

// --- Form ---

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.DefaultColors))
	for i, c := range store.DefaultColors {
		opts[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}
	return opts
}

func validateDate(s string) error {
	_, err := countdown.ParseDate(s)
	return err
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func (m countdownsModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle).Validate(validateTitle),
			huh.NewInput().Title("Date").Placeholder("2026-12-31T23:59").Value(m.formDate).Validate(validateDate),
			huh.NewInput().Title("Icon").Value(m.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(m.formColor),
		),
		huh.NewGroup(
			huh.NewInput().Title("Background URL").Value(m.formBackground),
			huh.NewInput().Title("Description").Value(m.formDescription),
			huh.NewConfirm().Title("Hijri calendar").Value(m.formHijri),
			huh.NewConfirm().Title("Show time since when expired").Value(m.formTimeSince),
		),
	).WithShowHelp(true).WithShowErrors(true)
}

func (m countdownsModel) showNewForm() (countdownsModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDate = countdown.FormatDate(time.Now().AddDate(0, 0, 1))
	*m.formIcon = ""
	*m.formColor = store.DefaultColors[0]
	*m.formBackground = ""
	*m.formDescription = ""
	*m.formHijri = m.settings.Get().DefaultCalendar == store.CalendarHijri
	*m.formTimeSince = false
	m.formType = "new"

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m countdownsModel) showEditForm() (countdownsModel, tea.Cmd) {
	c := m.countdowns[m.cursor]
	*m.formTitle = c.Title
	*m.formDate = c.Date
	*m.formIcon = c.Icon
	*m.formColor = c.Color
	*m.formBackground = c.Background
	*m.formDescription = c.Description
	*m.formHijri = c.IsHijri
	*m.formTimeSince = c.ShowTimeSince
	m.formType = "edit"
	m.editingID = c.ID

	m.form = m.buildForm()
	m.formActive = true
	return m, m.form.Init()
}

func (m countdownsModel) updateForm(msg tea.Msg) (countdownsModel, tea.Cmd) {
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
		switch m.formType {
		case "new":
			m.store.Add(store.NewCountdown{
				Title:         *m.formTitle,
				Date:          *m.formDate,
				Icon:          *m.formIcon,
				Color:         *m.formColor,
				Background:    *m.formBackground,
				Description:   *m.formDescription,
				IsHijri:       *m.formHijri,
				ShowTimeSince: *m.formTimeSince,
			})
		case "edit":
			for _, c := range m.countdowns {
				if c.ID != m.editingID {
					continue
				}
				c.Title = *m.formTitle
				c.Date = *m.formDate
				c.Icon = *m.formIcon
				c.Color = *m.formColor
				c.Background = *m.formBackground
				c.Description = *m.formDescription
				c.IsHijri = *m.formHijri
				c.ShowTimeSince = *m.formTimeSince
				m.store.Update(c)
				break
			}
		}
		return m, m.refresh()
	}

	return m, cmd
}

// --- View ---

func (m countdownsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Countdown")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Countdown")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4

	if len(m.countdowns) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Countdowns"),
			"",
			mutedStyle.Render("Nothing to count down to yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	card := m.renderSelected(w)
	list := m.renderList(w)
	return lipgloss.JoinVertical(lipgloss.Left, card, list)
}

func (m countdownsModel) renderSelected(w int) string {
	c := m.countdowns[m.cursor]
	settings := m.settings.Get()

	title := c.Title
	if c.Icon != "" {
		title = c.Icon + " " + title
	}
	titleLine := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Color)).Render(title)

	hijri := c.IsHijri || settings.DefaultCalendar == store.CalendarHijri
	dateLine := mutedStyle.Render(formatDateLabel(c.Date, hijri))

	var body string
	target, err := countdown.ParseDate(c.Date)
	switch {
	case err != nil:
		body = errorStyle.Render("invalid date")
	case !m.hasSnapshot:
		body = mutedStyle.Render("…")
	case m.snapshot.Expired:
		body = expiredStyle.Render("Expired")
		if c.ShowTimeSince {
			since := countdown.Until(time.Now(), target)
			body = lipgloss.JoinVertical(lipgloss.Center,
				body,
				mutedStyle.Render(fmt.Sprintf("%s ago", formatCompact(since))),
			)
		}
	case settings.MinimalMode:
		body = bigUnitStyle.Render(formatCompact(m.snapshot))
	default:
		body = m.renderUnits(m.snapshot, settings)
	}

	rows := []string{titleLine, dateLine, "", body}
	if c.Description != "" {
		rows = append(rows, "", mutedStyle.Render(c.Description))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return activePanelStyle.Width(w).Render(
		lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(content),
	)
}

func (m countdownsModel) renderUnits(r countdown.Remaining, settings store.Settings) string {
	units := remainingUnits(r, settings.Language)
	if m.settings.IsRTL() {
		for i, j := 0, len(units)-1; i < j; i, j = i+1, j-1 {
			units[i], units[j] = units[j], units[i]
		}
	}

	boxes := make([]string, len(units))
	for i, u := range units {
		boxes[i] = lipgloss.JoinVertical(lipgloss.Center,
			bigUnitStyle.Width(8).Render(fmt.Sprintf("%d", u.value)),
			unitLabelStyle.Width(8).Render(u.label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m countdownsModel) renderList(w int) string {
	now := time.Now()
	var rows []string
	rows = append(rows, titleStyle.Render("All Countdowns"))
	rows = append(rows, "")

	for i, c := range m.countdowns {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		remaining := "—"
		if target, err := countdown.ParseDate(c.Date); err == nil {
			remaining = formatCompact(countdown.Until(target, now))
		}

		pin := " "
		if c.IsPinned {
			pin = "*"
		}

		name := c.Title
		if c.Icon != "" {
			name = c.Icon + " " + name
		}

		row := style.Render(fmt.Sprintf("%s%s%s %-28s %14s", cursor, pin, colorDot, name, remaining))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  y: share  K/J: reorder"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// nextUp returns the closest upcoming countdown and its remaining time,
// for the footer indicator.
func (m countdownsModel) nextUp() (store.Countdown, countdown.Remaining, bool) {
	now := time.Now()
	var best store.Countdown
	var bestRemaining countdown.Remaining
	found := false

	for _, c := range m.countdowns {
		target, err := countdown.ParseDate(c.Date)
		if err != nil {
			continue
		}
		r := countdown.Until(target, now)
		if r.Expired {
			continue
		}
		if !found || r.TotalSeconds() < bestRemaining.TotalSeconds() {
			best, bestRemaining, found = c, r, true
		}
	}
	return best, bestRemaining, found
}
