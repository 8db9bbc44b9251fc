package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/till/internal/countdown"
	"github.com/sadopc/till/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	countdowns []store.Countdown
	chart      barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	countdowns []store.Countdown
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return statsDataMsg{countdowns: m.store.Countdowns()}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.countdowns = msg.countdowns
		m.buildChart()
		return m, nil
	}
	return m, nil
}

// buildChart draws one bar per countdown: days remaining, in the
// countdown's own color. Expired entries chart as zero.
func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	now := time.Now()
	var bars []barchart.BarData
	for _, c := range m.countdowns {
		days := 0.0
		if target, err := countdown.ParseDate(c.Date); err == nil {
			r := countdown.Until(target, now)
			days = float64(r.Days)
			if !r.Expired && days == 0 {
				days = 0.5 // under a day out, still visible
			}
		}

		bars = append(bars, barchart.BarData{
			Label: truncateLabel(c.Title, 8),
			Values: []barchart.BarValue{{
				Name:  c.Title,
				Value: days,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

// truncateLabel shortens a title for the chart axis without splitting
// multi-byte runes.
func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (m statsModel) view() string {
	w := m.width - 4

	if len(m.countdowns) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Stats"),
			"",
			mutedStyle.Render("No countdowns to chart yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := time.Now()
	upcoming, expired := 0, 0
	var nearest string
	for _, c := range m.countdowns {
		target, err := countdown.ParseDate(c.Date)
		if err != nil {
			continue
		}
		r := countdown.Until(target, now)
		if r.Expired {
			expired++
			continue
		}
		upcoming++
		if nearest == "" {
			nearest = fmt.Sprintf("%s in %s", c.Title, formatCompact(r))
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d upcoming · %d expired", upcoming, expired)),
	)

	summary := m.renderSummaryTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", summary,
		),
	)
}

func (m statsModel) renderSummaryTable(w int) string {
	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-28s %-18s %14s", "Title", "Date", "Remaining"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 60))))

	now := time.Now()
	for _, c := range m.countdowns {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		remaining := "—"
		if target, err := countdown.ParseDate(c.Date); err == nil {
			remaining = formatCompact(countdown.Until(target, now))
		}
		rows = append(rows, fmt.Sprintf("  %s %-26s %-18s %14s",
			colorDot, c.Title, formatDateLabel(c.Date, c.IsHijri), remaining,
		))
	}

	return strings.Join(rows, "\n")
}
