package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressMsg reports that one more category finished solving.
type progressMsg struct {
	category string
	done     int
	total    int
}

// doneMsg tells the program to exit once the caller has collected every
// result; sent after the last progressMsg so the view has a chance to
// render the 100% frame before quitting.
type doneMsg struct{}

// progressModel is a minimal bubbletea model showing live solve progress in
// --gui mode. The driver is a one-shot batch job rather than an interactive
// game, so there is no keyboard input to act on besides an early quit.
type progressModel struct {
	total    int
	done     int
	last     string
	quitting bool
}

func newProgressModel(total int) progressModel {
	return progressModel{total: total}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.done = msg.done
		m.last = msg.category
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

var progressBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

func (m progressModel) View() string {
	if m.quitting {
		return ""
	}
	bar := progressBar(m.done, m.total, 30)
	line := fmt.Sprintf("%s %d/%d categories solved", bar, m.done, m.total)
	if m.last != "" {
		line += fmt.Sprintf("  (last: %s)", m.last)
	}
	return line + "\n"
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := width * done / total
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "#"
		} else {
			bar += "-"
		}
	}
	return progressBarStyle.Render("[" + bar + "]")
}
