package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/riverbend/huholdem/internal/tui"
)

// categoryResult is one category's averaged root strategy, ready to render.
type categoryResult struct {
	Category string
	Weight   float64
	Samples  int
	Dist     []float64 // indexed per bettree.Index(action, n)
}

// actionLabels returns the alphabet's fixed layout (CHECK, BET_i.., FOLD,
// CALL, RAISE_i..) as display labels, mirroring bettree.Index/AlphabetSize.
func actionLabels(betSizesBB []float64) []string {
	n := len(betSizesBB)
	labels := make([]string, 2*n+3)
	labels[0] = "CHECK"
	for i, s := range betSizesBB {
		labels[1+i] = fmt.Sprintf("BET %.2gbb", s)
	}
	labels[n+1] = "FOLD"
	labels[n+2] = "CALL"
	for i, s := range betSizesBB {
		labels[n+3+i] = fmt.Sprintf("RAISE %.2gbb", s)
	}
	return labels
}

// renderPlain writes a plain-text, tab-aligned report: one row per category,
// one column per action.
func renderPlain(w *tabwriter.Writer, labels []string, results []categoryResult) {
	fmt.Fprint(w, "CATEGORY\tWEIGHT\tSAMPLES")
	for _, l := range labels {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%d", r.Category, r.Weight, r.Samples)
		for _, p := range r.Dist {
			fmt.Fprintf(w, "\t%.1f%%", p*100)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

// maxIndex returns the index of the largest value in dist, so the grid can
// highlight each category's modal action.
func maxIndex(dist []float64) int {
	best := 0
	for i, v := range dist {
		if v > dist[best] {
			best = i
		}
	}
	return best
}

// renderGUI renders the same report as a styled bubbles/table grid: a
// single, non-interactive render of table.Model.View(), not a running
// bubbletea program, since the driver is a one-shot CLI rather than a
// persistent TUI.
func renderGUI(labels []string, results []categoryResult) {
	lipgloss.SetColorProfile(termenv.TrueColor)

	columns := make([]table.Column, 0, len(labels)+2)
	columns = append(columns, table.Column{Title: "Category", Width: 10}, table.Column{Title: "Weight", Width: 8})
	for _, l := range labels {
		columns = append(columns, table.Column{Title: l, Width: len(l) + 2})
	}

	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		row := make(table.Row, 0, len(columns))
		row = append(row, tui.CategoryStyle.Render(r.Category), fmt.Sprintf("%.3f", r.Weight))
		best := maxIndex(r.Dist)
		for i, p := range r.Dist {
			cell := fmt.Sprintf("%.1f%%", p*100)
			if i == best && p > 0 {
				cell = tui.HighlightStyle.Render(cell)
			} else {
				cell = tui.PercentStyle.Render(cell)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#5A56E0"))
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	t.SetStyles(styles)

	fmt.Fprintln(os.Stdout, tui.HeaderStyle.Render(" huholdem | aggregated root strategy "))
	fmt.Fprintln(os.Stdout, t.View())
	fmt.Fprintln(os.Stdout, tui.FooterStyle.Render(fmt.Sprintf("%d categories solved", len(results))))
}
