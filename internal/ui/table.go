package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/liftlog/internal/models"
)

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Lift", Width: 13},
		{Title: "Weight (kg)", Width: 12},
		{Title: "Reps", Width: 6},
	}
}

// liftRows converts the history into [table.Row] values in list order.
func liftRows(lifts models.History) []table.Row {
	rows := make([]table.Row, len(lifts))
	for i, l := range lifts {
		rows[i] = table.Row{l.Date, l.LiftType.Label(), l.WeightString(), strconv.Itoa(l.Reps)}
	}
	return rows
}

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.accent).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.accent).
		Bold(false)
	t.SetStyles(s)
	return t
}
