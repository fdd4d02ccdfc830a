package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/navy/internal/ui/style"
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Header
			}
			return style.Cell
		}).
		String()
}

func renderState(state string) string {
	return lipgloss.NewStyle().
		Foreground(style.StateColor(state)).
		Render(style.StateIcon(state) + " " + state)
}
