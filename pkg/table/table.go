// Package table renders pterm tables with consistent styling across
// commands.
package table

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pterm/pterm"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// PrintTable renders rows with a left padding boundary. When hasHeader is
// true the first row is styled as a bold header.
func PrintTable(rows pterm.TableData, hasHeader bool) {
	render(rows, hasHeader, true)
}

// PrintTableNoPad renders rows flush against the left margin.
func PrintTableNoPad(rows pterm.TableData, hasHeader bool) {
	render(rows, hasHeader, false)
}

func render(rows pterm.TableData, hasHeader, pad bool) {
	if len(rows) == 0 {
		return
	}
	if hasHeader {
		styled := make([]string, len(rows[0]))
		for i, cell := range rows[0] {
			styled[i] = headerStyle.Render(cell)
		}
		rows = append(pterm.TableData{styled}, rows[1:]...)
	}
	t := pterm.DefaultTable.WithData(rows)
	if hasHeader {
		t = t.WithHasHeader()
	}
	if !pad {
		t = t.WithLeftAlignment()
	}
	_ = t.Render()
}
