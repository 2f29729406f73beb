package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ngmaloney/weather-terminal/internal/grid"
)

const (
	labelColumnWidth = 28
	valueColumnWidth = 20
)

// renderGrid draws g as a table with one row per field: the field name
// followed by one value per column
func renderGrid(g grid.Grid) string {
	if len(g.Columns) == 0 {
		return mutedStyle.Render("No data available")
	}

	rows := make([][]string, len(g.Fields))
	classes := make([][]grid.CellClass, len(g.Fields))
	for j, f := range g.Fields {
		row := []string{f.Name}
		for _, c := range g.Row(j) {
			row = append(row, c.Value)
			classes[j] = append(classes[j], c.Class)
		}
		rows[j] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(gridBorderStyle).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return labelStyle
			}
			if row < 0 || row >= len(classes) || col-1 >= len(classes[row]) {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return cellStyle(classes[row][col-1])
		})

	return t.String()
}

func cellStyle(class grid.CellClass) lipgloss.Style {
	switch class {
	case grid.ClassHeader:
		return headerCellStyle
	case grid.ClassDay:
		return dayCellStyle
	default:
		return nightCellStyle
	}
}

// columnsPerPage returns how many forecast columns fit in width
func columnsPerPage(width int) int {
	n := (width - labelColumnWidth) / valueColumnWidth
	if n < 1 {
		return 1
	}
	return n
}

// renderTabBar draws the Current / Forecast tab headers
func renderTabBar(active Tab) string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		style := tabStyle
		if Tab(i) == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// pageIndicator renders e.g. "slots 1-4 of 40"
func pageIndicator(offset, shown, total int) string {
	if total == 0 {
		return ""
	}
	return mutedStyle.Render(fmt.Sprintf("slots %d-%d of %d", offset+1, offset+shown, total))
}
