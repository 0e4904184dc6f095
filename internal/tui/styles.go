package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noStyle      = lipgloss.NewStyle()
	cursorStyle  = focusedStyle

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("240"))
	activeTab    = tabStyle.Foreground(lipgloss.Color("205")).Bold(true).Underline(true)
	entryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = list.DefaultStyles().HelpStyle.PaddingLeft(1)
	docStyle     = lipgloss.NewStyle().Margin(1, 2)

	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
)

func button(label string, focused bool) string {
	if focused {
		return focusedStyle.Render("[ " + label + " ]")
	}
	return fmt.Sprintf("[ %s ]", blurredStyle.Render(label))
}

// swatch renders a small block filled with a #rrggbb color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("      ")
}
