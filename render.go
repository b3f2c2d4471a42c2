package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	notationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginLeft(2)
	summaryStyle  = lipgloss.NewStyle().Faint(true).MarginLeft(2)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	invalidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderResult lays out a calculation result for the terminal.
func renderResult(heading, notation, summary string, instructions, warnings []string, valid bool) string {
	lines := []string{headingStyle.Render(heading)}
	if valid {
		lines = append(lines, notationStyle.Render(notation), summaryStyle.Render(summary))
		for i, line := range instructions {
			lines = append(lines, "  "+strconv.Itoa(i+1)+". "+line)
		}
	} else {
		for _, line := range instructions {
			lines = append(lines, invalidStyle.Render("  "+line))
		}
	}
	for _, w := range warnings {
		lines = append(lines, warningStyle.Render("  ! "+w))
	}
	return strings.Join(lines, "\n")
}
