package messages

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AF00")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
)

func styleFor(s Status) lipgloss.Style {
	switch s {
	case StatusSuccess:
		return successStyle
	case StatusError:
		return errorStyle
	case StatusWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// Render formats m as one line: a status-coloured title, then the text.
func Render(m Message) string {
	title := styleFor(m.Status).Render(m.Title)
	if m.Text == "" {
		return title
	}
	return title + " " + textStyle.Render(m.Text)
}
