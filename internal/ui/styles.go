package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every rendered table.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#0B6E99", Dark: "#5FAFD7"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#87D787"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFAF5F"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)
