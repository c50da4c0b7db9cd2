// Package tui provides the terminal user interface for ragchat.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette (tokyonight)
var (
	colorBorder   = lipgloss.Color("#3b4261")
	colorPrimary  = lipgloss.Color("#7aa2f7")
	colorSecondary = lipgloss.Color("#9ece6a")
	colorError    = lipgloss.Color("#f7768e")
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
)

// Gradient colors for the animated loading indicator
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	// Header panel style
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextMute).
			Italic(true)

	// Messages area panel
	messagesAreaStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(1)

	// User message bubble
	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Padding(0, 1).
			MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true).
			MarginLeft(4)

	// Bot message bubble
	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Input area panel
	inputPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	// Loading/spinner style
	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Status bar styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	// Welcome styles
	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Align(lipgloss.Center)

	welcomeIconStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Align(lipgloss.Center)
)
