package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorTabActive = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorTabBg     = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerProfileStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Align(lipgloss.Right)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemPlatformStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	itemURLStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorTabActive).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Background(colorTabBg).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			PaddingLeft(2)

	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(12)

	formFocusStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Width(12)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Background(colorTabBg).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Background(colorTabBg).
			Padding(0, 2)

	buttonFocusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorTabActive).
				Padding(0, 2).
				Bold(true)
)
