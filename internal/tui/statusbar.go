package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	formHints    = " tab next  ←/→ choose  enter/, add tag  alt+N remove tag  ctrl+s submit  ctrl+c quit "
	resultsHints = " f filter  n/p page  r refresh  e edit profile  o open  q quit "
)

func renderStatusBar(left, hints string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(hints)
	if gap < 0 {
		gap = 0
	}
	bar := left + fmt.Sprintf("%*s", gap, "") + hints
	return statusBarStyle.Width(width).Render(bar)
}
