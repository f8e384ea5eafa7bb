package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/techtonix/compass/internal/browse"
)

// nextFilter cycles through the offered filters. A filter outside the
// offered set moves to All.
func nextFilter(cur browse.Filter, step int) browse.Filter {
	opts := browse.FilterOptions()
	idx := -1
	for i, f := range opts {
		if f == cur {
			idx = i
			break
		}
	}
	if idx < 0 {
		return browse.All
	}
	n := len(opts)
	return opts[((idx+step)%n+n)%n]
}

// filterByNumber maps "0".."9" onto the offered filters; "0" is All.
func filterByNumber(key string) (browse.Filter, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return browse.Filter{}, false
	}
	opts := browse.FilterOptions()
	idx := int(key[0] - '0')
	if idx >= len(opts) {
		return browse.Filter{}, false
	}
	return opts[idx], true
}

func renderFilterBar(active browse.Filter, width int) string {
	var parts []string
	offered := false
	for i, f := range browse.FilterOptions() {
		style := tabInactiveStyle
		if f == active {
			style = tabActiveStyle
			offered = true
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", i, f)))
	}
	if !offered {
		parts = append(parts, tabActiveStyle.Render(active.String()))
	}
	row := strings.Join(parts, " ")
	return lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(row)
}
