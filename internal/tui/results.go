package tui

import (
	"fmt"
	"strings"

	"github.com/techtonix/compass/internal/browse"
	"github.com/techtonix/compass/internal/recommend"
)

func renderItem(it recommend.Item, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(it.DisplayTitle(), width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(it.DisplayTitle(), width-4))
	}

	platform := string(it.Platform)
	if platform == "" {
		platform = "unknown"
	}
	meta := "  " + itemPlatformStyle.Render(platform) + " " + itemURLStyle.Render("· "+truncateStr(it.URL, width-len(platform)-7))

	return title + "\n" + meta
}

func renderResults(v browse.View, cursor int, width int, spin string) string {
	switch v.State {
	case browse.Loading:
		return messageStyle.Render(spin + " Loading recommendations...")
	case browse.ResultsError:
		return messageStyle.Render(browse.EmptyMessage) + "\n" +
			errorStyle.Render(fmt.Sprintf("(%s)", recommend.KindOf(v.Err)))
	case browse.ResultsEmpty:
		return messageStyle.Render(browse.EmptyMessage)
	case browse.NoProfile:
		return ""
	}

	var b strings.Builder
	for i, it := range v.Visible {
		b.WriteString(renderItem(it, i == cursor, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(messageStyle.Render(v.Summary() + "    page " + v.Pager()))
	return b.String()
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
