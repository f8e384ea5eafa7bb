// Package tui is the interactive dashboard: a quick-start profile form and
// a filtered, paginated list of recommendations.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/techtonix/compass/internal/browse"
	"github.com/techtonix/compass/internal/browser"
)

type screen int

const (
	screenForm screen = iota
	screenResults
)

type App struct {
	ctx    context.Context
	dash   *browse.Dashboard
	open   func(string) error
	form   *quickStart
	screen screen
	cursor int

	width  int
	height int

	spinner spinner.Model
	err     error
}

// RunOpts holds all parameters for launching the dashboard.
type RunOpts struct {
	Dashboard *browse.Dashboard
	// Open launches an item URL. Defaults to browser.Open.
	Open func(string) error
}

func NewApp(ctx context.Context, opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	open := opts.Open
	if open == nil {
		open = browser.Open
	}

	return &App{
		ctx:     ctx,
		dash:    opts.Dashboard,
		open:    open,
		form:    newQuickStart(),
		spinner: sp,
	}
}

// Init shows the results for a stored profile, or the form when there is none.
func (a *App) Init() tea.Cmd {
	req, ok, err := a.dash.Start()
	if err != nil {
		a.err = err
		return nil
	}
	if !ok {
		a.screen = screenForm
		return nil
	}
	a.screen = screenResults
	return tea.Batch(a.fetchCmd(req), a.spinner.Tick)
}

// fetchCmd captures the request so the goroutine never reads App state.
func (a *App) fetchCmd(req browse.Request) tea.Cmd {
	ctx := a.ctx
	dash := a.dash
	return func() tea.Msg {
		return fetchDoneMsg{completion: dash.Run(ctx, req)}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == screenForm {
			return a, a.form.update(msg)
		}
		return a.handleResultsKey(msg)

	case profileSubmittedMsg:
		req, err := a.dash.SubmitProfile(msg.profile)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.screen = screenResults
		a.cursor = 0
		return a, tea.Batch(a.fetchCmd(req), a.spinner.Tick)

	case fetchDoneMsg:
		if a.dash.Apply(msg.completion) {
			a.cursor = 0
		}
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.dash.Browser().View().State == browse.Loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := a.dash.Browser()
	key := msg.String()

	if f, ok := filterByNumber(key); ok {
		b.SetFilter(f)
		a.cursor = 0
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "f", "tab":
		b.SetFilter(nextFilter(b.Filter(), 1))
		a.cursor = 0
	case "F", "shift+tab":
		b.SetFilter(nextFilter(b.Filter(), -1))
		a.cursor = 0
	case "n", "right", "l":
		if b.Next() {
			a.cursor = 0
		}
	case "p", "left", "h":
		if b.Prev() {
			a.cursor = 0
		}
	case "j", "down":
		if a.cursor < len(b.View().Visible)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "r":
		if req, ok := a.dash.Refresh(); ok {
			a.cursor = 0
			return a, tea.Batch(a.fetchCmd(req), a.spinner.Tick)
		}
	case "e":
		if err := a.dash.EditProfile(); err != nil {
			a.err = err
		}
		a.form = newQuickStart()
		a.screen = screenForm
		a.cursor = 0
	case "o", "enter":
		v := b.View()
		if a.cursor < len(v.Visible) {
			return a, a.openCmd(v.Visible[a.cursor].URL)
		}
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  compass")
	}

	headerLeft := headerStyle.Render("compass")
	headerRight := ""
	if p, ok := a.dash.Profile(); ok && a.screen == screenResults {
		headerRight = headerProfileStyle.Render(fmt.Sprintf("%s · %s · %s ", p.Name, p.Education, p.Industry))
	}
	gap := max(0, a.width-lipgloss.Width(headerLeft)-lipgloss.Width(headerRight))
	header := headerLeft + strings.Repeat(" ", gap) + headerRight

	var body, status string
	if a.screen == screenForm {
		body = a.form.view(a.width)
		status = renderStatusBar(" quick start", formHints, a.width)
	} else {
		v := a.dash.Browser().View()
		body = renderFilterBar(v.Filter, a.width) + "\n\n" + renderResults(v, a.cursor, a.width-2, a.spinner.View())
		status = renderStatusBar(fmt.Sprintf(" %d results · %s", v.Fetched, v.Filter), resultsHints, a.width)
	}

	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, header, body), "\n")
	if a.height > 1 {
		for len(lines) < a.height-1 {
			lines = append(lines, "")
		}
		if len(lines) > a.height-1 {
			lines = lines[:a.height-1]
		}
	}
	lines = append(lines, status)
	return strings.Join(lines, "\n")
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, opts RunOpts) error {
	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
