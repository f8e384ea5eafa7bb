package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/techtonix/compass/internal/profile"
	"github.com/techtonix/compass/internal/tags"
)

type formField int

const (
	fieldName formField = iota
	fieldEducation
	fieldIndustry
	fieldSkills
	fieldInterests
	fieldSubmit
	fieldCount
)

// quickStart is the profile form. Scalar fields and tag lists live in a
// profile.Capture; the text inputs only hold what is being typed.
type quickStart struct {
	capture   *profile.Capture
	name      textinput.Model
	skills    textinput.Model
	interests textinput.Model
	focus     formField

	submitted *profile.Profile
}

func newQuickStart() *quickStart {
	f := &quickStart{
		name:      newInput("Your name (optional)"),
		skills:    newInput("e.g. Python, SQL"),
		interests: newInput("e.g. Cloud, Data visualization"),
	}
	f.capture = profile.NewCapture(func(p profile.Profile) { f.submitted = &p })
	f.name.Focus()
	return f
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 80
	return ti
}

func (f *quickStart) update(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	case "ctrl+s":
		return f.submit()
	}

	switch f.focus {
	case fieldName:
		if key == "enter" {
			f.setFocus(fieldEducation)
			return nil
		}
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		f.capture.Name = f.name.Value()
		return cmd
	case fieldEducation:
		switch key {
		case "left", "h":
			f.capture.Education = cycle(profile.Educations(), f.capture.Education, -1)
		case "right", "l", " ":
			f.capture.Education = cycle(profile.Educations(), f.capture.Education, 1)
		case "enter":
			f.setFocus(fieldIndustry)
		}
		return nil
	case fieldIndustry:
		switch key {
		case "left", "h":
			f.capture.Industry = cycle(profile.Industries(), f.capture.Industry, -1)
		case "right", "l", " ":
			f.capture.Industry = cycle(profile.Industries(), f.capture.Industry, 1)
		case "enter":
			f.setFocus(fieldSkills)
		}
		return nil
	case fieldSkills:
		return updateTagInput(&f.skills, f.capture.Skills, msg)
	case fieldInterests:
		return updateTagInput(&f.interests, f.capture.Interests, msg)
	case fieldSubmit:
		if key == "enter" || key == " " {
			return f.submit()
		}
	}
	return nil
}

func (f *quickStart) submit() tea.Cmd {
	f.capture.Name = f.name.Value()
	f.capture.Submit()
	if f.submitted == nil {
		return nil
	}
	p := *f.submitted
	f.submitted = nil
	return func() tea.Msg { return profileSubmittedMsg{profile: p} }
}

func (f *quickStart) setFocus(field formField) {
	f.focus = field
	f.name.Blur()
	f.skills.Blur()
	f.interests.Blur()
	switch field {
	case fieldName:
		f.name.Focus()
	case fieldSkills:
		f.skills.Focus()
	case fieldInterests:
		f.interests.Focus()
	}
}

// updateTagInput routes a key to the tag editor first and to the text
// input only when the editor does not consume it.
func updateTagInput(in *textinput.Model, ed *tags.Editor, msg tea.KeyMsg) tea.Cmd {
	if idx, ok := chipIndex(msg.String()); ok {
		ed.RemoveAt(idx)
		return nil
	}
	ed.SetBuffer(in.Value())
	if ed.HandleKey(tagKey(msg)) {
		in.SetValue(ed.Buffer())
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

func tagKey(msg tea.KeyMsg) tags.Key {
	switch msg.String() {
	case "enter":
		return tags.KeyEnter
	case ",":
		return tags.KeyComma
	case "backspace":
		return tags.KeyBackspace
	}
	return tags.KeyOther
}

// chipIndex maps alt+1..alt+9 to a tag index.
func chipIndex(key string) (int, bool) {
	if len(key) != 5 || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

func cycle[T comparable](opts []T, cur T, step int) T {
	for i, o := range opts {
		if o == cur {
			n := len(opts)
			return opts[((i+step)%n+n)%n]
		}
	}
	return opts[0]
}

func (f *quickStart) view(width int) string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Quick Start"))
	b.WriteString("\n")

	row := func(field formField, label, value string) {
		ls := formLabelStyle
		if f.focus == field {
			ls = formFocusStyle
		}
		b.WriteString(ls.Render(label) + " " + value + "\n")
	}

	row(fieldName, "Name", f.name.View())
	row(fieldEducation, "Education", selector(f.capture.Education.String(), f.focus == fieldEducation))
	row(fieldIndustry, "Industry", selector(f.capture.Industry.String(), f.focus == fieldIndustry))
	row(fieldSkills, "Skills", renderChips(f.capture.Skills.Values(), width-14)+f.skills.View())
	row(fieldInterests, "Interests", renderChips(f.capture.Interests.Values(), width-14)+f.interests.View())

	b.WriteString("\n")
	btn := buttonStyle
	if f.focus == fieldSubmit {
		btn = buttonFocusStyle
	}
	b.WriteString(strings.Repeat(" ", 13) + btn.Render("Get recommendations"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func selector(label string, focused bool) string {
	if focused {
		return itemSelectedStyle.Render("‹ " + label + " ›")
	}
	return label
}

func renderChips(values []string, width int) string {
	if len(values) == 0 {
		return ""
	}
	var parts []string
	for _, v := range values {
		parts = append(parts, chipStyle.Render(truncateStr(v, 24)))
	}
	row := strings.Join(parts, " ")
	if width > 0 && lipgloss.Width(row) > width {
		row = lipgloss.NewStyle().Width(width).Render(row)
	}
	return row + " "
}
