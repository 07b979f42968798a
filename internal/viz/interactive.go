package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Picker is a menu that lets the user choose one of a list of names, such as
// scenario presets.
type Picker struct {
	title    string
	items    []string
	info     map[string]string
	cursor   int
	chosen   string
	quitting bool
}

// NewPicker lists items in the given order. info holds an optional one line
// description per item.
func NewPicker(title string, items []string, info map[string]string) *Picker {
	return &Picker{title: title, items: items, info: info}
}

// Chosen is the selected item, or "" when the user quit.
func (p *Picker) Chosen() string { return p.chosen }

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		p.quitting = true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.items) > 0 {
			p.chosen = p.items[p.cursor]
		}
		return p, tea.Quit
	}
	return p, nil
}

func (p *Picker) View() string {
	if p.quitting || p.chosen != "" {
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	var b strings.Builder
	b.WriteString(headerStyle().Render(p.title) + "\n")
	for i, item := range p.items {
		line := fmt.Sprintf("%-16s %s", item, dim.Render(p.info[item]))
		if i == p.cursor {
			b.WriteString(selectedStyle().Render("> "+item) + strings.TrimPrefix(line, item) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(helpStyle().Render("↑↓:Move ENTER:Select Q:Quit"))
	return b.String()
}

// Pick runs a picker and returns the chosen item, or "" if the user quit.
func Pick(title string, items []string, info map[string]string) (string, error) {
	p := NewPicker(title, items, info)
	if _, err := tea.NewProgram(p).Run(); err != nil {
		return "", err
	}
	return p.Chosen(), nil
}
