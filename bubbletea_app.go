// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const keyHelpMarkdown = `
# Stepping through a script

| Key | Action |
|-----|--------|
| right, l, n, space | apply the next operation |
| left, h, p | go back one operation |
| home, g | empty tree |
| end, G | last operation |
| : | jump to a step number |
| tab | switch focus between the panes |
| y | copy the current snapshot as JSON |
| ? | toggle this help |
| q, esc | quit |

Node keys are coloured by balance factor: green for 0, cyan for ±1 and
red for anything else, which only shows up when an invariant is broken.
`

// Pane focus order
const (
	focusEntries = iota
	focusTree
	focusDetails
	focusCount
)

// Model is the step viewer state
type Model struct {
	steps *stepper
	step  int
	frame frame
	ready bool
	color bool

	entriesList  list.Model
	treeViewport viewport.Model
	infoViewport viewport.Model
	gotoInput    textinput.Model

	focusIndex int
	jumping    bool
	showHelp   bool
	status     string

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	width  int
	height int
}

// Styles holds all the styling for the viewer
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// entryItem is one script entry in the side list
type entryItem struct {
	step  int
	label string
	text  string
}

func (i entryItem) FilterValue() string { return i.text }
func (i entryItem) Title() string       { return fmt.Sprintf("%d. %s", i.step, i.text) }
func (i entryItem) Description() string { return "label " + i.label }

func entryText(name string, key *int) string {
	if key == nil {
		return name
	}
	return fmt.Sprintf("%s %d", name, *key)
}

// InitialModel creates the viewer positioned on the empty tree.
func InitialModel(steps *stepper, color bool) Model {
	items := []list.Item{entryItem{step: 0, label: "-", text: "empty tree"}}
	for i, e := range steps.script.Entries {
		items = append(items, entryItem{step: i + 1, label: e.Label, text: entryText(e.Name, e.Key)})
	}

	entriesList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	entriesList.SetShowTitle(false)
	entriesList.SetShowHelp(false)
	entriesList.SetFilteringEnabled(false)

	gi := textinput.New()
	gi.Placeholder = "step number"
	gi.CharLimit = 9
	gi.Width = 12

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := Model{
		steps:           steps,
		color:           color,
		entriesList:     entriesList,
		treeViewport:    viewport.New(0, 0),
		infoViewport:    viewport.New(0, 0),
		gotoInput:       gi,
		focusIndex:      focusTree,
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	m.goTo(0)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.jumping {
			return m.updateJump(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refresh()
		m.ready = true
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ":
		m.goTo(m.step + 1)
	case "left", "h", "p":
		m.goTo(m.step - 1)
	case "home", "g":
		m.goTo(0)
	case "end", "G":
		m.goTo(m.steps.Last())
	case "tab":
		m.focusIndex = (m.focusIndex + 1) % focusCount
	case "?", "f1":
		m.showHelp = !m.showHelp
		m.refresh()
	case ":":
		m.jumping = true
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink
	case "y":
		m.copySnapshot()
	case "enter":
		if m.focusIndex == focusEntries {
			m.goTo(m.entriesList.Index())
		}
	default:
		switch m.focusIndex {
		case focusEntries:
			m.entriesList, cmd = m.entriesList.Update(msg)
		case focusTree:
			m.treeViewport, cmd = m.treeViewport.Update(msg)
		case focusDetails:
			m.infoViewport, cmd = m.infoViewport.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jumping = false
		m.gotoInput.Blur()
		return m, nil
	case "enter":
		m.jumping = false
		m.gotoInput.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.gotoInput.Value()))
		if err != nil {
			m.status = m.styles.ErrorMessage.Render("not a step number: " + m.gotoInput.Value())
			return m, nil
		}
		m.goTo(n)
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// goTo moves to frame step, clamped to the reachable range.
func (m *Model) goTo(step int) {
	m.frame = m.steps.Frame(step)
	m.step = m.frame.Step
	m.entriesList.Select(m.step)
	m.status = ""
	m.refresh()
}

func (m *Model) refresh() {
	tree, err := renderTree(m.frame.Snapshot, m.color)
	if err != nil {
		tree = err.Error()
	}
	m.treeViewport.SetContent(tree)

	if m.showHelp {
		if rendered, err := m.glamourRenderer.Render(keyHelpMarkdown); err == nil {
			m.infoViewport.SetContent(rendered)
		} else {
			m.infoViewport.SetContent(keyHelpMarkdown)
		}
		return
	}
	m.infoViewport.SetContent(m.details())
	m.infoViewport.GotoTop()
}

func (m Model) details() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Step %d of %d\n", m.step, len(m.steps.script.Entries))
	if e, ok := m.steps.Entry(m.step); ok {
		fmt.Fprintf(&b, "Entry %q: %s\n", e.Label, entryText(e.Name, e.Key))
	}
	if m.frame.Result != "" {
		fmt.Fprintf(&b, "Result: %s\n", m.frame.Result)
	}
	if m.frame.Err != nil {
		b.WriteString(m.styles.ErrorMessage.Render("Error: "+m.frame.Err.Error()) + "\n")
	}
	if m.step == m.steps.Last() && m.step < len(m.steps.script.Entries) {
		b.WriteString(m.styles.ErrorMessage.Render("Script halted, the tree is no longer consistent") + "\n")
	}

	s := m.frame.Snapshot
	fmt.Fprintf(&b, "\nSize %d, height %d\n\n", s.Size, s.Height)

	if data, err := json.MarshalIndent(s.Document(), "", "  "); err == nil {
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) copySnapshot() {
	data, err := json.MarshalIndent(m.frame.Snapshot.Document(), "", "    ")
	if err == nil {
		err = clipboard.WriteAll(string(data))
	}
	if err != nil {
		m.status = m.styles.ErrorMessage.Render("📋 copy failed: " + err.Error())
		return
	}
	m.status = m.styles.SuccessMessage.Render(fmt.Sprintf("📋 Copied snapshot of step %d", m.step))
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	listWidth, treeWidth, infoWidth, paneHeight := m.paneSizes()

	box := func(focus int, title string, width int, content string) string {
		style := m.styles.BorderBlurred
		if m.focusIndex == focus {
			style = m.styles.BorderFocused
			title += " (Active)"
		}
		return style.
			Width(width).
			Height(paneHeight).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				m.styles.Title.Width(width-4).Render(title),
				content,
			))
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		box(focusEntries, " 📋 Operations ", listWidth, m.entriesList.View()),
		box(focusTree, fmt.Sprintf(" 🌳 Tree after step %d ", m.step), treeWidth, m.treeViewport.View()),
		box(focusDetails, " 📖 Details ", infoWidth, m.infoViewport.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

func (m Model) paneSizes() (listWidth, treeWidth, infoWidth, paneHeight int) {
	listWidth = m.width/4 - 1
	infoWidth = m.width/3 - 1
	treeWidth = m.width - listWidth - infoWidth - 6
	paneHeight = m.height - 5
	return
}

func (m *Model) updateLayout() {
	listWidth, treeWidth, infoWidth, paneHeight := m.paneSizes()

	m.entriesList.SetSize(listWidth-2, paneHeight-2)
	m.treeViewport.Width = treeWidth - 2
	m.treeViewport.Height = paneHeight - 2
	m.infoViewport.Width = infoWidth - 2
	m.infoViewport.Height = paneHeight - 2
}

func (m Model) renderFooter() string {
	if m.jumping {
		return lipgloss.NewStyle().
			Padding(1, 0, 0, 2).
			Render(m.styles.InputPrompt.Render("Go to step: ") + m.gotoInput.View())
	}

	keys := []string{"→/←", "g/G", ":", "tab", "y", "?", "q"}
	descs := []string{"step", "first/last", "jump", "switch focus", "copy snapshot", "help", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	footer := strings.Join(helpEntries, " • ")
	if m.status != "" {
		footer += "   " + m.status
	}
	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(footer)
}

// runBubbleTeaApp starts the step viewer
func runBubbleTeaApp(steps *stepper, color bool) error {
	InitializeColors()
	if !color {
		DisableColors()
	}

	program := tea.NewProgram(
		InitialModel(steps, color),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
