package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hyperjump/palette/internal/models"
	"github.com/hyperjump/palette/internal/search"
	"github.com/hyperjump/palette/internal/session"
)

// Searcher receives input changes. *session.Session satisfies it.
type Searcher interface {
	Input(value string)
}

// Options holds the content shown while the input is empty.
type Options struct {
	ProductTag      *models.ProductTag
	SuggestedPages  []models.SuggestedPage
	TutorialLibrary *models.SuggestedPage
	// Recent returns the current recent searches; it is called on start and after each settled query.
	Recent func() []string
}

// Updates carries session snapshots into the Bubble Tea program. Only the newest
// undelivered snapshot is kept.
type Updates struct {
	ch chan session.Snapshot
}

// NewUpdates creates an empty update channel.
func NewUpdates() *Updates {
	return &Updates{ch: make(chan session.Snapshot, 1)}
}

// Publish queues s, replacing an undelivered older snapshot. Use it as the session's update callback.
func (u *Updates) Publish(s session.Snapshot) {
	for {
		select {
		case u.ch <- s:
			return
		default:
			select {
			case <-u.ch:
			default:
			}
		}
	}
}

func (u *Updates) wait() tea.Cmd {
	return func() tea.Msg { return snapshotMsg(<-u.ch) }
}

type snapshotMsg session.Snapshot

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Enter   key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous tab"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "close"),
	),
}

// Model is the search palette. Tab 0 is the merged "all results" view; the rest follow
// the snapshot's visible tabs.
type Model struct {
	searcher Searcher
	updates  *Updates
	opts     Options

	input   textinput.Model
	spinner spinner.Model

	snapshot session.Snapshot
	recent   []string
	tab      int
	cursor   int

	selected string
	width    int
	quitting bool
}

// NewModel creates a palette model feeding searcher and listening on updates.
func NewModel(searcher Searcher, updates *Updates, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search documentation, tutorials and integrations"
	ti.Prompt = "🔍 "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	m := Model{
		searcher: searcher,
		updates:  updates,
		opts:     opts,
		input:    ti,
		spinner:  sp,
	}
	if opts.Recent != nil {
		m.recent = opts.Recent()
	}
	return m
}

// Selected returns the URL chosen with enter, or "" if the palette was closed.
func (m Model) Selected() string { return m.selected }

// Init starts the cursor blink, the spinner and the snapshot listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.updates != nil {
		cmds = append(cmds, m.updates.wait())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-8)
		return m, nil

	case snapshotMsg:
		snap := session.Snapshot(msg)
		var cmd tea.Cmd
		if m.updates != nil {
			cmd = m.updates.wait()
		}
		if snap.Version <= m.snapshot.Version {
			return m, cmd
		}
		if snap.State == session.StateSettled && m.snapshot.State != session.StateSettled && m.opts.Recent != nil {
			m.recent = m.opts.Recent()
		}
		m.snapshot = snap
		if m.tab > len(snap.Tabs) {
			m.tab = 0
		}
		m.clampCursor()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % (len(m.snapshot.Tabs) + 1)
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.PrevTab):
		n := len(m.snapshot.Tabs) + 1
		m.tab = (m.tab - 1 + n) % n
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil

	case key.Matches(msg, keys.Enter):
		if url := m.selectedURL(); url != "" {
			m.selected = url
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.cursor = 0
		if m.searcher != nil {
			m.searcher.Input(after)
		}
	}
	return m, cmd
}

func (m Model) hits() []models.Hit {
	if m.tab == 0 || m.tab > len(m.snapshot.Tabs) {
		return m.snapshot.Results
	}
	return m.snapshot.Tabs[m.tab-1].Hits
}

func (m *Model) clampCursor() {
	n := len(m.hits())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedURL() string {
	if strings.TrimSpace(m.input.Value()) == "" {
		return ""
	}
	hits := m.hits()
	if m.cursor < len(hits) {
		return hits[m.cursor].Payload.DisplayURL()
	}
	return ""
}

// View renders the palette.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Palette"))
	b.WriteString("\n")
	if m.opts.ProductTag != nil {
		b.WriteString(tagStyle.Render(m.opts.ProductTag.Name))
		b.WriteString("\n")
	}
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if strings.TrimSpace(m.input.Value()) == "" {
		b.WriteString(m.viewSuggestions())
	} else {
		b.WriteString(m.viewStatus())
		b.WriteString("\n")
		b.WriteString(m.viewTabs())
		b.WriteString("\n")
		b.WriteString(m.viewHits())
	}

	b.WriteString(helpStyle.Render("tab switch tabs • ↑/↓ move • enter open • esc close"))
	return b.String()
}

func (m Model) viewStatus() string {
	switch m.snapshot.State {
	case session.StateDebouncing, session.StateQuerying:
		return statusStyle.Render(m.spinner.View() + " searching…")
	case session.StateSettled:
		return urlStyle.Render(fmt.Sprintf("%d results", len(m.snapshot.Results)))
	}
	return ""
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, len(m.snapshot.Tabs)+1)
	label := fmt.Sprintf("All (%d)", len(m.snapshot.Results))
	if m.tab == 0 {
		parts = append(parts, activeTabStyle.Render(label))
	} else {
		parts = append(parts, tabStyle.Render(label))
	}
	for i, tab := range m.snapshot.Tabs {
		label := fmt.Sprintf("%s (%d)", tab.Label, tab.Count)
		if m.tab == i+1 {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewHits() string {
	hits := m.hits()
	if len(hits) == 0 {
		if m.snapshot.State == session.StateSettled {
			return itemStyle.Render("No results match your search.") + "\n"
		}
		return ""
	}
	var b strings.Builder
	for i, hit := range hits {
		line := fmt.Sprintf("%s %s %s",
			categoryStyle.Render(search.TabLabel(hit.Category)),
			hit.Payload.DisplayTitle(),
			urlStyle.Render(hit.Payload.DisplayURL()))
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("› " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSuggestions() string {
	var b strings.Builder
	if len(m.recent) > 0 {
		b.WriteString(sectionStyle.Render("Recent Searches"))
		b.WriteString("\n")
		for _, q := range m.recent {
			b.WriteString(itemStyle.Render(q))
			b.WriteString("\n")
		}
	}
	if len(m.opts.SuggestedPages) > 0 {
		b.WriteString(sectionStyle.Render("Suggested Pages"))
		b.WriteString("\n")
		for _, p := range m.opts.SuggestedPages {
			b.WriteString(itemStyle.Render(p.Text + " " + urlStyle.Render(p.URL)))
			b.WriteString("\n")
		}
	}
	if cta := m.opts.TutorialLibrary; cta != nil {
		b.WriteString(sectionStyle.Render(cta.Text))
		b.WriteString("\n")
		b.WriteString(itemStyle.Render(urlStyle.Render(cta.URL)))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the palette until the user selects a result or closes it, and returns the
// selected URL.
func Run(searcher Searcher, updates *Updates, opts Options) (string, error) {
	final, err := tea.NewProgram(NewModel(searcher, updates, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.Selected(), nil
	}
	return "", nil
}
