package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"toolterm/internal/prefs"
	"toolterm/internal/theme"
	"toolterm/internal/viewport"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
	model   *model
}

// NewProgram constructs a new interactive session over the preference store.
// The watcher is fed every terminal resize.
func NewProgram(store *prefs.Store, watcher *viewport.Watcher, logger zerolog.Logger) *Program {
	m := newModel(store, watcher, logger)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen()), model: m}
}

// Start launches the Bubble Tea program and blocks until it exits.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	defer p.model.close()
	_, err := p.program.Run()
	return err
}

type viewState int

const (
	stateGallery viewState = iota
	stateFilter
)

type menuItem struct {
	icon  string
	title string
}

var toolMenu = []menuItem{
	{icon: "⚿", title: "Token generator"},
	{icon: "#", title: "Hash text"},
	{icon: "◈", title: "UUID generator"},
	{icon: "⇄", title: "Base64 converter"},
	{icon: "{}", title: "JSON prettify"},
	{icon: "◐", title: "Color converter"},
	{icon: "⏱", title: "Date converter"},
	{icon: "⌘", title: "Keycode info"},
}

type model struct {
	state  viewState
	prefs  *prefs.Store
	view   *viewport.Watcher
	logger zerolog.Logger
	styles theme.Styles
	keys   keyMap
	help   help.Model

	filter textinput.Model
	themes []theme.Record
	cursor int

	width       int
	height      int
	infoMessage string

	unsubscribe func()
}

func newModel(store *prefs.Store, watcher *viewport.Watcher, logger zerolog.Logger) *model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "Type to filter themes, esc to clear"
	filter.CharLimit = 32

	m := &model{
		state:  stateGallery,
		prefs:  store,
		view:   watcher,
		logger: logger,
		keys:   newKeyMap(),
		help:   help.New(),
		filter: filter,
		themes: theme.All(),
	}
	m.applyStyles(store.CurrentTheme())
	m.cursor = m.indexOf(store.CurrentTheme().Key)
	m.unsubscribe = store.Subscribe(m.onPrefsChanged)
	return m
}

func (m *model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *model) onPrefsChanged(ev prefs.Event) {
	switch ev {
	case prefs.EventTheme:
		current := m.prefs.CurrentTheme()
		m.applyStyles(current)
		m.infoMessage = "Theme: " + current.Name
	case prefs.EventMenu:
		if m.prefs.MenuCollapsed() {
			m.infoMessage = "Menu collapsed"
		} else {
			m.infoMessage = "Menu expanded"
		}
	}
	m.logger.Debug().Str("event", ev.String()).Msg("preferences changed")
}

func (m *model) applyStyles(rec theme.Record) {
	m.styles = theme.NewStyles(rec)
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.HelpValue
	m.help.Styles.FullDesc = m.styles.HelpValue
	m.filter.PromptStyle = m.styles.Accent
	m.filter.TextStyle = m.styles.Text
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.view != nil {
			m.view.ResizeColumns(msg.Width)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateFilter:
		cmd = m.updateFilter(msg)
	default:
		m.state = stateGallery
		cmd = m.updateGallery(msg)
	}
	return m, cmd
}

func (m *model) updateGallery(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.themes)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Apply):
		if rec, ok := m.selected(); ok {
			m.prefs.SetTheme(rec.Key)
		}
	case key.Matches(keyMsg, m.keys.ToggleDark):
		m.prefs.ToggleDark()
		m.cursor = m.indexOf(m.prefs.CurrentTheme().Key)
	case key.Matches(keyMsg, m.keys.ToggleMenu):
		m.prefs.SetMenuCollapsed(!m.prefs.MenuCollapsed())
	case key.Matches(keyMsg, m.keys.Back):
		m.filter.SetValue("")
		m.applyFilter()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Filter):
		m.state = stateFilter
		m.infoMessage = ""
		return m.filter.Focus()
	}
	return nil
}

func (m *model) updateFilter(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.filter.SetValue("")
			m.filter.Blur()
			m.state = stateGallery
			m.applyFilter()
			return nil
		case tea.KeyEnter:
			m.filter.Blur()
			m.state = stateGallery
			return nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	all := theme.All()
	if query == "" {
		m.themes = all
	} else {
		filtered := make([]theme.Record, 0, len(all))
		for _, rec := range all {
			if strings.Contains(strings.ToLower(rec.Name), query) ||
				strings.Contains(rec.Key, query) ||
				string(rec.Base) == query {
				filtered = append(filtered, rec)
			}
		}
		m.themes = filtered
	}
	if m.cursor >= len(m.themes) {
		m.cursor = len(m.themes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) selected() (theme.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.themes) {
		return theme.Record{}, false
	}
	return m.themes[m.cursor], true
}

func (m *model) indexOf(key string) int {
	for i, rec := range m.themes {
		if rec.Key == key {
			return i
		}
	}
	return 0
}

func (m *model) View() string {
	sider := m.viewMenu()
	main := m.viewGallery()
	return lipgloss.JoinHorizontal(lipgloss.Top, sider, main) + "\n"
}

func (m *model) viewMenu() string {
	lines := []string{}
	if m.prefs.MenuCollapsed() {
		for _, item := range toolMenu {
			lines = append(lines, item.icon)
		}
	} else {
		lines = append(lines, m.styles.Subtitle.Render("Tools"), "")
		for _, item := range toolMenu {
			lines = append(lines, item.icon+" "+item.title)
		}
	}
	return m.styles.Sider.Render(strings.Join(lines, "\n"))
}

func (m *model) viewGallery() string {
	current := m.prefs.CurrentTheme()
	mode := "light"
	if m.prefs.IsDarkTheme() {
		mode = "dark"
	}

	lines := []string{m.styles.Title.Render("Themes")}
	lines = append(lines, m.styles.Faint.Render(fmt.Sprintf("Current: %s (%s)", current.Name, mode)))
	lines = append(lines, m.styles.Border.Render(strings.Repeat("─", 44)))

	if m.state == stateFilter || m.filter.Value() != "" {
		lines = append(lines, m.filter.View(), "")
	}
	if len(m.themes) == 0 {
		lines = append(lines, m.styles.Danger.Render("No themes match"))
	}
	for i, rec := range m.themes {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Accent.Render("> ")
		}
		active := " "
		if rec.Key == current.Key {
			active = m.styles.Success.Render("●")
		}
		label := fmt.Sprintf("%-22s %-10s %s", rec.Name, rec.Key, rec.Base)
		switch {
		case i == m.cursor && rec.Key == current.Key:
			label = m.styles.Selected.Render(label)
		case i == m.cursor:
			label = m.styles.Highlight.Render(label)
		default:
			label = m.styles.Text.Render(label)
		}
		swatches := theme.Swatch(rec.Colors.Primary, 2) + theme.Swatch(rec.Colors.Background, 2)
		lines = append(lines, marker+active+" "+swatches+" "+label)
	}
	if rec, ok := m.selected(); ok {
		lines = append(lines, "", m.styles.Faint.Render(rec.Description))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.styles.Success.Render(m.infoMessage))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return m.styles.Card.Render(strings.Join(lines, "\n"))
}
