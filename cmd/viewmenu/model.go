package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"read-frame/pkg/bridge"
	"read-frame/pkg/display"
	"read-frame/pkg/logging"
	"read-frame/pkg/viewsettings"
	"read-frame/widgets/fontlayout"
	"read-frame/widgets/viewmenu"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Scrolled key.Binding
	Layout   key.Binding
	Dark     key.Binding
	Invert   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		Scrolled: key.NewBinding(key.WithKeys("J"), key.WithHelp(viewmenu.ScrolledModeHint, "scrolled")),
		Layout:   key.NewBinding(key.WithKeys("F"), key.WithHelp(viewmenu.FontLayoutHint, "font & layout")),
		Dark:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		Invert:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Scrolled, k.Layout, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Activate},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Scrolled, k.Layout, k.Dark, k.Invert},
		{k.Back, k.Quit},
	}
}

type modelState int

const (
	stateMenu modelState = iota
	stateDialog
)

// model drives one book's view settings from the terminal through the same
// bridge the reader uses
type model struct {
	bookKey string
	store   viewsettings.Store
	surface *display.Surface
	bridge  *bridge.Bridge
	menu    *viewmenu.Widget
	dialog  *fontlayout.Widget
	state   modelState
	status  string
	keys    keyMap
	help    help.Model
}

func newModel(bookKey string, store viewsettings.Store, renderers bridge.Renderers) *model {
	m := &model{
		bookKey: bookKey,
		store:   store,
		surface: display.NewSurface(),
		menu:    viewmenu.NewWidget(),
		dialog:  fontlayout.NewWidget(),
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.bridge = bridge.New(bookKey, bridge.Deps{
		Store:              store,
		Renderers:          renderers,
		Surface:            m.surface,
		OpenSettingsDialog: m.openDialog,
	})
	// The bridge is not safe for concurrent use, so it mounts here rather
	// than in a command
	m.setErr(m.bridge.Mount())
	m.menu.SetItems(viewmenu.BuildItems(m.bridge.State()))
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == stateDialog {
			m.updateDialog(msg)
		} else {
			m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m *model) updateMenu(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menu.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.menu.MoveSelection(1)
	case key.Matches(msg, m.keys.Left):
		m.menu.MoveColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.menu.MoveColumn(1)
	case key.Matches(msg, m.keys.Activate):
		if it, ok := m.menu.SelectedItem(); ok {
			m.activate(it)
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.activateControl(viewmenu.ZoomIn)
	case key.Matches(msg, m.keys.ZoomOut):
		m.activateControl(viewmenu.ZoomOut)
	case key.Matches(msg, m.keys.Reset):
		m.activateControl(viewmenu.ZoomReset)
	case key.Matches(msg, m.keys.Scrolled):
		m.activateControl(viewmenu.ScrolledMode)
	case key.Matches(msg, m.keys.Layout):
		m.activateControl(viewmenu.FontLayout)
	case key.Matches(msg, m.keys.Dark):
		m.activateControl(viewmenu.DarkMode)
	case key.Matches(msg, m.keys.Invert):
		m.activateControl(viewmenu.InvertColors)
	}
}

func (m *model) activateControl(c viewmenu.Control) {
	for _, it := range m.menu.Items() {
		if it.Control == c {
			m.activate(it)
			return
		}
	}
}

func (m *model) activate(it viewmenu.Item) {
	err := viewmenu.Activate(m.bridge, it)
	if err == nil && it.Control == viewmenu.DarkMode && !it.Disabled {
		err = m.persistTheme()
	}
	m.setErr(err)
	m.menu.SetItems(viewmenu.BuildItems(m.bridge.State()))
}

// persistTheme writes the bridge's dark mode flag into the record, which is
// how the reader picks it up.
func (m *model) persistTheme() error {
	vs, err := m.store.Get(m.bookKey)
	if err != nil {
		return fmt.Errorf("read view settings: %w", err)
	}
	vs.Normalize()
	vs.Theme = viewsettings.ThemeLight
	if m.bridge.State().Dark {
		vs.Theme = viewsettings.ThemeDark
	}
	if err := m.store.Set(m.bookKey, vs); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (m *model) openDialog() {
	vs, err := m.store.Get(m.bookKey)
	if err != nil {
		m.setErr(err)
	}
	vs.Normalize()
	m.dialog.SetItems(fontlayout.BuildItems(vs))
	m.state = stateDialog
}

func (m *model) updateDialog(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.dialog.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.dialog.MoveSelection(1)
	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	case key.Matches(msg, m.keys.Activate):
		if m.dialog.Selected() == fontlayout.BackEntry {
			m.state = stateMenu
		}
	case key.Matches(msg, m.keys.Back):
		m.state = stateMenu
	}
}

func (m *model) adjust(delta int) {
	vs, err := fontlayout.Adjust(m.store, m.bookKey, m.dialog.Selected(), delta)
	m.setErr(err)
	if err == nil {
		m.dialog.SetItems(fontlayout.BuildItems(vs))
	}
}

func (m *model) setErr(err error) {
	if err != nil {
		logging.Logger().Warn("view settings update failed", zap.String("book", m.bookKey), zap.Error(err))
		m.status = "Error: Failed to save setting"
		return
	}
	m.status = ""
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("View"))
	b.WriteString(" ")
	b.WriteString(m.bookKey)
	b.WriteString("\n\n")

	if m.state == stateDialog {
		m.viewDialog(&b)
	} else {
		m.viewMenu(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) viewMenu(b *strings.Builder) {
	items := m.menu.Items()
	selected := m.menu.Selected()

	render := func(i int, text string) string {
		switch {
		case i == selected:
			return selectedStyle.Render(text)
		case items[i].Disabled:
			return disabledStyle.Render(text)
		}
		return text
	}

	// Zoom row
	b.WriteString("  ")
	for i := 0; i < 3 && i < len(items); i++ {
		b.WriteString(render(i, "["+items[i].Label()+"]"))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for i := 3; i < len(items); i++ {
		b.WriteString("  ")
		b.WriteString(render(i, items[i].Label()))
		if items[i].Hint != "" {
			b.WriteString("  ")
			b.WriteString(hintStyle.Render(items[i].Hint))
		}
		b.WriteString("\n")
	}

	if m.surface.Inverted(m.bridge.State().Dark) {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("colors inverted"))
		b.WriteString("\n")
	}
}

func (m *model) viewDialog(b *strings.Builder) {
	b.WriteString("Font & Layout\n\n")
	vs, err := m.store.Get(m.bookKey)
	if err != nil {
		vs = viewsettings.Defaults()
	}
	vs.Normalize()

	for i, it := range fontlayout.BuildItems(vs) {
		line := it.Title
		if it.Value != "" {
			line += ": " + it.Value
		}
		if i == m.dialog.Selected() {
			line = selectedStyle.Render(line)
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
