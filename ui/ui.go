// Package ui provides the menu, library, trash, and settings screens. The
// recording session itself runs outside of this program, on a plain
// terminal, so the TUI exits with a Choice the caller acts on.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/taper/recorder/audio"
)

// Choice is what the caller should do after the program exits.
type Choice int

const (
	// ChoiceQuit ends the application.
	ChoiceQuit Choice = iota
	// ChoiceRecord starts a recording session and re-enters the TUI
	// afterwards.
	ChoiceRecord
)

// NewProgram returns a new Tea program. out is the playback device used by
// the library screens.
func NewProgram(cfg Config, out audio.OutputDevice) *tea.Program {
	log.Debug("starting tui", "quality", cfg.Recorder.Quality, "recordings", cfg.Recorder.RecordingsDir)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(cfg, out), opts...)
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// state is the top-level application state.
type state int

const (
	stateShowMenu state = iota
	stateShowLibrary
	stateShowTrash
	stateShowSettings
)

func (s state) String() string {
	return map[state]string{
		stateShowMenu:     "showing menu",
		stateShowLibrary:  "showing library",
		stateShowTrash:    "showing trash",
		stateShowSettings: "showing settings",
	}[s]
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	cfg    Config
	out    audio.OutputDevice
	width  int
	height int
}

// Model is the top-level model. After Run returns, Choice tells the caller
// what to do next.
type Model struct {
	common   *commonModel
	state    state
	fatalErr error

	// Choice is set right before the program quits.
	Choice Choice

	menu     menuModel
	library  libraryModel
	trash    libraryModel
	settings settingsModel
}

func newModel(cfg Config, out audio.OutputDevice) Model {
	common := commonModel{cfg: cfg, out: out}
	return Model{
		common:   &common,
		state:    stateShowMenu,
		menu:     newMenuModel(&common),
		library:  newLibraryModel(&common, false),
		trash:    newLibraryModel(&common, true),
		settings: newSettingsModel(&common),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		// Ctrl+C always quits no matter where in the application you are.
		case "ctrl+c":
			m.Choice = ChoiceQuit
			return m, tea.Quit

		case "q":
			// Only quit from the top level; subviews may use the key or
			// want an explicit escape first.
			if m.state == stateShowMenu {
				m.Choice = ChoiceQuit
				return m, tea.Quit
			}

		case "esc":
			if m.state != stateShowMenu && !m.subviewCapturesKeys() {
				m.stopPlayback()
				m.state = stateShowMenu
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.library.setSize(msg.Width, msg.Height)
		m.trash.setSize(msg.Width, msg.Height)

	case menuChoiceMsg:
		switch menuEntry(msg) {
		case menuRecord:
			m.Choice = ChoiceRecord
			return m, tea.Quit
		case menuLibrary:
			m.state = stateShowLibrary
			return m, m.library.load()
		case menuTrash:
			m.state = stateShowTrash
			return m, m.trash.load()
		case menuSettings:
			m.state = stateShowSettings
			return m, nil
		case menuQuit:
			m.Choice = ChoiceQuit
			return m, tea.Quit
		}

	case errMsg:
		m.fatalErr = msg.err
		log.Error("tui error", "error", msg.err)
		return m, nil
	}

	// If there's been an error, any key returns to the menu.
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.fatalErr = nil
			m.state = stateShowMenu
		}
		return m, nil
	}

	switch m.state {
	case stateShowMenu:
		newMenu, cmd := m.menu.update(msg)
		m.menu = newMenu
		cmds = append(cmds, cmd)
	case stateShowLibrary:
		newLibrary, cmd := m.library.update(msg)
		m.library = newLibrary
		cmds = append(cmds, cmd)
	case stateShowTrash:
		newTrash, cmd := m.trash.update(msg)
		m.trash = newTrash
		cmds = append(cmds, cmd)
	case stateShowSettings:
		newSettings, cmd := m.settings.update(msg)
		m.settings = newSettings
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// subviewCapturesKeys reports whether the active subview is in a text-entry
// state and should see every key, including esc.
func (m Model) subviewCapturesKeys() bool {
	switch m.state {
	case stateShowLibrary:
		return m.library.renaming
	case stateShowTrash:
		return m.trash.renaming
	}
	return false
}

// stopPlayback ends any stored-recording playback before leaving a screen.
func (m *Model) stopPlayback() {
	m.library.stopPlayback()
	m.trash.stopPlayback()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr)
	}

	switch m.state {
	case stateShowLibrary:
		return m.library.view()
	case stateShowTrash:
		return m.trash.view()
	case stateShowSettings:
		return m.settings.view()
	default:
		return m.menu.view()
	}
}

func errorView(err error) string {
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		errorTitleStyle.Render("ERROR"),
		err,
		subtleStyle.Render("press any key to return"),
	)
	return "\n" + indent(s, 3)
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}
