package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// menuEntry identifies a main menu item.
type menuEntry int

const (
	menuRecord menuEntry = iota
	menuLibrary
	menuTrash
	menuSettings
	menuQuit
)

func (e menuEntry) String() string {
	return map[menuEntry]string{
		menuRecord:   "new recording",
		menuLibrary:  "library",
		menuTrash:    "trash",
		menuSettings: "settings",
		menuQuit:     "quit",
	}[e]
}

// menuChoiceMsg is emitted when the user activates a menu entry.
type menuChoiceMsg menuEntry

type menuModel struct {
	common *commonModel
	cursor int

	entries []menuEntry
}

func newMenuModel(common *commonModel) menuModel {
	return menuModel{
		common:  common,
		entries: []menuEntry{menuRecord, menuLibrary, menuTrash, menuSettings, menuQuit},
	}
}

func (m menuModel) update(msg tea.Msg) (menuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		entry := m.entries[m.cursor]
		return m, func() tea.Msg { return menuChoiceMsg(entry) }
	}
	return m, nil
}

func (m menuModel) view() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", appNameStyle.Render("taper"))

	for i, entry := range m.entries {
		label := entry.String()
		if i == m.cursor {
			fmt.Fprintf(&b, "  %s\n", selectedStyle.Render("> "+label))
		} else {
			fmt.Fprintf(&b, "    %s\n", label)
		}
	}

	fmt.Fprintf(&b, "\n  %s\n", subtleStyle.Render("↑/↓: move • enter: select • q: quit"))
	fmt.Fprintf(&b, "  %s\n", subtleStyle.Render(fmt.Sprintf("quality: %s (%s)",
		m.common.cfg.Recorder.Quality, m.common.cfg.Recorder.Quality.Describe())))
	return b.String()
}
