package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/dgnsrekt/taper/internal/library"
)

// recordingItem adapts a library entry to the bubbles list.
type recordingItem struct {
	entry library.Entry
}

func (i recordingItem) Title() string { return i.entry.Name }

func (i recordingItem) Description() string {
	return fmt.Sprintf("%s • %s • %s",
		i.entry.Duration.Round(time.Second),
		i.entry.HumanSize(),
		humanize.Time(i.entry.ModTime))
}

func (i recordingItem) FilterValue() string { return i.entry.Name }

type loadedEntriesMsg struct {
	trash   bool
	entries []library.Entry
}

type playbackDoneMsg struct {
	trash bool
}

// libraryModel drives both the library and the trash screens; the trash
// variant swaps the directory and the destructive key actions.
type libraryModel struct {
	common *commonModel
	trash  bool

	list     list.Model
	rename   textinput.Model
	renaming bool
	status   string
	order    library.SortOrder

	player *storedPlayer
}

func newLibraryModel(common *commonModel, trash bool) libraryModel {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	if trash {
		l.Title = "trash"
	} else {
		l.Title = "library"
	}
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		if trash {
			return []key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/stop")),
				key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
				key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete forever")),
				key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
			}
		}
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/stop")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "trash")),
			key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		}
	}

	rename := textinput.New()
	rename.Prompt = "rename: "
	rename.CharLimit = 120

	return libraryModel{
		common: common,
		trash:  trash,
		list:   l,
		rename: rename,
		player: &storedPlayer{},
	}
}

func (m libraryModel) dir() string {
	if m.trash {
		return m.common.cfg.Recorder.TrashDir()
	}
	return m.common.cfg.Recorder.RecordingsDir
}

// load lists the directory off the update loop.
func (m libraryModel) load() tea.Cmd {
	dir, trash, order := m.dir(), m.trash, m.order
	return func() tea.Msg {
		entries, err := library.List(dir, order)
		if err != nil {
			return errMsg{err}
		}
		return loadedEntriesMsg{trash: trash, entries: entries}
	}
}

func (m *libraryModel) setSize(w, h int) {
	m.list.SetSize(w-4, h-4)
}

func (m libraryModel) selected() (library.Entry, bool) {
	item, ok := m.list.SelectedItem().(recordingItem)
	if !ok {
		return library.Entry{}, false
	}
	return item.entry, true
}

func (m *libraryModel) stopPlayback() {
	m.player.stop()
}

func (m libraryModel) update(msg tea.Msg) (libraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedEntriesMsg:
		if msg.trash != m.trash {
			return m, nil
		}
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = recordingItem{entry: e}
		}
		return m, m.list.SetItems(items)

	case playbackDoneMsg:
		if msg.trash == m.trash {
			m.player.reap()
		}
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}

		// pass every key to the list while filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			return m.togglePlayback()

		case "o":
			if m.order == library.SortNewest {
				m.order = library.SortName
				m.status = "sorted by name"
			} else {
				m.order = library.SortNewest
				m.status = "sorted by newest"
			}
			return m, m.load()

		case "r":
			entry, ok := m.selected()
			if !ok {
				return m, nil
			}
			if m.trash {
				if err := library.Restore(entry); err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.status = "restored " + entry.Name
				return m, m.load()
			}
			m.renaming = true
			m.rename.SetValue(strings.TrimSuffix(entry.Name, ".wav"))
			m.rename.Focus()
			return m, textinput.Blink

		case "x":
			entry, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.player.stop()
			if m.trash {
				if err := library.Purge(entry); err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.status = "deleted " + entry.Name
			} else {
				if err := library.Trash(entry); err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.status = "trashed " + entry.Name
			}
			return m, m.load()
		}
	}

	newList, cmd := m.list.Update(msg)
	m.list = newList
	return m, cmd
}

func (m libraryModel) updateRename(msg tea.KeyMsg) (libraryModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renaming = false
		m.rename.Blur()
		return m, nil
	case "enter":
		m.renaming = false
		m.rename.Blur()
		entry, ok := m.selected()
		if !ok {
			return m, nil
		}
		renamed, err := library.Rename(entry, m.rename.Value())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "renamed to " + renamed.Name
		return m, m.load()
	}
	newInput, cmd := m.rename.Update(msg)
	m.rename = newInput
	return m, cmd
}

// togglePlayback starts playing the selected recording, or stops the one
// already playing.
func (m libraryModel) togglePlayback() (libraryModel, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}

	if m.player.stopIfPlaying(entry.Path) {
		m.status = "stopped"
		return m, nil
	}
	m.player.stop()

	done, err := m.player.play(m.common.out, entry.Path)
	if err != nil {
		log.Warn("playing recording", "path", entry.Path, "error", err)
		m.status = err.Error()
		return m, nil
	}
	m.status = "playing " + entry.Name
	trash := m.trash
	return m, func() tea.Msg {
		<-done
		return playbackDoneMsg{trash: trash}
	}
}

func (m libraryModel) view() string {
	var b strings.Builder
	b.WriteString("\n" + m.list.View())
	if m.renaming {
		fmt.Fprintf(&b, "\n\n  %s", m.rename.View())
	} else if m.status != "" {
		fmt.Fprintf(&b, "\n\n  %s", subtleStyle.Render(m.status))
	}
	return b.String()
}
