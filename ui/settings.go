package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/taper/recorder"
)

// settingsModel lets the user pick the quality preset. The choice is
// persisted and takes effect on the next recording.
type settingsModel struct {
	common  *commonModel
	cursor  int
	presets []recorder.Preset
	status  string
}

func newSettingsModel(common *commonModel) settingsModel {
	m := settingsModel{common: common, presets: recorder.Presets()}
	for i, p := range m.presets {
		if p == common.cfg.Recorder.Quality {
			m.cursor = i
		}
	}
	return m
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter":
		preset := m.presets[m.cursor]
		if err := recorder.SaveQuality(preset); err != nil {
			log.Warn("persisting quality preset", "error", err)
			m.status = err.Error()
			return m, nil
		}
		m.common.cfg.Recorder.Quality = preset
		m.status = fmt.Sprintf("quality set to %s, applies to the next recording", preset)
	}
	return m, nil
}

func (m settingsModel) view() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", titleStyle.Render("settings"))
	fmt.Fprintf(&b, "  recording quality:\n\n")

	for i, p := range m.presets {
		label := fmt.Sprintf("%-8s %s", p, p.Describe())
		marker := "  "
		if p == m.common.cfg.Recorder.Quality {
			marker = statusOKStyle.Render("* ")
		}
		if i == m.cursor {
			fmt.Fprintf(&b, "  %s%s\n", marker, selectedStyle.Render("> "+label))
		} else {
			fmt.Fprintf(&b, "  %s  %s\n", marker, label)
		}
	}

	if m.status != "" {
		fmt.Fprintf(&b, "\n  %s\n", subtleStyle.Render(m.status))
	}
	fmt.Fprintf(&b, "\n  %s\n", subtleStyle.Render("↑/↓: move • enter: apply • esc: back"))
	return b.String()
}
