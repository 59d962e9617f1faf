package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/taper/internal/library"
	"github.com/dgnsrekt/taper/recorder"
	"github.com/dgnsrekt/taper/recorder/audio"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Recorder: recorder.Config{
			Quality:       recorder.PresetMedium,
			RecordingsDir: filepath.Join(t.TempDir(), "recordings"),
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuSelectionEmitsChoice(t *testing.T) {
	m := newModel(testConfig(t), &audio.FakeOutputDevice{})

	// Move down once and activate: the second entry is the library.
	updated, _ := m.Update(keyRunes("j"))
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	msg, ok := cmd().(menuChoiceMsg)
	if !ok || menuEntry(msg) != menuLibrary {
		t.Fatalf("menu emitted %v, want library choice", msg)
	}

	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.state != stateShowLibrary {
		t.Fatalf("state = %v, want library", m.state)
	}
}

func TestRecordChoiceQuitsWithRecord(t *testing.T) {
	m := newModel(testConfig(t), &audio.FakeOutputDevice{})

	updated, cmd := m.Update(menuChoiceMsg(menuRecord))
	m = updated.(Model)
	if m.Choice != ChoiceRecord {
		t.Fatalf("choice = %v, want record", m.Choice)
	}
	if cmd == nil {
		t.Fatal("record choice did not quit the program")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newModel(testConfig(t), &audio.FakeOutputDevice{})

	updated, cmd := m.Update(keyRunes("q"))
	if got := updated.(Model).Choice; got != ChoiceQuit || cmd == nil {
		t.Fatalf("q at menu: choice=%v cmd=%v", got, cmd)
	}

	// Ctrl+C quits from any screen.
	m.state = stateShowSettings
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := updated.(Model).Choice; got != ChoiceQuit || cmd == nil {
		t.Fatalf("ctrl+c: choice=%v cmd=%v", got, cmd)
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	m := newModel(testConfig(t), &audio.FakeOutputDevice{})
	m.state = stateShowSettings

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := updated.(Model).state; got != stateShowMenu {
		t.Fatalf("state after esc = %v, want menu", got)
	}
}

func TestLibraryIgnoresForeignEntries(t *testing.T) {
	common := &commonModel{cfg: testConfig(t), out: &audio.FakeOutputDevice{}}
	lib := newLibraryModel(common, false)

	entries := []library.Entry{{Name: "take.wav"}}
	lib, _ = lib.update(loadedEntriesMsg{trash: false, entries: entries})
	if got := len(lib.list.Items()); got != 1 {
		t.Fatalf("library items = %d, want 1", got)
	}

	// Entries loaded for the trash screen must not land in the library.
	lib, _ = lib.update(loadedEntriesMsg{trash: true, entries: []library.Entry{{Name: "junk.wav"}, {Name: "junk2.wav"}}})
	if got := len(lib.list.Items()); got != 1 {
		t.Fatalf("library items after foreign load = %d, want 1", got)
	}
}

func TestSettingsApplyPersistsPreset(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	cfgPath := filepath.Join(t.TempDir(), "taper.yml")
	if err := os.WriteFile(cfgPath, []byte("quality: medium\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	common := &commonModel{cfg: testConfig(t)}
	settings := newSettingsModel(common)

	// The cursor starts on the active preset (medium); move up to high.
	settings, _ = settings.update(keyRunes("k"))
	settings, _ = settings.update(tea.KeyMsg{Type: tea.KeyEnter})

	if common.cfg.Recorder.Quality != recorder.PresetHigh {
		t.Fatalf("active quality = %s, want high", common.cfg.Recorder.Quality)
	}
	if got := viper.GetString("quality"); got != "high" {
		t.Fatalf("persisted quality = %q, want high", got)
	}
}
