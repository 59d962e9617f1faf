package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgnsrekt/taper/internal/wavio"
	"github.com/dgnsrekt/taper/recorder/audio"
)

var testFormat = audio.Format{SampleRate: 44100, Channels: 1}

func writeRecording(t *testing.T, dir, name string, seconds int) string {
	t.Helper()
	body := make([]byte, seconds*testFormat.SampleRate*testFormat.BytesPerFrame())
	path := filepath.Join(dir, name)
	if err := wavio.WriteFile(path, testFormat, [][]byte{body}); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestListMissingDirIsEmpty(t *testing.T) {
	entries, err := List(filepath.Join(t.TempDir(), "nope"), SortNewest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries from a missing dir", len(entries))
	}
}

func TestListSkipsNonRecordings(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "take.wav", 1)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.Mkdir(filepath.Join(dir, TrashDirName), 0o755)

	entries, err := List(dir, SortNewest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "take.wav" {
		t.Fatalf("entries = %+v, want just take.wav", entries)
	}
}

func TestListReportsDuration(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "three.wav", 3)

	entries, err := List(dir, SortNewest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := entries[0].Duration
	if got < 2900*time.Millisecond || got > 3100*time.Millisecond {
		t.Fatalf("duration = %v, want ~3s", got)
	}
}

func TestListSortOrders(t *testing.T) {
	dir := t.TempDir()
	older := writeRecording(t, dir, "b_old.wav", 1)
	writeRecording(t, dir, "a_new.wav", 1)
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	byTime, err := List(dir, SortNewest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if byTime[0].Name != "a_new.wav" {
		t.Fatalf("newest-first order = [%s %s]", byTime[0].Name, byTime[1].Name)
	}

	byName, err := List(dir, SortName)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if byName[0].Name != "a_new.wav" || byName[1].Name != "b_old.wav" {
		t.Fatalf("name order = [%s %s]", byName[0].Name, byName[1].Name)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"take one", "take one.wav"},
		{"take one.wav", "take one.wav"},
		{"  padded  ", "padded.wav"},
		{"riff (v2) [final]", "riff (v2) [final].wav"},
		{"semi;colons|pipes", "semicolonspipes.wav"},
		{"../../etc/passwd", "etcpasswd.wav"},
		{"füür", "fr.wav"},
		{"***", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "old.wav", 1)
	entries, _ := List(dir, SortNewest)

	renamed, err := Rename(entries[0], "new take")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "new take.wav" {
		t.Fatalf("name = %s", renamed.Name)
	}
	if _, err := os.Stat(renamed.Path); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
}

func TestRenameRefusesClobber(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "a.wav", 1)
	writeRecording(t, dir, "b.wav", 1)
	entries, _ := List(dir, SortName)

	if _, err := Rename(entries[0], "b"); err == nil {
		t.Fatal("rename over an existing file succeeded")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.wav")); statErr != nil {
		t.Fatalf("source lost after refused rename: %v", statErr)
	}
}

func TestRenameRejectsUnusableName(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "keep.wav", 1)
	entries, _ := List(dir, SortNewest)

	if _, err := Rename(entries[0], "***"); err == nil {
		t.Fatal("rename to an empty sanitized name succeeded")
	}
}
