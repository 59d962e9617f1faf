// Package library manages the recordings directory: listing, renaming, and
// a trash area for soft deletion.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dgnsrekt/taper/internal/wavio"
)

// Entry is one stored recording.
type Entry struct {
	Name     string
	Path     string
	Size     int64
	Duration time.Duration
	ModTime  time.Time
}

// HumanSize renders the file size for display.
func (e Entry) HumanSize() string {
	return humanize.Bytes(uint64(e.Size))
}

// HumanAge renders the modification time relative to now.
func (e Entry) HumanAge() string {
	return humanize.Time(e.ModTime)
}

// SortOrder selects how List arranges entries.
type SortOrder int

const (
	// SortNewest puts the most recently modified recording first.
	SortNewest SortOrder = iota
	// SortName orders alphabetically.
	SortName
)

// List returns the recordings in dir, newest first by default. A missing
// directory is an empty library, not an error.
func List(dir string, order SortOrder) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library: %w", err)
	}

	var entries []Entry
	for _, de := range dirents {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".wav") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		e := Entry{
			Name:    de.Name(),
			Path:    filepath.Join(dir, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if d, err := wavio.Duration(e.Path); err == nil {
			e.Duration = d
		}
		entries = append(entries, e)
	}

	switch order {
	case SortName:
		sort.Slice(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
		})
	default:
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].ModTime.After(entries[j].ModTime)
		})
	}
	return entries, nil
}

// SanitizeName reduces a requested filename to the allowed character set and
// guarantees a .wav extension. An input with nothing salvageable returns the
// empty string, which callers treat as "use the default".
func SanitizeName(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".wav")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '(', r == ')', r == '[', r == ']':
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return ""
	}
	return cleaned + ".wav"
}

// Rename moves a recording to a new sanitized name within the same
// directory. It refuses to clobber an existing file.
func Rename(e Entry, newName string) (Entry, error) {
	cleaned := SanitizeName(newName)
	if cleaned == "" {
		return e, fmt.Errorf("rename %s: no usable name", e.Name)
	}
	dest := filepath.Join(filepath.Dir(e.Path), cleaned)
	if dest == e.Path {
		return e, nil
	}
	if _, err := os.Stat(dest); err == nil {
		return e, fmt.Errorf("rename %s: %s already exists", e.Name, cleaned)
	}
	if err := os.Rename(e.Path, dest); err != nil {
		return e, fmt.Errorf("rename %s: %w", e.Name, err)
	}
	e.Name = cleaned
	e.Path = dest
	return e, nil
}
