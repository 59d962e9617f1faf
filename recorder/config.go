package recorder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/taper/internal/library"
	"github.com/dgnsrekt/taper/recorder/audio"
)

// Preset is a named bundle of sample rate and channel count. Selecting one
// affects only subsequently started recordings.
type Preset string

const (
	// PresetHigh records 48 kHz stereo.
	PresetHigh Preset = "high"
	// PresetMedium records 44.1 kHz stereo.
	PresetMedium Preset = "medium"
	// PresetLow records 44.1 kHz mono.
	PresetLow Preset = "low"
)

// Presets lists the recognized presets in quality order.
func Presets() []Preset {
	return []Preset{PresetHigh, PresetMedium, PresetLow}
}

// Format returns the capture format for the preset.
func (p Preset) Format() audio.Format {
	switch p {
	case PresetHigh:
		return audio.Format{SampleRate: 48000, Channels: 2}
	case PresetLow:
		return audio.Format{SampleRate: 44100, Channels: 1}
	default:
		return audio.Format{SampleRate: 44100, Channels: 2}
	}
}

// Describe returns a human-readable summary for the settings view.
func (p Preset) Describe() string {
	f := p.Format()
	layout := "stereo"
	if f.Channels == 1 {
		layout = "mono"
	}
	return fmt.Sprintf("%d Hz, %s", f.SampleRate, layout)
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetHigh, PresetMedium, PresetLow:
		return Preset(s), nil
	}
	return "", fmt.Errorf("unknown quality preset %q (choose high, medium, or low)", s)
}

// Config holds the recorder's persisted settings.
type Config struct {
	Quality       Preset
	RecordingsDir string
}

// TrashDir returns the trash directory, a sibling of the recordings.
func (c Config) TrashDir() string {
	return filepath.Join(c.RecordingsDir, library.TrashDirName)
}

// DefaultRecordingsDir resolves the platform data directory for recordings.
func DefaultRecordingsDir() string {
	scope := gap.NewScope(gap.User, "taper")
	dir, err := scope.DataPath("recordings")
	if err != nil {
		// Last resort when the platform lookup fails.
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".taper", "recordings")
	}
	return dir
}

// LoadConfig assembles the configuration from viper, falling back to
// defaults for missing or invalid values.
func LoadConfig() Config {
	cfg := Config{
		Quality:       PresetMedium,
		RecordingsDir: DefaultRecordingsDir(),
	}

	if q := viper.GetString("quality"); q != "" {
		preset, err := ParsePreset(q)
		if err != nil {
			log.Warn("ignoring configured quality", "error", err)
		} else {
			cfg.Quality = preset
		}
	}
	if dir := viper.GetString("recordings_dir"); dir != "" {
		cfg.RecordingsDir = dir
	}
	return cfg
}

// SaveQuality persists the active preset to the config file.
func SaveQuality(p Preset) error {
	viper.Set("quality", string(p))
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Debug("saved quality preset", "preset", p)
	return nil
}
