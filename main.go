// Package main provides the entry point for the taper CLI application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgnsrekt/taper/internal/input"
	"github.com/dgnsrekt/taper/recorder"
	"github.com/dgnsrekt/taper/recorder/audio"
	"github.com/dgnsrekt/taper/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	quality    string
	outputDir  string

	rootCmd = &cobra.Command{
		Use:   "taper",
		Short: "Record voice memos from the terminal",
		Long: paragraph(
			fmt.Sprintf("\nRecord, %s, and manage voice memos without leaving the terminal.", keyword("preview")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}

	recordCmd = &cobra.Command{
		Use:   "record",
		Short: "Start a recording session immediately",
		Long: paragraph(fmt.Sprintf(
			"\nStart %s without the menu. Keys: p pause/resume, l listen, s save, d discard, space pause preview.",
			keyword("recording"),
		)),
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			outcome, err := runSession(resolveConfig())
			if err != nil {
				return err
			}
			if outcome.Kind == recorder.OutcomeFailed {
				return outcome.Err
			}
			return nil
		},
	}
)

// resolveConfig layers the command line over the config file.
func resolveConfig() recorder.Config {
	cfg := recorder.LoadConfig()
	if quality != "" {
		preset, err := recorder.ParsePreset(quality)
		if err != nil {
			log.Warn("ignoring quality flag", "error", err)
		} else {
			cfg.Quality = preset
		}
	}
	if outputDir != "" {
		if abs, err := filepath.Abs(outputDir); err == nil {
			cfg.RecordingsDir = abs
		}
	}
	return cfg
}

// runTUI alternates between the menu program and recording sessions. The
// session needs the bare terminal, so the TUI exits around it.
func runTUI() error {
	for {
		uiCfg, err := env.ParseAs[ui.Config]()
		if err != nil {
			return fmt.Errorf("error parsing config: %v", err)
		}
		uiCfg.Recorder = resolveConfig()

		m, err := ui.NewProgram(uiCfg, &audio.OtoDevice{}).Run()
		if err != nil {
			return fmt.Errorf("unable to run tui program: %w", err)
		}

		model, ok := m.(ui.Model)
		if !ok || model.Choice != ui.ChoiceRecord {
			return nil
		}

		outcome, err := runSession(resolveConfig())
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		reportOutcome(outcome)
	}
}

// runSession owns the terminal for the duration of one recording.
func runSession(cfg recorder.Config) (recorder.Outcome, error) {
	term, err := input.Open()
	if err != nil {
		return recorder.Outcome{}, err
	}
	defer term.Close() //nolint:errcheck

	// Fan OS signals into the same channel as raw-mode Ctrl+C.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)
	go func() {
		for s := range term.Interrupt() {
			select {
			case interrupt <- s:
			default:
			}
		}
	}()

	ctrl := recorder.NewController(cfg, &audio.PortAudioDevice{}, &audio.OtoDevice{}, term)
	if err := ctrl.Start(); err != nil {
		return recorder.Outcome{Kind: recorder.OutcomeCancelled, Err: err}, err
	}

	out := termenv.NewOutput(os.Stdout)
	fmt.Fprintf(out, "%s\r\n\r\n", subtle("p: pause/resume • l: listen • s: save • d: discard • space: pause preview • ctrl+c: save and quit"))

	outcome := ctrl.Run(term, interrupt, renderStatus(out))
	out.ClearLine()
	fmt.Fprint(out, "\r\n")
	return outcome, nil
}

// renderStatus draws the one-line session display, refreshed every tick.
func renderStatus(out *termenv.Output) recorder.StatusFunc {
	return func(s recorder.Status) {
		out.ClearLine()
		line := fmt.Sprintf("\r %s  %s", keyword(s.Mode.String()), formatElapsed(s.Elapsed))
		if s.Hint != "" {
			line += "  " + subtle(s.Hint)
		}
		fmt.Fprint(out, line)
	}
}

// formatElapsed renders a duration as H:MM:SS.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func reportOutcome(outcome recorder.Outcome) {
	switch outcome.Kind {
	case recorder.OutcomeSaved:
		fmt.Printf("saved %s\n", keyword(outcome.Path))
	case recorder.OutcomeDiscarded:
		fmt.Println(subtle("recording discarded"))
	case recorder.OutcomeFailed:
		fmt.Println(errorStyle.Render("could not save recording: " + outcome.Err.Error()))
	}
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&quality, "quality", "q", "", "quality preset: high, medium, or low")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory to store recordings in")

	rootCmd.AddCommand(recordCmd, configCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "taper")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "taper")}, dirs...)
	}

	if c := os.Getenv("TAPER_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("taper")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("taper")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "taper.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
