// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall list                  - List game modes
//	blockfall play [mode]           - Play a mode (marathon, levels, autoplay)
//	blockfall menu                  - Pick a mode interactively
//	blockfall scores [mode]         - Show high scores
//	blockfall levels generate       - Write a generated level as YAML
//	blockfall bench                 - Run headless AI games and report stats
//	blockfall serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.blockfall/scores.db)
//	--log-level <lvl>   - debug, info, warn or error (default: warn)
//	--log-file <path>   - Log file for interactive commands
//	--color <profile>   - auto, ascii, ansi, ansi256 or truecolor
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
	flagColor    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall is a falling-block puzzle game with an AI player,
generated levels and remote play over SSH.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View high scores
  levels   - Generate level files
  bench    - Headless AI benchmark
  serve    - Start SSH server for remote play

Examples:
  blockfall play
  blockfall play levels --level 20
  blockfall play autoplay --difficulty hard
  blockfall bench --games 200 --jobs 8
  blockfall serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applyColorProfile(flagColor)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play and menu (default ~/.blockfall/blockfall.log)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color profile: auto, ascii, ansi, ansi256, truecolor")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyColorProfile forces a lipgloss color profile unless auto.
func applyColorProfile(name string) error {
	switch strings.ToLower(name) {
	case "", "auto":
	case "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	default:
		return fmt.Errorf("unknown color profile %q", name)
	}
	return nil
}

// setupLogger builds the process logger and hands it to the packages that
// log. Interactive commands own the terminal, so they log to a file.
// The returned func closes the log file, if any.
func setupLogger(toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using warn\n", err)
		level = log.WarnLevel
	}

	out := os.Stderr
	closeFn := func() {}
	if toFile {
		path := flagLogFile
		if path == "" {
			if dir := config.UserDir(); dir != "" {
				path = filepath.Join(dir, "blockfall.log")
			}
		}
		if path != "" {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr == nil {
				if f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); openErr == nil {
					out = f
					closeFn = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
		Level:           level,
	})
	blockfall.SetLogger(logger)
	tui.SetLogger(logger)
	storage.SetLogger(logger)
	return logger, closeFn
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a
// terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = terminalSize()
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	rc.Seed = flagSeed
	return rc
}

// openStore opens the scores database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
