package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLevelFile  string
)

// modeIDs maps short mode names to game IDs.
var modeIDs = map[string]string{
	"marathon": blockfall.IDMarathon,
	"levels":   blockfall.IDLevels,
	"autoplay": blockfall.IDAutoplay,
}

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode is marathon (default), levels or autoplay.

Controls:
  Left/Right, h/l  - Move
  Up, k, x         - Rotate
  Down, j          - Soft drop
  Space            - Hard drop
  C                - Hold
  A                - Toggle AI
  1 / 2            - AI assist / clear bottom row powerups
  P                - Pause
  Enter            - Next level (level mode)
  R                - Restart (after game over)
  Esc/B            - Back (when paused or over)
  ?                - Full help
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at speed 1, slow AI, extra powerups
  normal - Start at speed 3
  hard   - Start at speed 6, fast AI, one powerup each
  fixed  - Gravity never speeds up

Examples:
  blockfall play
  blockfall play levels
  blockfall play levels --level 40
  blockfall play levels --level-file ./level-40.yaml
  blockfall play autoplay --difficulty hard
  blockfall play --config ./my-blockfall.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level for level mode (skips the level menu)")
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Play a level loaded from YAML (level mode)")
}

// resolveMode maps a mode name or game ID to a registered game ID.
func resolveMode(arg string) (string, error) {
	if arg == "" {
		return blockfall.IDMarathon, nil
	}
	if id, ok := modeIDs[strings.ToLower(arg)]; ok {
		return id, nil
	}
	if registry.Exists(arg) {
		return arg, nil
	}
	names := make([]string, 0, len(modeIDs))
	for name := range modeIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("unknown mode %q (want one of %s)", arg, strings.Join(names, ", "))
}

// applyGameFlags hands --config and --difficulty to the game package and
// returns the loaded configuration for menus.
func applyGameFlags(logger *log.Logger) (config.BlockfallConfig, error) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return config.BlockfallConfig{}, err
	}
	blockfall.SetConfigPath(flagConfig)
	blockfall.SetDifficultyPreset(flagDifficulty)

	// Only a custom path can fail; the search fallbacks never do.
	bf, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		return bf, err
	}
	logger.Debug("config loaded", "path", flagConfig, "board", fmt.Sprintf("%dx%d", bf.Board.Width, bf.Board.Height))
	return bf, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog := setupLogger(true)
	defer closeLog()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	gameID, err := resolveMode(arg)
	if err != nil {
		return err
	}
	if flagLevelFile != "" {
		gameID = blockfall.IDLevels
	}

	bf, err := applyGameFlags(logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	if gameID == blockfall.IDLevels {
		blockfall.SetLevelFile(flagLevelFile)
		level := flagLevel
		if level == 0 && flagLevelFile == "" {
			selection, selErr := tui.RunLevelSelector(store, bf, cfg)
			if selErr != nil {
				return selErr
			}
			if selection == nil {
				return nil
			}
			level = selection.Level
		}
		blockfall.SetStartLevel(level)
	}

	return playGame(gameID, store, cfg)
}

// playGame runs one game until the player quits or goes back.
func playGame(gameID string, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if _, err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
