package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/platform/tui"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

// playSettings is remembered per game between runs.
type playSettings struct {
	Difficulty string `json:"difficulty"`
}

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space        - Jump / fire / flip
  Enter        - Confirm / reveal / submit
  Mouse        - Click a cell (left), flag it (right)
  P/Esc        - Pause
  R            - Restart
  Q/Ctrl+C     - Quit

Word games read typed letters, so they use Ctrl+R, Ctrl+P and Esc instead.

Difficulty options (action games, remembered for the next run):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play runner
  arcade play shooter --difficulty hard
  arcade play catcher --config ./my-catcher.yaml
  arcade play minesweeper --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if err := checkGame(gameID); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	prefs := openPrefs(logger)
	difficulty := flagDifficulty
	var saved playSettings
	if difficulty == "" && prefs.LoadSettings(gameID, &saved) {
		difficulty = saved.Difficulty
	} else if difficulty != "" {
		if err := prefs.SaveSettings(gameID, playSettings{Difficulty: difficulty}); err != nil {
			logger.Warn("could not remember difficulty", "game", gameID, "err", err)
		}
	}

	// Set config path and difficulty for games before creation
	config.SetConfigPath(gameID, flagConfig)
	config.SetDifficultyPreset(difficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Continue without storage if it fails - the game still works
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "seed", flagSeed, "difficulty", difficulty)
	if err := tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Prefs:  prefs,
		Logger: logger,
		Player: playerName(),
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
