// arcade is a collection of small games played in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade sim <game>        - Run a game headless and print the result
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minigame-arcade/internal/config"
	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/minigame-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/catcher"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/colorswitch"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/connect4"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/frogger"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/guess"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/hangman"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/hanoi"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/lightsout"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/memory"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/minesweeper"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/quiz"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/reaction"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/runner"
	_ "github.com/vovakirdan/minigame-arcade/internal/games/shooter"
)

const appName = "minigame-arcade"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Minigame Arcade - small games in your terminal",
	Long: `Minigame Arcade bundles fifteen small games: arcade action, puzzles,
word games and reflex tests, all playable in a terminal or over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote and online play
  scores   - View high scores
  sim      - Run a game without a terminal

Examples:
  arcade list
  arcade play runner
  arcade menu
  arcade serve --ssh :2222
  arcade scores minesweeper
  arcade sim runner --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger. While a Bubble Tea program owns
// the terminal, toFile sends records to ~/.arcade/arcade.log instead of
// stderr. The returned func closes the log file.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		f, fileErr := openLogFile()
		if fileErr != nil {
			out = io.Discard
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	return logger, closeFn, nil
}

func openLogFile() (*os.File, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// runtimeConfig sizes the screen from the terminal and applies the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. A failure is logged and the games
// run without a leaderboard.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openPrefs opens the on-disk personal bests, falling back to memory.
func openPrefs(logger *log.Logger) *storage.Prefs {
	prefs, err := storage.OpenPrefs(appName, logger)
	if err != nil {
		logger.Warn("personal bests will not be kept", "err", err)
		return storage.NewMemoryPrefs()
	}
	return prefs
}

// playerName is the name stored with local scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// checkGame fails with a hint when id is not registered.
func checkGame(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("%w %q, run 'arcade list' to see available games", registry.ErrUnknownGame, id)
	}
	return nil
}
