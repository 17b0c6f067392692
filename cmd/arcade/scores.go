package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
	flagMatches     bool
	flagSession     string
	flagMatchID     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for the specified game, or a summary of every
game played so far when no game is given.

Examples:
  arcade scores
  arcade scores runner
  arcade scores reaction --limit 5
  arcade scores memory --clear
  arcade scores --limit 0 runner
  arcade scores --matches
  arcade scores --matches --session <session-id>
  arcade scores --match <match-id>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().BoolVar(&flagMatches, "matches", false, "Show recent online matches")
	scoresCmd.Flags().StringVar(&flagSession, "session", "", "With --matches, only matches of this session")
	scoresCmd.Flags().StringVar(&flagMatchID, "match", "", "Show one online match by ID")
}

func runScores(_ *cobra.Command, args []string) error {
	logger, _, err := newLogger(false)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagMatchID != "":
		return printMatch(store, flagMatchID)
	case flagMatches:
		return printMatches(store)
	case len(args) == 0:
		return printSummary(store)
	}

	gameID := args[0]
	if err := checkGame(gameID); err != nil {
		return err
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		return nil
	}
	return printTopScores(store, gameID)
}

func printTopScores(store *storage.Store, gameID string) error {
	info, _ := registry.Info(gameID)

	var scores []storage.ScoreEntry
	var err error
	if flagScoresLimit == 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := fmt.Sprintf("High Scores - %s", info.Title)
	if info.LowerIsBetter {
		title += " (lower is better)"
	}
	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Score", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-12s  %s\n", i+1, entry.Score, player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	best, err := store.BestScore(gameID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d  Plays: %d  Average: %.1f\n", best, stats.GamesCount, stats.AvgScore)
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-6s  %-8s  %s\n", "Game", "Plays", "Best", "Last played")
	fmt.Printf("  %-12s  %-6s  %-8s  %s\n", "----", "-----", "----", "-----------")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-8d  %s\n", info.ID, st.GamesCount, st.BestScore, lastPlayed(st.LastPlayed))
	}
	return nil
}

func printMatches(store *storage.Store) error {
	var matches []storage.OnlineMatchResult
	var err error
	if flagSession != "" {
		matches, err = store.PlayerMatchHistory(flagSession, flagScoresLimit)
	} else {
		matches, err = store.RecentOnlineMatches(flagScoresLimit)
	}
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No online matches played yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-10s  %-7s  %-12s  %-8s  %s\n", "Match", "Game", "Score", "Result", "Length", "Date")
	for _, m := range matches {
		fmt.Printf("  %-36s  %-10s  %-7s  %-12s  %-8s  %s\n",
			m.MatchID,
			m.GameID,
			fmt.Sprintf("%d-%d", m.Score1, m.Score2),
			matchOutcome(m),
			(time.Duration(m.Duration) * time.Second).String(),
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func printMatch(store *storage.Store, matchID string) error {
	m, err := store.OnlineMatchByID(matchID)
	if err != nil {
		return err
	}
	fmt.Printf("match:    %s\n", m.MatchID)
	fmt.Printf("game:     %s\n", m.GameID)
	fmt.Printf("player 1: %s (%d)\n", m.Player1Session, m.Score1)
	fmt.Printf("player 2: %s (%d)\n", m.Player2Session, m.Score2)
	fmt.Printf("result:   %s\n", matchOutcome(*m))
	fmt.Printf("length:   %s\n", time.Duration(m.Duration)*time.Second)
	fmt.Printf("played:   %s\n", m.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func matchOutcome(m storage.OnlineMatchResult) string {
	if m.EndReason != "completed" {
		return m.EndReason
	}
	switch m.WinnerSession {
	case m.Player1Session:
		return "P1 won"
	case m.Player2Session:
		return "P2 won"
	}
	return "draw"
}

func lastPlayed(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
