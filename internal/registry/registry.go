// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered id.
var ErrUnknownGame = errors.New("unknown game")

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "runner", "hangman").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state wholesale.
	// Called once at start and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call. Render never changes state.
	Render(dst *core.Screen)

	// State returns the current game state (score, lives, game over, paused).
	State() core.GameState
}

// TextInput is implemented by games that read typed characters.
// While such a game is active, the platform sends letters and digits
// as runes instead of mapping them to actions.
type TextInput interface {
	AcceptsText() bool
}

// Described is implemented by games that provide a blurb for listings.
type Described interface {
	Description() string
	Category() Category
}

// LowerIsBetter is implemented by games whose score ranks ascending
// (moves, presses, milliseconds).
type LowerIsBetter interface {
	LowerIsBetter() bool
}

// Prefs is the personal-record store a game may read and update itself.
type Prefs interface {
	Best(gameID string) (int, bool)
	RecordBest(gameID string, value int, lowerIsBetter bool) (bool, error)
}

// PrefsAware is implemented by games that show a personal best.
// The platform attaches its store before the first Reset.
type PrefsAware interface {
	AttachPrefs(p Prefs)
}

// AttachPrefs hands p to g when g wants it.
func AttachPrefs(g Game, p Prefs) {
	if pa, ok := g.(PrefsAware); ok && p != nil {
		pa.AttachPrefs(p)
	}
}

// Category groups games in the menu.
type Category string

const (
	CategoryArcade Category = "Arcade"
	CategoryPuzzle Category = "Puzzle"
	CategoryWord   Category = "Word & Trivia"
	CategoryReflex Category = "Reflex"
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID            string
	Title         string
	Description   string
	Category      Category
	TextInput     bool
	LowerIsBetter bool
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Metadata comes from a throwaway instance
	infos[id] = Describe(f())
}

// Describe extracts listing metadata from a game instance.
func Describe(g Game) GameInfo {
	info := GameInfo{
		ID:       g.ID(),
		Title:    g.Title(),
		Category: CategoryArcade,
	}
	if d, ok := g.(Described); ok {
		info.Description = d.Description()
		info.Category = d.Category()
	}
	info.TextInput = IsTextInput(g)
	info.LowerIsBetter = IsLowerBetter(g)
	return info
}

// IsTextInput reports whether g wants typed runes.
func IsTextInput(g Game) bool {
	t, ok := g.(TextInput)
	return ok && t.AcceptsText()
}

// IsLowerBetter reports whether g ranks scores ascending.
func IsLowerBetter(g Game) bool {
	l, ok := g.(LowerIsBetter)
	return ok && l.LowerIsBetter()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns metadata for one game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}

// ByCategory groups registered games by category, each group sorted by ID.
func ByCategory() map[Category][]GameInfo {
	groups := make(map[Category][]GameInfo)
	for _, info := range List() {
		groups[info.Category] = append(groups[info.Category], info)
	}
	return groups
}

// Categories returns the menu order of categories.
func Categories() []Category {
	return []Category{CategoryArcade, CategoryPuzzle, CategoryWord, CategoryReflex}
}

// Create instantiates a new game by its ID.
// Returns an error wrapping ErrUnknownGame if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
