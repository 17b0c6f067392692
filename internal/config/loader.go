package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	settingsMu  sync.RWMutex
	customPaths = make(map[string]string)
	preset      DifficultyPreset
)

// SetConfigPath sets a custom config file for one game, set via CLI.
func SetConfigPath(gameID, path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if path == "" {
		delete(customPaths, gameID)
		return
	}
	customPaths[gameID] = path
}

// SetDifficultyPreset sets the preset applied by every game on Reset.
func SetDifficultyPreset(p string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	preset = ParsePreset(p)
}

// Preset returns the preset chosen via CLI, or "".
func Preset() DifficultyPreset {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return preset
}

func customPath(gameID string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return customPaths[gameID]
}

// Load reads configuration for gameID into a copy of fallback.
// Search order: custom path -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> fallback. Only a broken custom path is an error;
// the other sources are skipped when missing or malformed.
func Load[T any](gameID string, fallback T) (T, error) {
	if p := customPath(gameID); p != "" {
		cfg := fallback
		data, err := os.ReadFile(p)
		if err != nil {
			return fallback, fmt.Errorf("config: read %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("config: parse %s: %w", p, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if data := DefaultYAML(gameID); data != nil {
		cfg := fallback
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}
	return fallback, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// DataDir returns ~/.arcade, the home of the score database, prefs and logs.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home dir: %w", err)
	}
	return filepath.Join(home, ".arcade"), nil
}

// LoadRunner loads runner configuration with the active preset applied.
func LoadRunner() RunnerConfig {
	cfg, err := Load("runner", DefaultRunnerConfig())
	if err != nil {
		cfg = DefaultRunnerConfig()
	}
	cfg.Difficulty.Apply(Preset())
	return cfg
}

// LoadCatcher loads catch-the-stars configuration.
func LoadCatcher() CatcherConfig {
	cfg, err := Load("catcher", DefaultCatcherConfig())
	if err != nil {
		cfg = DefaultCatcherConfig()
	}
	cfg.Difficulty.Apply(Preset())
	return cfg
}

// LoadFrogger loads frogger configuration.
func LoadFrogger() FroggerConfig {
	cfg, err := Load("frogger", DefaultFroggerConfig())
	if err != nil || len(cfg.Lanes) == 0 {
		cfg = DefaultFroggerConfig()
	}
	cfg.Difficulty.Apply(Preset())
	return cfg
}

// LoadColorSwitch loads color switch configuration.
func LoadColorSwitch() ColorSwitchConfig {
	cfg, err := Load("colorswitch", DefaultColorSwitchConfig())
	if err != nil {
		cfg = DefaultColorSwitchConfig()
	}
	cfg.Difficulty.Apply(Preset())
	return cfg
}

// LoadShooter loads space shooter configuration.
func LoadShooter() ShooterConfig {
	cfg, err := Load("shooter", DefaultShooterConfig())
	if err != nil {
		cfg = DefaultShooterConfig()
	}
	cfg.Difficulty.Apply(Preset())
	return cfg
}

// LoadBreakout loads breakout configuration and adjusts gameplay for the preset.
func LoadBreakout() BreakoutConfig {
	cfg, err := Load("breakout", DefaultBreakoutConfig())
	if err != nil {
		cfg = DefaultBreakoutConfig()
	}
	p := Preset()
	cfg.Difficulty.Apply(p)

	switch p {
	case DifficultyEasy:
		cfg.Lives = 5
		cfg.Paddle.Width = 10
	case DifficultyHard:
		cfg.Lives = 2
		cfg.Paddle.Width = 6
		cfg.Physics.BallSpeed *= 1.3
	}
	return cfg
}
