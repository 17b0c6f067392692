package storage

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
)

// KV is the minimal byte store behind Prefs.
// *gdata.Manager satisfies it; MemoryKV is used in tests and when the
// platform data directory is unavailable.
type KV interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Prefs is a localStorage-like store of small per-game values.
// Values are JSON. Reads are lenient: a bare number, a JSON object or
// garbage all load without failing the game.
type Prefs struct {
	kv     KV
	logger *log.Logger
	ns     string // key prefix of a per-user view
}

// OpenPrefs opens the on-disk preferences for appName using gdata.
func OpenPrefs(appName string, logger *log.Logger) (*Prefs, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open prefs: %w", err)
	}
	return NewPrefs(m, logger), nil
}

// NewPrefs wraps any KV. A nil logger discards warnings.
func NewPrefs(kv KV, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Prefs{kv: kv, logger: logger}
}

// NewMemoryPrefs returns prefs held in memory only.
func NewMemoryPrefs() *Prefs {
	return NewPrefs(NewMemoryKV(), nil)
}

// ForUser returns a view of the same store whose keys belong to user
// alone. A server hosting many players hands each session its own view.
func (p *Prefs) ForUser(user string) *Prefs {
	return &Prefs{
		kv:     p.kv,
		logger: p.logger.With("user", user),
		ns:     "u" + hex.EncodeToString([]byte(user)) + "_",
	}
}

func (p *Prefs) key(gameID, name string) string {
	return p.ns + itemKey(gameID, name)
}

// itemKey builds a filesystem-safe key.
func itemKey(gameID, name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_")
	return r.Replace(gameID) + "_" + name
}

// Best returns the stored personal best for a game.
func (p *Prefs) Best(gameID string) (int, bool) {
	data, err := p.kv.LoadItem(p.key(gameID, "best"))
	if err != nil {
		p.logger.Warn("could not load best", "game", gameID, "err", err)
		return 0, false
	}
	return parseBest(data)
}

// parseBest accepts `42`, `"42"` or `{"best": 42}`.
func parseBest(data []byte) (int, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if v, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return int(v), true
		}
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v, true
		}
	}

	var obj struct {
		Best *float64 `json:"best"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Best != nil {
		return int(*obj.Best), true
	}
	return 0, false
}

// RecordBest stores v if it beats the current best in the given direction.
// Reports whether a new best was written.
func (p *Prefs) RecordBest(gameID string, v int, lowerIsBetter bool) (bool, error) {
	if cur, ok := p.Best(gameID); ok {
		if lowerIsBetter && v >= cur || !lowerIsBetter && v <= cur {
			return false, nil
		}
	}
	if err := p.kv.SaveItem(p.key(gameID, "best"), []byte(strconv.Itoa(v))); err != nil {
		return false, fmt.Errorf("storage: save best for %s: %w", gameID, err)
	}
	return true, nil
}

// LoadSettings decodes stored per-game settings into dst.
// Reports false when nothing usable is stored.
func (p *Prefs) LoadSettings(gameID string, dst any) bool {
	data, err := p.kv.LoadItem(p.key(gameID, "settings"))
	if err != nil || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		p.logger.Warn("ignoring unreadable settings", "game", gameID, "err", err)
		return false
	}
	return true
}

// SaveSettings stores per-game settings as JSON.
func (p *Prefs) SaveSettings(gameID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode settings for %s: %w", gameID, err)
	}
	if err := p.kv.SaveItem(p.key(gameID, "settings"), data); err != nil {
		return fmt.Errorf("storage: save settings for %s: %w", gameID, err)
	}
	return nil
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string][]byte)}
}

// LoadItem returns a copy of the stored bytes, or nil when missing.
func (m *MemoryKV) LoadItem(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// SaveItem stores a copy of data. Nil data deletes the key.
func (m *MemoryKV) SaveItem(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if data == nil {
		delete(m.items, key)
		return nil
	}
	m.items[key] = append([]byte(nil), data...)
	return nil
}
