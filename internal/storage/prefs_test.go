package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsRecordBest(t *testing.T) {
	p := NewMemoryPrefs()

	_, ok := p.Best("reaction")
	assert.False(t, ok)

	wrote, err := p.RecordBest("reaction", 320, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = p.RecordBest("reaction", 400, true)
	require.NoError(t, err)
	assert.False(t, wrote, "slower time is not a best")

	wrote, err = p.RecordBest("reaction", 250, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	best, ok := p.Best("reaction")
	require.True(t, ok)
	assert.Equal(t, 250, best)

	// Higher is better
	p.RecordBest("runner", 100, false)
	p.RecordBest("runner", 50, false)
	best, _ = p.Best("runner")
	assert.Equal(t, 100, best)
}

func TestPrefsLenientBest(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{" 17 \n", 17, true},
		{`"33"`, 33, true},
		{`{"best": 7}`, 7, true},
		{"12.9", 12, true},
		{"", 0, false},
		{"not json", 0, false},
		{`{"other": 1}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			kv := NewMemoryKV()
			kv.SaveItem(itemKey("g", "best"), []byte(tt.raw))
			got, ok := NewPrefs(kv, nil).Best("g")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefsSettings(t *testing.T) {
	type settings struct {
		Disks int    `json:"disks"`
		Mode  string `json:"mode"`
	}

	p := NewMemoryPrefs()
	var s settings
	assert.False(t, p.LoadSettings("hanoi", &s))

	require.NoError(t, p.SaveSettings("hanoi", settings{Disks: 5, Mode: "demo"}))
	require.True(t, p.LoadSettings("hanoi", &s))
	assert.Equal(t, settings{Disks: 5, Mode: "demo"}, s)
}

func TestItemKeySafe(t *testing.T) {
	assert.Equal(t, "a_b_c_best", itemKey("a/b.c", "best"))
}

func TestPrefsForUserIsolatesKeys(t *testing.T) {
	kv := NewMemoryKV()
	shared := NewPrefs(kv, nil)
	alice := shared.ForUser("alice")
	bob := shared.ForUser("bob")

	_, err := alice.RecordBest("reaction", 210, true)
	require.NoError(t, err)
	_, err = bob.RecordBest("reaction", 300, true)
	require.NoError(t, err)

	best, ok := alice.Best("reaction")
	require.True(t, ok)
	assert.Equal(t, 210, best)
	best, ok = bob.Best("reaction")
	require.True(t, ok)
	assert.Equal(t, 300, best)
	_, ok = shared.Best("reaction")
	assert.False(t, ok, "per-user bests stay out of the shared keys")

	// A later session for the same user sees the stored best
	best, ok = NewPrefs(kv, nil).ForUser("alice").Best("reaction")
	require.True(t, ok)
	assert.Equal(t, 210, best)

	// Names that sanitise alike must not collide
	_, err = shared.ForUser("a.b").RecordBest("runner", 5, false)
	require.NoError(t, err)
	_, ok = shared.ForUser("a_b").Best("runner")
	assert.False(t, ok)
}
