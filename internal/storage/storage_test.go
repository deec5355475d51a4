package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommandHistory(t *testing.T) {
	s := newTestStorage(t)

	rec := CommandHistoryRecord{
		ChannelID:   "c1",
		ChannelName: "general",
		GuildName:   "Library",
		UserID:      "u1",
		Username:    "alice",
		Command:     "apod",
		Datetime:    time.Now(),
	}
	require.NoError(t, s.AppendCommandToHistory("g1", rec))

	history, err := s.FetchCommandHistory("g1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "apod", history[0].Command)
	assert.Equal(t, "alice", history[0].Username)

	// Another guild's history is separate.
	other, err := s.FetchCommandHistory("g2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCommandHistoryTrimmed(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < 30; i++ {
		require.NoError(t, s.AppendCommandToHistory("g1", CommandHistoryRecord{
			Command:  "help",
			Datetime: time.Now(),
		}))
	}

	history, err := s.FetchCommandHistory("g1")
	require.NoError(t, err)
	assert.Len(t, history, 20)
}

func TestSpecialChannels(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.GetSpecialChannel("g1", "election")
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SetSpecialChannel("g1", "election", "c42"))
	id, err = s.GetSpecialChannel("g1", "election")
	require.NoError(t, err)
	assert.Equal(t, "c42", id)
}

func TestGroupToggling(t *testing.T) {
	s := newTestStorage(t)

	disabled, err := s.IsGroupDisabled("g1", "fun")
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, s.DisableGroup("g1", "fun"))
	disabled, err = s.IsGroupDisabled("g1", "fun")
	require.NoError(t, err)
	assert.True(t, disabled)

	// Disabling twice keeps a single entry.
	require.NoError(t, s.DisableGroup("g1", "fun"))
	require.NoError(t, s.EnableGroup("g1", "fun"))
	disabled, err = s.IsGroupDisabled("g1", "fun")
	require.NoError(t, err)
	assert.False(t, disabled)

	// Other guilds are untouched.
	disabled, err = s.IsGroupDisabled("g2", "fun")
	require.NoError(t, err)
	assert.False(t, disabled)
}
