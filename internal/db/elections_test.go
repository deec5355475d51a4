package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestElectionLifecycle(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	expiry := time.Now().Add(24 * time.Hour)

	require.NoError(t, d.CreateElection(ctx, "g1", "c1", expiry))
	assert.ErrorIs(t, d.CreateElection(ctx, "g1", "c2", expiry), ErrElectionExists)

	// Elections are per guild.
	require.NoError(t, d.CreateElection(ctx, "g2", "c9", expiry))

	updated, err := d.Vote(ctx, "g1", "voter1", "alice")
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = d.Vote(ctx, "g1", "voter1", "bob")
	require.NoError(t, err)
	assert.True(t, updated, "revoting replaces the previous vote")

	_, err = d.Vote(ctx, "g1", "voter2", "bob")
	require.NoError(t, err)
	_, err = d.Vote(ctx, "g1", "voter3", "alice")
	require.NoError(t, err)

	channelID, tally, err := d.FinishElection(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "c1", channelID)
	assert.Equal(t, map[string]int{"bob": 2, "alice": 1}, tally)

	// Finished means gone.
	_, _, err = d.FinishElection(ctx, "g1")
	assert.ErrorIs(t, err, ErrNoElection)
	_, err = d.Vote(ctx, "g1", "voter1", "alice")
	assert.ErrorIs(t, err, ErrNoElection)

	// The other guild's election is untouched.
	_, _, err = d.FinishElection(ctx, "g2")
	require.NoError(t, err)
}

func TestVoteWithoutElection(t *testing.T) {
	d := newTestDB(t)
	_, err := d.Vote(context.Background(), "g1", "voter1", "alice")
	assert.ErrorIs(t, err, ErrNoElection)
}

func TestDueElections(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, d.CreateElection(ctx, "g1", "c1", now.Add(-time.Hour)))
	require.NoError(t, d.CreateElection(ctx, "g2", "c2", now.Add(time.Hour)))

	due, err := d.DueElections(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "g1", due[0].GuildID)
	assert.Equal(t, "c1", due[0].ChannelID)
}
