package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrElectionExists = errors.New("an election is already running in this server")
	ErrNoElection     = errors.New("no election is currently running in this server")
)

// Election is a pending mayoral vote for one guild.
type Election struct {
	GuildID   string
	Expiry    time.Time
	ChannelID string
}

// CreateElection starts an election for the guild. Only one election per
// guild may run at a time.
func (d *DB) CreateElection(ctx context.Context, guildID, channelID string, expiry time.Time) error {
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO elections (guild_id, expiry, channel_id) VALUES (?, ?, ?)
		 ON CONFLICT(guild_id) DO NOTHING`,
		guildID, expiry.UTC(), channelID)
	if err != nil {
		return fmt.Errorf("failed to create election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrElectionExists
	}
	return nil
}

// Vote records or replaces a member's vote in the guild's running election.
// It reports whether the member had voted before.
func (d *DB) Vote(ctx context.Context, guildID, memberID, candidateID string) (updated bool, err error) {
	var exists int
	err = d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM elections WHERE guild_id = ?`, guildID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check election: %w", err)
	}
	if exists == 0 {
		return false, ErrNoElection
	}

	var prev string
	err = d.sql.QueryRowContext(ctx,
		`SELECT candidate_id FROM votes WHERE guild_id = ? AND member_id = ?`,
		guildID, memberID).Scan(&prev)
	switch {
	case err == nil:
		updated = true
	case errors.Is(err, sql.ErrNoRows):
		updated = false
	default:
		return false, fmt.Errorf("failed to check previous vote: %w", err)
	}

	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO votes (guild_id, member_id, candidate_id) VALUES (?, ?, ?)
		 ON CONFLICT(guild_id, member_id) DO UPDATE SET candidate_id = excluded.candidate_id`,
		guildID, memberID, candidateID)
	if err != nil {
		return false, fmt.Errorf("failed to record vote: %w", err)
	}
	return updated, nil
}

// FinishElection closes the guild's election and returns the announcement
// channel plus the tally of votes per candidate.
func (d *DB) FinishElection(ctx context.Context, guildID string) (channelID string, tally map[string]int, err error) {
	err = d.sql.QueryRowContext(ctx,
		`SELECT channel_id FROM elections WHERE guild_id = ?`, guildID).Scan(&channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrNoElection
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load election: %w", err)
	}

	rows, err := d.sql.QueryContext(ctx,
		`SELECT candidate_id, COUNT(*) FROM votes WHERE guild_id = ? GROUP BY candidate_id`,
		guildID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	tally = make(map[string]int)
	for rows.Next() {
		var candidate string
		var count int
		if err := rows.Scan(&candidate, &count); err != nil {
			return "", nil, err
		}
		tally[candidate] = count
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}

	if _, err := d.sql.ExecContext(ctx, `DELETE FROM votes WHERE guild_id = ?`, guildID); err != nil {
		return "", nil, fmt.Errorf("failed to clear votes: %w", err)
	}
	if _, err := d.sql.ExecContext(ctx, `DELETE FROM elections WHERE guild_id = ?`, guildID); err != nil {
		return "", nil, fmt.Errorf("failed to close election: %w", err)
	}
	return channelID, tally, nil
}

// DueElections returns every election whose expiry has passed.
func (d *DB) DueElections(ctx context.Context, now time.Time) ([]Election, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT guild_id, expiry, channel_id FROM elections WHERE expiry <= ?`, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due elections: %w", err)
	}
	defer rows.Close()

	var due []Election
	for rows.Next() {
		var e Election
		if err := rows.Scan(&e.GuildID, &e.Expiry, &e.ChannelID); err != nil {
			return nil, err
		}
		due = append(due, e)
	}
	return due, rows.Err()
}
