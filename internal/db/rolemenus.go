package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RoleOption is one selectable role on a self-assign menu.
type RoleOption struct {
	RoleID      string
	Description string
}

// InsertMenu stores a role menu message and its options.
func (d *DB) InsertMenu(ctx context.Context, messageID, guildID, channelID, authorID string, options []RoleOption) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO role_menus (message_id, guild_id, channel_id, author_id) VALUES (?, ?, ?, ?)`,
		messageID, guildID, channelID, authorID)
	if err != nil {
		return fmt.Errorf("failed to insert role menu: %w", err)
	}

	for _, opt := range options {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO role_options (message_id, role_id, description) VALUES (?, ?, ?)`,
			messageID, opt.RoleID, opt.Description)
		if err != nil {
			return fmt.Errorf("failed to insert role option: %w", err)
		}
	}
	return tx.Commit()
}

// DeleteMenu removes a role menu and its options.
func (d *DB) DeleteMenu(ctx context.Context, messageID string) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM role_options WHERE message_id = ?`, messageID); err != nil {
		return fmt.Errorf("failed to delete role options: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM role_menus WHERE message_id = ?`, messageID); err != nil {
		return fmt.Errorf("failed to delete role menu: %w", err)
	}
	return tx.Commit()
}

// MenuAuthor returns the author of a role menu, or "" if the message is not
// a menu.
func (d *DB) MenuAuthor(ctx context.Context, messageID string) (string, error) {
	var author string
	err := d.sql.QueryRowContext(ctx,
		`SELECT author_id FROM role_menus WHERE message_id = ?`, messageID).Scan(&author)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up role menu: %w", err)
	}
	return author, nil
}

// MenuOptions returns the options of a role menu.
func (d *DB) MenuOptions(ctx context.Context, messageID string) ([]RoleOption, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT role_id, description FROM role_options WHERE message_id = ?`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role options: %w", err)
	}
	defer rows.Close()

	var opts []RoleOption
	for rows.Next() {
		var opt RoleOption
		if err := rows.Scan(&opt.RoleID, &opt.Description); err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	return opts, rows.Err()
}

// IsMenu reports whether the message is a role menu.
func (d *DB) IsMenu(ctx context.Context, messageID string) (bool, error) {
	author, err := d.MenuAuthor(ctx, messageID)
	return author != "", err
}
