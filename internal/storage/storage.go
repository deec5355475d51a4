package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"bookshelf/datastore"
)

const commandHistoryLimit = 20

// Storage is a typed view over the datastore, keyed by guild ID.
type Storage struct {
	ds *datastore.DataStore
}

// CommandHistoryRecord is one logged command use.
type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

// Record is everything kept per guild.
type Record struct {
	CommandsHistory []CommandHistoryRecord `json:"cmd_history"`
	DisabledGroups  []string               `json:"disabled_groups"`
	Channels        map[string]string      `json:"channels"` // e.g. "election": channelID
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// FilePath returns the underlying blob path, for backups.
func (s *Storage) FilePath() string {
	return s.ds.FilePath()
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreateGuildRecord deserializes a guild's record, creating an empty
// one on first touch.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		record := &Record{Channels: map[string]string{}}
		s.ds.Set(guildID, record)
		return record, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling guild record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling guild record: %w", err)
	}

	if record.Channels == nil {
		record.Channels = map[string]string{}
	}
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandToHistory logs one command use for a guild.
func (s *Storage) AppendCommandToHistory(guildID string, rec CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistory = append(record.CommandsHistory, rec)
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	s.ds.Set(guildID, record)
	return nil
}

// FetchCommandHistory returns the recent command log for a guild.
func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}

// SetSpecialChannel records a purpose-tagged channel for a guild.
func (s *Storage) SetSpecialChannel(guildID, purpose, channelID string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.Channels[purpose] = channelID
	s.ds.Set(guildID, record)
	return nil
}

// GetSpecialChannel returns the channel tagged with purpose, if set.
func (s *Storage) GetSpecialChannel(guildID, purpose string) (string, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	return record.Channels[purpose], nil
}

func (s *Storage) DisableGroup(guildID, group string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	for _, g := range record.DisabledGroups {
		if g == group {
			return nil
		}
	}
	record.DisabledGroups = append(record.DisabledGroups, group)
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) EnableGroup(guildID, group string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(record.DisabledGroups))
	for _, g := range record.DisabledGroups {
		if g != group {
			updated = append(updated, g)
		}
	}
	record.DisabledGroups = updated
	s.ds.Set(guildID, record)
	return nil
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return false, err
	}
	for _, g := range record.DisabledGroups {
		if g == group {
			return true, nil
		}
	}
	return false, nil
}
