package customcommands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bookshelf/internal/logger"
)

// Dispatcher is the hosting framework's command table. The store pushes
// every live definition into it so message dispatch can find them.
type Dispatcher interface {
	Register(def *Definition, bound *Bound)
	Unregister(guildID, name string)
}

// Store owns the ordered collection of definitions and its durable blob.
// The original ran on one event loop; discordgo handlers run on many
// goroutines, so every mutation and the whole-collection save hold the
// mutex.
type Store struct {
	mu   sync.Mutex
	path string
	defs []*Definition
	disp Dispatcher
}

// NewStore creates a store persisting to path and registering through disp.
func NewStore(path string, disp Dispatcher) *Store {
	return &Store{path: path, disp: disp}
}

// Load reads the durable blob and registers every valid definition. A blob
// that fails to parse is replaced by one valid empty blob and the store
// proceeds empty; one repair attempt, no retries. Individual entries that
// fail validation (unknown conversion tag, broken argument ordering,
// duplicate name) are skipped and logged, never fatal.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.writeLocked()
	}
	if err != nil {
		return fmt.Errorf("customcommands: failed to read %s: %w", s.path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Store("%s is corrupt, resetting to empty: %v", s.path, err)
		s.defs = nil
		return s.writeLocked()
	}

	seen := make(map[string]bool)
	s.defs = s.defs[:0]
	for i, entry := range entries {
		var def Definition
		if err := json.Unmarshal(entry, &def); err != nil {
			logger.Store("skipping entry %d in %s: %v", i, s.path, err)
			continue
		}
		key := def.Origin.GuildID + "/" + def.Name
		if seen[key] {
			logger.Store("skipping duplicate command %q in guild %s", def.Name, def.Origin.GuildID)
			continue
		}
		seen[key] = true
		s.defs = append(s.defs, &def)
	}

	for _, def := range s.defs {
		s.disp.Register(def, &Bound{Def: def})
	}
	logger.Store("loaded %d custom command(s)", len(s.defs))
	return nil
}

// Save serializes the whole collection and atomically overwrites the blob.
// Called on orderly shutdown; definitions created since the last save are
// lost on abnormal termination, which is accepted.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked()
}

// Create validates, appends, and registers a new definition. It does not
// persist; persistence happens at Save.
func (s *Store) Create(name string, args []Argument, output string, origin Origin) (*Bound, error) {
	def, err := NewDefinition(name, args, output, origin)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.defs {
		if existing.Name == name && existing.Origin.GuildID == origin.GuildID {
			return nil, ErrDuplicateCommand
		}
	}

	s.defs = append(s.defs, def)
	bound := &Bound{Def: def}
	s.disp.Register(def, bound)
	return bound, nil
}

// Delete removes a definition by name scoped to a guild. Authorization
// (administrator or original owner) is the caller's job.
func (s *Store) Delete(name, guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, def := range s.defs {
		if def.Name == name && def.Origin.GuildID == guildID {
			s.defs = append(s.defs[:i], s.defs[i+1:]...)
			s.disp.Unregister(guildID, name)
			return true
		}
	}
	return false
}

// Get returns a definition by name scoped to a guild.
func (s *Store) Get(name, guildID string) (*Definition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, def := range s.defs {
		if def.Name == name && def.Origin.GuildID == guildID {
			return def, true
		}
	}
	return nil, false
}

// List returns the guild's definitions in creation order.
func (s *Store) List(guildID string) []*Definition {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Definition
	for _, def := range s.defs {
		if def.Origin.GuildID == guildID {
			out = append(out, def)
		}
	}
	return out
}

func (s *Store) writeLocked() error {
	data, err := json.MarshalIndent(s.defs, "", "    ")
	if err != nil {
		return fmt.Errorf("customcommands: failed to marshal store: %w", err)
	}
	if s.defs == nil {
		data = []byte("[]")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("customcommands: failed to create directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("customcommands: failed to write temp file: %w", err)
	}
	f, err := os.OpenFile(tmp, os.O_RDWR, 0o644)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("customcommands: failed to open temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("customcommands: failed to sync temp file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("customcommands: failed to replace %s: %w", s.path, err)
	}
	return nil
}
