package customcommands

import "sync"

// Registry is the live per-guild command table the message dispatcher
// consults. It implements Dispatcher; the store hands it references
// explicitly instead of reaching into shared globals. It reports ready only
// once every persisted definition has been re-registered.
type Registry struct {
	mu     sync.RWMutex
	guilds map[string]map[string]*Bound
	ready  bool
}

func NewRegistry() *Registry {
	return &Registry{guilds: make(map[string]map[string]*Bound)}
}

func (r *Registry) Register(def *Definition, bound *Bound) {
	r.mu.Lock()
	defer r.mu.Unlock()

	guild := r.guilds[def.Origin.GuildID]
	if guild == nil {
		guild = make(map[string]*Bound)
		r.guilds[def.Origin.GuildID] = guild
	}
	guild[def.Name] = bound
}

func (r *Registry) Unregister(guildID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guilds[guildID], name)
}

// Lookup finds a command by name within a guild.
func (r *Registry) Lookup(guildID, name string) (*Bound, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ready {
		return nil, false
	}
	bound, ok := r.guilds[guildID][name]
	return bound, ok
}

// SetReady marks startup registration as complete.
func (r *Registry) SetReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = true
}
