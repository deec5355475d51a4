package customcommands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDispatcher records register/unregister calls.
type fakeDispatcher struct {
	registered   map[string]*Bound
	unregistered []string
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{registered: make(map[string]*Bound)}
}

func (f *fakeDispatcher) Register(def *Definition, bound *Bound) {
	f.registered[def.Origin.GuildID+"/"+def.Name] = bound
}

func (f *fakeDispatcher) Unregister(guildID, name string) {
	delete(f.registered, guildID+"/"+name)
	f.unregistered = append(f.unregistered, guildID+"/"+name)
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "command_storage.json")
}

func TestStoreLoadMissingFile(t *testing.T) {
	path := storePath(t)
	s := NewStore(path, newFakeDispatcher())

	require.NoError(t, s.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStoreLoadCorruptFileSelfHeals(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{{{not json"), 0o644))

	s := NewStore(path, newFakeDispatcher())
	require.NoError(t, s.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStoreLoadSkipsInvalidEntries(t *testing.T) {
	blob := `[
		{"name":"good","ctx":{"guild_id":"g1","author":"a"},"output":"ok","args":[]},
		{"name":"badtag","ctx":{"guild_id":"g1","author":"a"},"output":"o",
		 "args":[{"name":"n","annotation":"IntConverter","default":null}]},
		{"name":"good","ctx":{"guild_id":"g1","author":"b"},"output":"dup","args":[]},
		{"name":"good","ctx":{"guild_id":"g2","author":"a"},"output":"other guild","args":[]}
	]`
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	disp := newFakeDispatcher()
	s := NewStore(path, disp)
	require.NoError(t, s.Load())

	// The bad tag and the duplicate are dropped; the same name in another
	// guild is a different command.
	assert.Len(t, disp.registered, 2)
	assert.Contains(t, disp.registered, "g1/good")
	assert.Contains(t, disp.registered, "g2/good")

	def, ok := s.Get("good", "g1")
	require.True(t, ok)
	assert.Equal(t, "ok", def.Output)
}

func TestStoreCreateAndDelete(t *testing.T) {
	disp := newFakeDispatcher()
	s := NewStore(storePath(t), disp)
	require.NoError(t, s.Load())

	origin := Origin{GuildID: "g1", Author: "alice#0420"}
	_, err := s.Create("greet", []Argument{{Name: "who", Default: NoDefault()}}, "Hello {who}!", origin)
	require.NoError(t, err)
	assert.Contains(t, disp.registered, "g1/greet")

	_, err = s.Create("greet", nil, "other", origin)
	assert.ErrorIs(t, err, ErrDuplicateCommand)

	// Same name in another guild is fine.
	_, err = s.Create("greet", nil, "other", Origin{GuildID: "g2", Author: "bob#0007"})
	require.NoError(t, err)

	assert.True(t, s.Delete("greet", "g1"))
	assert.False(t, s.Delete("greet", "g1"))
	assert.NotContains(t, disp.registered, "g1/greet")
	assert.Contains(t, disp.registered, "g2/greet")
}

func TestStoreCreateDoesNotPersistUntilSave(t *testing.T) {
	path := storePath(t)
	s := NewStore(path, newFakeDispatcher())
	require.NoError(t, s.Load())

	origin := Origin{GuildID: "g1", Author: "alice#0420"}
	_, err := s.Create("greet", nil, "hi", origin)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data), "create alone must not touch the blob")

	require.NoError(t, s.Save())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 1)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := storePath(t)
	s := NewStore(path, newFakeDispatcher())
	require.NoError(t, s.Load())

	origin := Origin{GuildID: "g1", Author: "alice#0420"}
	_, err := s.Create("greet",
		[]Argument{
			{Name: "user", Conversion: ConvertMember, Default: NoDefault()},
			{Name: "n", Default: LiteralDefault("5")},
		},
		"{user.name} x{n}", origin)
	require.NoError(t, err)
	require.NoError(t, s.Save())

	disp := newFakeDispatcher()
	reloaded := NewStore(path, disp)
	require.NoError(t, reloaded.Load())

	def, ok := reloaded.Get("greet", "g1")
	require.True(t, ok)
	assert.Equal(t, "{user.name} x{n}", def.Output)
	require.Len(t, def.Args, 2)
	assert.Equal(t, ConvertMember, def.Args[0].Conversion)
	assert.Equal(t, "5", def.Args[1].Default.Literal())
	assert.Contains(t, disp.registered, "g1/greet")
}

func TestStoreList(t *testing.T) {
	s := NewStore(storePath(t), newFakeDispatcher())
	require.NoError(t, s.Load())

	for _, name := range []string{"one", "two", "three"} {
		_, err := s.Create(name, nil, name, Origin{GuildID: "g1", Author: "a"})
		require.NoError(t, err)
	}
	_, err := s.Create("elsewhere", nil, "x", Origin{GuildID: "g2", Author: "a"})
	require.NoError(t, err)

	defs := s.List("g1")
	require.Len(t, defs, 3)
	// Creation order is preserved.
	assert.Equal(t, "one", defs[0].Name)
	assert.Equal(t, "two", defs[1].Name)
	assert.Equal(t, "three", defs[2].Name)
}
