package customcommands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tctx := testContext()

	tests := []struct {
		path string
		want string
	}{
		{"author", "alice#0420"},
		{"author.name", "alice"},
		{"author.nick", "Al"},
		{"author.mention", "<@1>"},
		{"author.id", "1"},
		{"channel", "<#2>"},
		{"channel.name", "general"},
		{"guild", "Library"},
		{"guild.name", "Library"},
		{"server.name", "Library"},
		{"message", "hello there"},
		// Soft failures, never errors.
		{"author.age", "None"},
		{"message.length", "None"},
		{"weather", "None"},
		{"", "None"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tctx.Resolve(tt.path), "path %q", tt.path)
	}
}

func TestRegistryReadiness(t *testing.T) {
	r := NewRegistry()
	def := &Definition{Name: "greet", Origin: Origin{GuildID: "g1"}}
	bound := &Bound{Def: def}
	r.Register(def, bound)

	_, ok := r.Lookup("g1", "greet")
	assert.False(t, ok, "registry answers nothing before SetReady")

	r.SetReady()
	got, ok := r.Lookup("g1", "greet")
	assert.True(t, ok)
	assert.Same(t, bound, got)

	// Guild scoping holds.
	_, ok = r.Lookup("g2", "greet")
	assert.False(t, ok)

	r.Unregister("g1", "greet")
	_, ok = r.Lookup("g1", "greet")
	assert.False(t, ok)
}
