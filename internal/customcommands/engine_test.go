package customcommands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter resolves tokens from a fixed table and fails on anything else.
type fakeConverter struct {
	members  map[string]Author
	channels map[string]Channel
}

func (f *fakeConverter) Convert(kind Conversion, raw string) (Value, error) {
	switch kind {
	case ConvertMember:
		if m, ok := f.members[raw]; ok {
			return m, nil
		}
	case ConvertChannel:
		if c, ok := f.channels[raw]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no match for %q", raw)
}

func testContext() *TemplateContext {
	return &TemplateContext{
		Author:  Author{Name: "alice", Discriminator: "0420", Nick: "Al", Mention: "<@1>", ID: "1"},
		Channel: Channel{Name: "general", Mention: "<#2>"},
		Guild:   Guild{Name: "Library"},
		Message: "hello there",
	}
}

func mustDefinition(t *testing.T, name string, args []Argument, output string) *Definition {
	t.Helper()
	def, err := NewDefinition(name, args, output, Origin{GuildID: "g1", Author: "alice#0420"})
	require.NoError(t, err)
	return def
}

func TestInvokeRequiredArg(t *testing.T) {
	def := mustDefinition(t, "greet",
		[]Argument{{Name: "who", Default: NoDefault()}},
		"Hello {who}!")

	out, err := Invoke(def, []string{"World"}, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", out)

	_, err = Invoke(def, nil, testContext(), &fakeConverter{})
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 1, arity.Required)
	assert.Equal(t, 0, arity.Supplied)
}

func TestInvokeLiteralDefault(t *testing.T) {
	def := mustDefinition(t, "drink",
		[]Argument{{Name: "n", Default: LiteralDefault("5")}},
		"{n} cups")

	out, err := Invoke(def, nil, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "5 cups", out)

	out, err = Invoke(def, []string{"3"}, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "3 cups", out)
}

func TestInvokeUnboundPlaceholder(t *testing.T) {
	def := mustDefinition(t, "broken", nil, "{missing}")

	_, err := Invoke(def, nil, testContext(), &fakeConverter{})
	var render *RenderError
	require.ErrorAs(t, err, &render)
	assert.Equal(t, "missing", render.Placeholder)

	// Extra tokens don't rescue a template naming an unbound value.
	_, err = Invoke(def, []string{"anything"}, testContext(), &fakeConverter{})
	require.ErrorAs(t, err, &render)
}

func TestInvokeContextDefault(t *testing.T) {
	def := mustDefinition(t, "whoami",
		[]Argument{{Name: "who", Default: ContextDefault("author.name")}},
		"You are {who}")

	out, err := Invoke(def, nil, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "You are alice", out)

	// A different invoker resolves differently; nothing is memoized.
	other := testContext()
	other.Author.Name = "bob"
	out, err = Invoke(def, nil, other, &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "You are bob", out)
}

func TestInvokeMemberConversion(t *testing.T) {
	conv := &fakeConverter{members: map[string]Author{
		"bob": {Name: "bob", Discriminator: "0007", Mention: "<@7>", ID: "7"},
	}}
	def := mustDefinition(t, "poke",
		[]Argument{{Name: "user", Conversion: ConvertMember, Default: NoDefault()}},
		"{user.mention} got poked by {ctx.author.name}")

	out, err := Invoke(def, []string{"bob"}, testContext(), conv)
	require.NoError(t, err)
	assert.Equal(t, "<@7> got poked by alice", out)

	_, err = Invoke(def, []string{"nobody"}, testContext(), conv)
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "user", convErr.Arg)
	assert.Equal(t, ConvertMember, convErr.Kind)
	assert.Equal(t, "nobody", convErr.Token)
}

func TestInvokeSoftAttributeMiss(t *testing.T) {
	def := mustDefinition(t, "soft",
		[]Argument{{Name: "word", Default: NoDefault()}},
		"{word.nope} and {ctx.author.nothing}")

	// Attribute misses degrade to "None"; they never fail the invocation.
	out, err := Invoke(def, []string{"x"}, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "None and None", out)
}

func TestInvokeCtxPlaceholders(t *testing.T) {
	def := mustDefinition(t, "where", nil,
		"{ctx.author} in {ctx.channel.name} ({ctx.server.name}): {ctx.message}")

	out, err := Invoke(def, nil, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "alice#0420 in general (Library): hello there", out)
}

func TestInvokeArityBoundary(t *testing.T) {
	def := mustDefinition(t, "mixed",
		[]Argument{
			{Name: "a", Default: NoDefault()},
			{Name: "b", Default: LiteralDefault("two")},
		},
		"{a} {b}")

	// Exactly the required count binds defaults for the rest.
	out, err := Invoke(def, []string{"one"}, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "one two", out)

	// Supplying the optional token overrides its default.
	out, err = Invoke(def, []string{"one", "2"}, testContext(), &fakeConverter{})
	require.NoError(t, err)
	assert.Equal(t, "one 2", out)

	_, err = Invoke(def, nil, testContext(), &fakeConverter{})
	var arity *ArityError
	require.True(t, errors.As(err, &arity))
}
