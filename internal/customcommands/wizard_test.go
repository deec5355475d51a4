package customcommands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardFullFlow(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1", Author: "alice#0420"})
	require.Equal(t, StateArgName, w.State())

	w.Advance("who")
	require.Equal(t, StateConversion, w.State())
	w.Advance("member")
	require.Equal(t, StateDefault, w.State())
	w.Advance("required")
	require.Equal(t, StateArgName, w.State())

	w.Advance("times")
	w.Advance("none")
	w.Advance("3")
	require.Equal(t, StateArgName, w.State())

	w.Advance("stop")
	require.Equal(t, StateOutput, w.State())
	w.Advance("Hi {who.name}, {times} times")
	require.Equal(t, StateDone, w.State())

	res, ok := w.Take()
	require.True(t, ok)
	assert.Equal(t, "greet", res.Name)
	assert.Equal(t, "Hi {who.name}, {times} times", res.Output)
	require.Len(t, res.Args, 2)
	assert.Equal(t, ConvertMember, res.Args[0].Conversion)
	assert.False(t, res.Args[0].Default.IsSet())
	assert.Equal(t, "3", res.Args[1].Default.Literal())
}

func TestWizardCancelFirstPromptProducesNothing(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1"})

	reply := w.Advance("cancel")
	assert.Equal(t, "Cancelled.", reply)
	assert.Equal(t, StateCancelled, w.State())

	_, ok := w.Take()
	assert.False(t, ok)
}

func TestWizardCancelMidway(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1"})
	w.Advance("who")
	w.Advance("none")

	assert.Equal(t, "Cancelled.", w.Advance("cancel"))
	_, ok := w.Take()
	assert.False(t, ok)
}

func TestWizardNoArguments(t *testing.T) {
	w := NewWizard("hello", Origin{GuildID: "g1"})
	w.Advance("stop")
	require.Equal(t, StateOutput, w.State())
	w.Advance("Hello!")

	res, ok := w.Take()
	require.True(t, ok)
	assert.Empty(t, res.Args)
	assert.Equal(t, "Hello!", res.Output)
}

func TestWizardRequiredAfterOptionalCancels(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1"})
	w.Advance("times")
	w.Advance("none")
	w.Advance("3") // optional

	w.Advance("who")
	w.Advance("none")
	reply := w.Advance("required")

	assert.Equal(t, StateCancelled, w.State())
	assert.Contains(t, reply, "required argument after an optional")
	_, ok := w.Take()
	assert.False(t, ok)
}

func TestWizardRejectsBadInputWithoutAdvancing(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1"})

	w.Advance("has space")
	assert.Equal(t, StateArgName, w.State())

	w.Advance("who")
	w.Advance("integer")
	assert.Equal(t, StateConversion, w.State(), "unknown conversion re-prompts")
}

func TestWizardContextDefault(t *testing.T) {
	w := NewWizard("greet", Origin{GuildID: "g1"})
	w.Advance("who")
	w.Advance("none")
	w.Advance("ctx.author.name")
	w.Advance("stop")
	w.Advance("Hi {who}")

	res, ok := w.Take()
	require.True(t, ok)
	require.Len(t, res.Args, 1)
	assert.True(t, res.Args[0].Default.IsRef())
	assert.Equal(t, "author.name", res.Args[0].Default.Path())
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(time.Minute)

	prompt, err := m.Begin("c1", "u1", "greet", Origin{GuildID: "g1"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "greet")
	assert.True(t, m.Active("c1", "u1"))

	// One wizard per (channel, author).
	_, err = m.Begin("c1", "u1", "other", Origin{GuildID: "g1"})
	assert.Error(t, err)

	// A different channel is a separate session.
	_, err = m.Begin("c2", "u1", "other", Origin{GuildID: "g1"})
	require.NoError(t, err)

	_, res, handled := m.Deliver("c1", "u1", "stop")
	assert.True(t, handled)
	assert.Nil(t, res)

	_, res, handled = m.Deliver("c1", "u1", "Hello!")
	assert.True(t, handled)
	require.NotNil(t, res)
	assert.Equal(t, "greet", res.Name)
	assert.False(t, m.Active("c1", "u1"), "finished session is gone")
}

func TestManagerCancelEndsSession(t *testing.T) {
	m := NewManager(time.Minute)
	_, err := m.Begin("c1", "u1", "greet", Origin{GuildID: "g1"})
	require.NoError(t, err)

	reply, res, handled := m.Deliver("c1", "u1", "cancel")
	assert.True(t, handled)
	assert.Nil(t, res)
	assert.Equal(t, "Cancelled.", reply)
	assert.False(t, m.Active("c1", "u1"))
}

func TestManagerIgnoresStrangers(t *testing.T) {
	m := NewManager(time.Minute)
	_, _, handled := m.Deliver("c1", "u1", "anything")
	assert.False(t, handled)
}

func TestManagerTimeoutAbandonsSilently(t *testing.T) {
	m := NewManager(20 * time.Millisecond)
	_, err := m.Begin("c1", "u1", "greet", Origin{GuildID: "g1"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return !m.Active("c1", "u1")
	}, time.Second, 5*time.Millisecond)

	_, _, handled := m.Deliver("c1", "u1", "who")
	assert.False(t, handled, "expired session no longer answers")
}
