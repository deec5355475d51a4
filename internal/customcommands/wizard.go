package customcommands

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bookshelf/internal/logger"
)

// WizardState is where a creation flow currently waits.
type WizardState int

const (
	StateArgName WizardState = iota
	StateConversion
	StateDefault
	StateOutput
	StateDone
	StateCancelled
)

// Wizard collects one definition through a sequence of prompts. It is a
// plain state machine driven by discrete messages: feed it input with
// Advance and send whatever reply it returns. No partial definition exists
// anywhere until the caller takes the finished Result to the store.
type Wizard struct {
	state       WizardState
	name        string
	origin      Origin
	args        []Argument
	pending     Argument
	optionalYet bool
	output      string
}

// Result is a finished wizard's collected definition input.
type Result struct {
	Name   string
	Args   []Argument
	Output string
	Origin Origin
}

func NewWizard(name string, origin Origin) *Wizard {
	return &Wizard{state: StateArgName, name: name, origin: origin}
}

func (w *Wizard) State() WizardState {
	return w.state
}

// Prompt returns the opening prompt for the current state.
func (w *Wizard) Prompt() string {
	switch w.state {
	case StateArgName:
		return "Let's build `" + w.name + "`. Send the name of the first argument. " +
			"Type `stop` when you're done with arguments, or `cancel` to abort."
	case StateConversion:
		return fmt.Sprintf("Should `%s` be converted? Reply `member`, `channel`, or `none`.", w.pending.Name)
	case StateDefault:
		return fmt.Sprintf("What should `%s` default to? Reply `required` for no default. "+
			"Defaults starting with `ctx.` are resolved at invocation time (see `cc classes`).", w.pending.Name)
	case StateOutput:
		return "Now send the output. Use brackets to place arguments or `ctx`, e.g. " +
			"`{user.name} drank {number} cups of water in {ctx.channel.name}`."
	default:
		return ""
	}
}

// Advance feeds one message into the wizard and returns the reply to send.
// A literal `cancel` aborts from any prompt; `stop` ends argument
// collection (only at the argument-name prompt).
func (w *Wizard) Advance(input string) string {
	input = strings.TrimSpace(input)

	if input == "cancel" {
		w.state = StateCancelled
		return "Cancelled."
	}

	switch w.state {
	case StateArgName:
		if input == "stop" {
			w.state = StateOutput
			return w.Prompt()
		}
		if strings.ContainsAny(input, " \t") {
			return "Argument names can't contain spaces. Try again."
		}
		w.pending = Argument{Name: input}
		w.state = StateConversion
		return w.Prompt()

	case StateConversion:
		conv, ok := ConversionFromWord(input)
		if !ok {
			return "That's not a conversion I know. Reply `member`, `channel`, or `none`."
		}
		w.pending.Conversion = conv
		w.state = StateDefault
		return w.Prompt()

	case StateDefault:
		if input == "required" {
			if w.optionalYet {
				w.state = StateCancelled
				return "You can't have a required argument after an optional one. Cancelled."
			}
			w.pending.Default = NoDefault()
		} else {
			w.pending.Default = ParseDefault(input)
			w.optionalYet = true
		}
		w.args = append(w.args, w.pending)
		w.pending = Argument{}
		w.state = StateArgName
		return "Added. Send the next argument name, `stop`, or `cancel`."

	case StateOutput:
		w.output = input
		w.state = StateDone
		return ""

	default:
		return ""
	}
}

// Take returns the collected input once the wizard is done.
func (w *Wizard) Take() (Result, bool) {
	if w.state != StateDone {
		return Result{}, false
	}
	return Result{Name: w.name, Args: w.args, Output: w.output, Origin: w.origin}, true
}

// Manager runs wizard sessions keyed by channel and author, one per pair,
// each bounded by a per-step timeout. A timed-out session is abandoned
// silently: the session disappears and nothing is persisted.
type Manager struct {
	mu       sync.Mutex
	timeout  time.Duration
	sessions map[string]*session
}

type session struct {
	wizard *Wizard
	timer  *time.Timer
}

func NewManager(timeout time.Duration) *Manager {
	return &Manager{timeout: timeout, sessions: make(map[string]*session)}
}

func sessionKey(channelID, userID string) string {
	return channelID + ":" + userID
}

// Begin starts a wizard for (channel, author) and returns the first prompt.
func (m *Manager) Begin(channelID, userID, name string, origin Origin) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(channelID, userID)
	if _, ok := m.sessions[key]; ok {
		return "", fmt.Errorf("a command creation is already in progress here")
	}

	w := NewWizard(name, origin)
	sess := &session{wizard: w}
	sess.timer = time.AfterFunc(m.timeout, func() {
		m.expire(key)
	})
	m.sessions[key] = sess
	return w.Prompt(), nil
}

// Active reports whether (channel, author) has a wizard in flight.
func (m *Manager) Active(channelID, userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionKey(channelID, userID)]
	return ok
}

// Deliver routes one message into the active session, if any. When the
// wizard finishes, the completed Result is returned and the session ends.
func (m *Manager) Deliver(channelID, userID, content string) (reply string, res *Result, handled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(channelID, userID)
	sess, ok := m.sessions[key]
	if !ok {
		return "", nil, false
	}

	reply = sess.wizard.Advance(content)

	switch sess.wizard.State() {
	case StateDone:
		sess.timer.Stop()
		delete(m.sessions, key)
		result, _ := sess.wizard.Take()
		return reply, &result, true
	case StateCancelled:
		sess.timer.Stop()
		delete(m.sessions, key)
		return reply, nil, true
	default:
		sess.timer.Reset(m.timeout)
		return reply, nil, true
	}
}

func (m *Manager) expire(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[key]; ok {
		delete(m.sessions, key)
		logger.Wizard("session %s timed out, abandoning", key)
	}
}
