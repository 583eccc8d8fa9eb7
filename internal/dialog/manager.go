package dialog

// Manager runs one conversation: it owns a State, steps it with a Machine
// and forwards every reply to an outbound callback. Turns must not be
// handled concurrently.
type Manager struct {
	machine   *Machine
	state     *State
	onMessage func(string)
}

// NewManager creates a Manager. onMessage may be nil.
func NewManager(opts Options, onMessage func(string)) *Manager {
	if onMessage == nil {
		onMessage = func(string) {}
	}
	return &Manager{
		machine:   NewMachine(opts),
		state:     NewState(),
		onMessage: onMessage,
	}
}

// Start resets the conversation and emits the opening greeting.
func (m *Manager) Start() string {
	m.state = NewState()
	m.state.StartedAt = m.machine.now()
	msg := m.machine.Opening()
	m.onMessage(msg)
	return msg
}

// HandleTurn processes one learner utterance and returns the reply. The
// reply is also passed to the outbound callback.
func (m *Manager) HandleTurn(text string) string {
	reply := m.machine.Step(m.state, text)
	m.onMessage(reply)
	return reply
}

// State returns the live conversation state. Callers must not modify it.
func (m *Manager) State() *State {
	return m.state
}

// Stage returns the current stage.
func (m *Manager) Stage() Stage {
	return m.state.Stage
}
