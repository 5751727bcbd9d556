package player

// State is one node of the player state machine. Every hook receives the
// controller that owns the machine.
type State interface {
	Name() string
	Enter(c *Controller)
	Exit(c *Controller)
	Update(c *Controller)
	LateUpdate(c *Controller)
	FixedUpdate(c *Controller)
}

// StateMachine holds the active state and forwards lifecycle hooks to it.
// Transitions are synchronous: Exit on the old state returns before Enter on
// the new one starts.
type StateMachine struct {
	ctx     *Controller
	current State

	// OnTransition, when set, runs after Exit and before Enter.
	OnTransition func(from, to State)
}

func NewStateMachine(ctx *Controller) *StateMachine {
	return &StateMachine{ctx: ctx}
}

// Initialize sets the first state and enters it.
func (m *StateMachine) Initialize(s State) {
	m.current = s
	s.Enter(m.ctx)
}

func (m *StateMachine) Current() State {
	return m.current
}

func (m *StateMachine) CurrentStateName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// ChangeState switches to s. Switching to the active instance does nothing.
func (m *StateMachine) ChangeState(s State) {
	if s == m.current {
		return
	}
	m.transition(s)
}

// Retrigger runs a full Exit and Enter cycle even when s is already active.
func (m *StateMachine) Retrigger(s State) {
	m.transition(s)
}

func (m *StateMachine) transition(s State) {
	prev := m.current
	prev.Exit(m.ctx)
	m.current = s
	if m.OnTransition != nil {
		m.OnTransition(prev, s)
	}
	s.Enter(m.ctx)
}

// Update, LateUpdate and FixedUpdate panic when called before Initialize.

func (m *StateMachine) Update() {
	m.current.Update(m.ctx)
}

func (m *StateMachine) LateUpdate() {
	m.current.LateUpdate(m.ctx)
}

func (m *StateMachine) FixedUpdate() {
	m.current.FixedUpdate(m.ctx)
}
