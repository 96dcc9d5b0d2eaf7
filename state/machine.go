package state

// Machine holds one state value. Set only queues the next value; the
// change and its hooks happen on the next apply, so every system in a
// schedule observes the same state.
type Machine[S comparable] struct {
	name    string
	current S
	pending S
	queued  bool

	onEnter  map[S][]func()
	onChange []func(from, to S)
}

func NewMachine[S comparable](name string, initial S) *Machine[S] {
	return &Machine[S]{
		name:    name,
		current: initial,
		onEnter: make(map[S][]func()),
	}
}

func (m *Machine[S]) Name() string {
	return m.name
}

func (m *Machine[S]) Get() S {
	return m.current
}

func (m *Machine[S]) Is(s S) bool {
	return m.current == s
}

// Set queues next. A later Set before the apply overwrites it.
func (m *Machine[S]) Set(next S) {
	m.pending = next
	m.queued = true
}

func (m *Machine[S]) OnEnter(s S, fn func()) {
	m.onEnter[s] = append(m.onEnter[s], fn)
}

func (m *Machine[S]) OnChange(fn func(from, to S)) {
	m.onChange = append(m.onChange, fn)
}

// Apply commits the queued value, if any, and runs hooks. Setting the
// current value again is a no-op.
func (m *Machine[S]) Apply() bool {
	next, ok := m.take()
	if !ok {
		return false
	}
	return m.commit(next)
}

func (m *Machine[S]) take() (S, bool) {
	if !m.queued {
		var zero S
		return zero, false
	}
	m.queued = false
	return m.pending, true
}

func (m *Machine[S]) commit(next S) bool {
	if next == m.current {
		return false
	}
	prev := m.current
	m.current = next
	for _, fn := range m.onChange {
		fn(prev, next)
	}
	for _, fn := range m.onEnter[next] {
		fn()
	}
	return true
}

// Force replaces the state without hooks. Used when a run is torn down.
func (m *Machine[S]) Force(s S) {
	m.current = s
	m.queued = false
}

type applier interface {
	prepare() func()
}

func (m *Machine[S]) prepare() func() {
	next, ok := m.take()
	if !ok {
		return nil
	}
	return func() { m.commit(next) }
}

// Machines bundles the game's state machines. The application state,
// audio settings and asset override are the only process-wide resources;
// this is the first of them.
type Machines struct {
	App          *Machine[AppState]
	Transition   *Machine[TransitionState]
	Fade         *Machine[FadeState]
	BGM          *Machine[BGMState]
	Interaction  *Machine[InteractionState]
	Conversation *Machine[ConversationState]
}

func NewMachines(initial AppState) *Machines {
	return &Machines{
		App:          NewMachine("app", initial),
		Transition:   NewMachine("transition", TransitionIdle),
		Fade:         NewMachine("fade", FadeNone),
		BGM:          NewMachine("bgm", BGMChanged),
		Interaction:  NewMachine("interaction", InteractionNotReady),
		Conversation: NewMachine("conversation", ConversationFinished),
	}
}

// Apply commits every value queued before the call. Values queued by hooks
// while applying wait for the next Apply.
func (ms *Machines) Apply() {
	all := []applier{ms.App, ms.Transition, ms.Fade, ms.BGM, ms.Interaction, ms.Conversation}
	commits := make([]func(), 0, len(all))
	for _, m := range all {
		if c := m.prepare(); c != nil {
			commits = append(commits, c)
		}
	}
	for _, c := range commits {
		c()
	}
}

// Trace reports every committed change through logf.
func (ms *Machines) Trace(logf func(format string, args ...any)) {
	traceChanges(ms.App, logf)
	traceChanges(ms.Transition, logf)
	traceChanges(ms.Fade, logf)
	traceChanges(ms.BGM, logf)
	traceChanges(ms.Interaction, logf)
	traceChanges(ms.Conversation, logf)
}

func traceChanges[S comparable](m *Machine[S], logf func(format string, args ...any)) {
	name := m.Name()
	m.OnChange(func(from, to S) {
		logf("state: %s %v -> %v", name, from, to)
	})
}

// Gameplay reports whether world simulation should run.
func (ms *Machines) Gameplay() bool {
	return ms.App.Is(AppInGame)
}
