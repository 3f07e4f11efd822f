package states

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/ToRaNek/TowerDefense/internal/logger"
)

// maxHistorySize bounds the transition history; the oldest entry is
// evicted first.
const maxHistorySize = 10

type pendingChange struct {
	tag  StateType
	data Data
}

// Manager owns the registered states and the transition table, and applies
// at most one state change per update tick.
type Manager struct {
	log *zap.Logger

	states      map[StateType]State
	transitions map[StateType][]Transition

	current      State
	currentType  StateType
	previous     State
	previousType StateType

	pending *pendingChange
	shared  Data
	history []StateType
}

// NewManager creates an empty state manager.
func NewManager() *Manager {
	m := &Manager{
		log:         logger.Named("StateManager"),
		states:      make(map[StateType]State),
		transitions: make(map[StateType][]Transition),
		shared:      Data{},
	}
	m.log.Info("state manager initialized")
	return m
}

// Register stores a state instance under a tag, silently overwriting any
// previous instance for that tag.
func (m *Manager) Register(tag StateType, s State) {
	m.states[tag] = s
	m.log.Debug("state registered", zap.String("state", string(tag)))
}

// RegisterTransition adds an allowed edge to the transition table.
func (m *Manager) RegisterTransition(t Transition) {
	m.transitions[t.From] = append(m.transitions[t.From], t)
	m.log.Debug("transition registered",
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
	)
}

// SetupDefaultTransitions registers the standard screen flow.
func (m *Manager) SetupDefaultTransitions() {
	defaults := []Transition{
		{From: StateMainMenu, To: StateGameplay},
		{From: StateGameplay, To: StatePause},
		{From: StatePause, To: StateGameplay},
		{From: StateGameplay, To: StateGameOver},
		{From: StateGameplay, To: StateVictory},
		{From: StateGameOver, To: StateMainMenu},
		{From: StateVictory, To: StateMainMenu},
		{From: StatePause, To: StateMainMenu},
		{From: StateMainMenu, To: StateSettings},
		{From: StateSettings, To: StateMainMenu},
		{From: StateMainMenu, To: StateLevelSelect},
		{From: StateLevelSelect, To: StateMainMenu},
		{From: StateLevelSelect, To: StateLoading},
		{From: StateLoading, To: StateGameplay},
	}
	for _, t := range defaults {
		m.RegisterTransition(t)
	}
	m.log.Info("default transitions configured")
}

// RequestChange asks for a state change. The change is validated against
// the transition table now but applied at the start of the next Update,
// so a state may safely request a transition from inside its own Update.
// Returns false if the tag is unregistered or the transition is denied.
func (m *Manager) RequestChange(tag StateType, data Data) bool {
	if _, ok := m.states[tag]; !ok {
		m.log.Error("state not registered", zap.String("state", string(tag)))
		return false
	}

	if m.currentType != "" && !m.isTransitionAllowed(m.currentType, tag) {
		m.log.Warn("transition denied",
			zap.String("from", string(m.currentType)),
			zap.String("to", string(tag)),
		)
		return false
	}

	m.pending = &pendingChange{tag: tag, data: data}
	m.log.Info("state change scheduled", zap.String("state", string(tag)))
	return true
}

// ForceChange applies a state change immediately, bypassing the transition
// table. For debug and emergency paths. Returns false only if the tag is
// unregistered.
func (m *Manager) ForceChange(tag StateType, data Data) bool {
	if _, ok := m.states[tag]; !ok {
		m.log.Error("state not registered for forced change", zap.String("state", string(tag)))
		return false
	}
	m.log.Warn("forced state change", zap.String("state", string(tag)))
	m.execute(tag, data)
	return true
}

// ReturnToPrevious requests a change back to the previously active state.
// Still subject to transition validation against the current state.
func (m *Manager) ReturnToPrevious(data Data) bool {
	if m.previousType == "" {
		m.log.Warn("no previous state available")
		return false
	}
	return m.RequestChange(m.previousType, data)
}

// isTransitionAllowed searches the table in registration order for an
// edge from -> to with a passing guard; the first one that passes wins.
func (m *Manager) isTransitionAllowed(from, to StateType) bool {
	for _, t := range m.transitions[from] {
		if t.To == to && t.canTransition(m.shared, m.log) {
			return true
		}
	}
	return false
}

// execute performs the state switch. The ordering matters: the old state
// exits before history and previous-pointers are updated, so its Exit
// still observes the pointers of the prior frame.
func (m *Manager) execute(tag StateType, data Data) {
	next := m.states[tag]

	if m.current != nil {
		m.current.Exit(next)
	}

	if m.currentType != "" {
		m.history = append(m.history, m.currentType)
		if len(m.history) > maxHistorySize {
			m.history = m.history[1:]
		}
	}

	m.previous = m.current
	m.previousType = m.currentType
	m.current = next
	m.currentType = tag

	m.current.Enter(m.previous, data)
	m.log.Info("state changed", zap.String("state", string(tag)))
}

// Update applies one pending state change, then forwards dt to the active
// state.
func (m *Manager) Update(dt float64) {
	if m.pending != nil {
		p := m.pending
		m.pending = nil
		m.execute(p.tag, p.data)
	}

	if m.current != nil {
		m.current.Update(dt)
	}
}

// Render forwards to the active state; no-op if none.
func (m *Manager) Render(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Render(screen)
	}
}

// HandleEvent forwards an input event to the active state; no-op if none.
func (m *Manager) HandleEvent(event string, data Data) {
	if m.current != nil {
		m.current.HandleEvent(event, data)
	}
}

// Current returns the active state, or nil.
func (m *Manager) Current() State {
	return m.current
}

// CurrentType returns the active state tag, or "".
func (m *Manager) CurrentType() StateType {
	return m.currentType
}

// PreviousType returns the tag active immediately before the current one,
// or "".
func (m *Manager) PreviousType() StateType {
	return m.previousType
}

// SetShared stores a value visible to all states. Shared data survives
// transitions.
func (m *Manager) SetShared(key string, value any) {
	m.shared[key] = value
}

// Shared reads a cross-state value.
func (m *Manager) Shared(key string) (any, bool) {
	v, ok := m.shared[key]
	return v, ok
}

// ClearShared drops all cross-state data.
func (m *Manager) ClearShared() {
	m.shared = Data{}
	m.log.Debug("shared data cleared")
}

// History returns a copy of the past state tags, oldest first, capped at
// the last 10 transitions.
func (m *Manager) History() []StateType {
	out := make([]StateType, len(m.history))
	copy(out, m.history)
	return out
}

// IsIn reports whether the given state is the active one.
func (m *Manager) IsIn(tag StateType) bool {
	return m.currentType == tag
}

// CanGoTo reports whether a change to the given state would currently be
// allowed.
func (m *Manager) CanGoTo(tag StateType) bool {
	if m.currentType == "" {
		_, ok := m.states[tag]
		return ok
	}
	return m.isTransitionAllowed(m.currentType, tag)
}

// Validate checks the consistency of the state machine and returns a list
// of human-readable issues. It is a diagnostic; callers decide whether a
// non-empty result is fatal.
func (m *Manager) Validate() []string {
	var issues []string

	for from, ts := range m.transitions {
		if _, ok := m.states[from]; !ok {
			issues = append(issues, fmt.Sprintf("transition source not registered: %s", from))
		}
		for _, t := range ts {
			if _, ok := m.states[t.To]; !ok {
				issues = append(issues, fmt.Sprintf("transition target not registered: %s", t.To))
			}
		}
	}

	// The main menu is the escape hatch; something must lead back to it.
	mainMenuReachable := false
	for _, ts := range m.transitions {
		for _, t := range ts {
			if t.To == StateMainMenu {
				mainMenuReachable = true
			}
		}
	}
	if _, ok := m.states[StateMainMenu]; ok && !mainMenuReachable {
		issues = append(issues, "no path to the main menu found")
	}

	// Orphan states: registered but never the target of any transition.
	// The main menu is exempt as the assumed entry point.
	reachable := make(map[StateType]bool)
	for _, ts := range m.transitions {
		for _, t := range ts {
			reachable[t.To] = true
		}
	}
	for tag := range m.states {
		if tag != StateMainMenu && !reachable[tag] {
			issues = append(issues, fmt.Sprintf("orphan state (unreachable): %s", tag))
		}
	}

	return issues
}

// Cleanup exits the active state, clears all manager data and gives every
// registered state a chance to release resources through an optional
// Cleanup hook. One state's failure never blocks the others'.
func (m *Manager) Cleanup() {
	m.log.Info("cleaning up state manager")

	if m.current != nil {
		m.current.Exit(nil)
	}

	m.current = nil
	m.currentType = ""
	m.previous = nil
	m.previousType = ""
	m.shared = Data{}
	m.history = nil
	m.pending = nil

	for tag, s := range m.states {
		c, ok := s.(interface{ Cleanup() error })
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.log.Error("state cleanup panicked",
						zap.String("state", string(tag)),
						zap.Any("panic", r),
					)
				}
			}()
			if err := c.Cleanup(); err != nil {
				m.log.Error("state cleanup failed",
					zap.String("state", string(tag)),
					zap.Error(err),
				)
			}
		}()
	}

	m.states = make(map[StateType]State)
	m.transitions = make(map[StateType][]Transition)
	m.log.Info("state manager cleaned up")
}
