package states

import "go.uber.org/zap"

// Guard decides whether a transition may fire, given the manager's shared
// data. Guards must be side-effect free.
type Guard func(shared Data) bool

// Transition is an allowed edge in the state machine. Multiple transitions
// may share the same From; they are tried in registration order and the
// first one matching To with a passing guard wins.
type Transition struct {
	From  StateType
	To    StateType
	Guard Guard
	Data  Data
}

// canTransition evaluates the guard against the shared data. A guard that
// panics is treated as a denial: a broken guard can never force a
// transition through.
func (t Transition) canTransition(shared Data, log *zap.Logger) (ok bool) {
	if t.Guard == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("transition guard panicked",
				zap.String("from", string(t.From)),
				zap.String("to", string(t.To)),
				zap.Any("panic", r),
			)
			ok = false
		}
	}()
	return t.Guard(shared)
}
