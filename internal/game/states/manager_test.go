package states

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubState is a minimal State for manager tests.
type stubState struct {
	BaseState

	manager *Manager

	// When set, the first Update call requests this change.
	requestOnUpdate StateType
	requested       bool

	updates    int
	events     []string
	cleanupErr error
	cleanups   int
}

func newStubState(name string) *stubState {
	return &stubState{BaseState: NewBaseState(name)}
}

func (s *stubState) Update(dt float64) {
	s.updates++
	if s.requestOnUpdate != "" && !s.requested {
		s.requested = true
		s.manager.RequestChange(s.requestOnUpdate, nil)
	}
}

func (s *stubState) Render(screen *ebiten.Image) {}

func (s *stubState) HandleEvent(event string, data Data) {
	s.events = append(s.events, event)
}

func (s *stubState) Cleanup() error {
	s.cleanups++
	return s.cleanupErr
}

// newTestManager builds a manager with the menu/gameplay/pause triangle.
func newTestManager() (*Manager, *stubState, *stubState, *stubState) {
	m := NewManager()
	menu := newStubState("MainMenu")
	play := newStubState("Gameplay")
	pause := newStubState("Pause")
	m.Register(StateMainMenu, menu)
	m.Register(StateGameplay, play)
	m.Register(StatePause, pause)
	m.RegisterTransition(Transition{From: StateMainMenu, To: StateGameplay})
	m.RegisterTransition(Transition{From: StateGameplay, To: StatePause})
	m.RegisterTransition(Transition{From: StatePause, To: StateGameplay})
	return m, menu, play, pause
}

func TestScenarioMenuGameplayPause(t *testing.T) {
	m, _, play, pause := newTestManager()

	// No current state yet: any registered tag is accepted.
	if !m.RequestChange(StateGameplay, nil) {
		t.Fatal("initial RequestChange should succeed")
	}
	if m.CurrentType() != "" {
		t.Fatal("change must not apply before Update")
	}

	m.Update(0)
	if m.CurrentType() != StateGameplay {
		t.Fatalf("expected gameplay, got %q", m.CurrentType())
	}
	if !play.Active() {
		t.Error("gameplay should be active")
	}

	if !m.RequestChange(StatePause, nil) {
		t.Fatal("gameplay -> pause should be allowed")
	}
	m.Update(0)
	if m.CurrentType() != StatePause {
		t.Fatalf("expected pause, got %q", m.CurrentType())
	}
	if m.PreviousType() != StateGameplay {
		t.Errorf("expected previous gameplay, got %q", m.PreviousType())
	}
	if !pause.Active() || play.Active() {
		t.Error("exactly the pause state should be active")
	}

	// History holds the predecessor tags in order.
	h := m.History()
	if len(h) != 1 || h[0] != StateGameplay {
		t.Errorf("unexpected history: %v", h)
	}
}

func TestSingleActiveState(t *testing.T) {
	m, menu, play, pause := newTestManager()

	m.RequestChange(StateGameplay, nil)
	m.Update(0)
	m.RequestChange(StatePause, nil)
	m.Update(0)
	m.ForceChange(StateMainMenu, nil)
	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	active := 0
	for _, s := range []*stubState{menu, play, pause} {
		if s.Active() {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active state, got %d", active)
	}
}

func TestDeferredApplicationFromUpdate(t *testing.T) {
	m, _, play, _ := newTestManager()
	play.manager = m
	play.requestOnUpdate = StatePause

	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	// The gameplay state's Update has requested pause; the change must
	// not have applied within the same tick.
	if m.CurrentType() != StateGameplay {
		t.Fatalf("change applied mid-tick: %q", m.CurrentType())
	}

	m.Update(0)
	if m.CurrentType() != StatePause {
		t.Fatalf("expected pause on next tick, got %q", m.CurrentType())
	}
}

func TestRequestChangeUnregistered(t *testing.T) {
	m, _, _, _ := newTestManager()
	if m.RequestChange(StateVictory, nil) {
		t.Error("unregistered tag must be rejected")
	}
	m.Update(0)
	if m.CurrentType() != "" {
		t.Error("no state should have been entered")
	}
}

func TestTransitionDenied(t *testing.T) {
	m, _, _, _ := newTestManager()
	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	// No gameplay -> main_menu edge exists.
	if m.RequestChange(StateMainMenu, nil) {
		t.Error("expected denial without a matching transition")
	}
	m.Update(0)
	if m.CurrentType() != StateGameplay {
		t.Errorf("denied change mutated state: %q", m.CurrentType())
	}
}

func TestGuardFailClosed(t *testing.T) {
	m := NewManager()
	a := newStubState("A")
	b := newStubState("B")
	m.Register(StateMainMenu, a)
	m.Register(StateGameplay, b)
	m.RegisterTransition(Transition{
		From: StateMainMenu,
		To:   StateGameplay,
		Guard: func(shared Data) bool {
			panic("broken guard")
		},
	})

	m.RequestChange(StateMainMenu, nil)
	m.Update(0)

	if m.RequestChange(StateGameplay, nil) {
		t.Error("panicking guard must deny the transition")
	}
	m.Update(0)
	if m.CurrentType() != StateMainMenu {
		t.Errorf("state changed despite guard fault: %q", m.CurrentType())
	}
}

func TestGuardReadsSharedData(t *testing.T) {
	m := NewManager()
	m.Register(StateMainMenu, newStubState("A"))
	m.Register(StateGameplay, newStubState("B"))
	m.RegisterTransition(Transition{
		From: StateMainMenu,
		To:   StateGameplay,
		Guard: func(shared Data) bool {
			v, ok := shared["level_selected"]
			return ok && v.(bool)
		},
	})

	m.RequestChange(StateMainMenu, nil)
	m.Update(0)

	if m.RequestChange(StateGameplay, nil) {
		t.Error("guard should deny without shared data")
	}

	m.SetShared("level_selected", true)
	if !m.RequestChange(StateGameplay, nil) {
		t.Error("guard should pass with shared data set")
	}
}

func TestGuardOrderFirstPassingWins(t *testing.T) {
	m := NewManager()
	m.Register(StateMainMenu, newStubState("A"))
	m.Register(StateGameplay, newStubState("B"))
	m.RegisterTransition(Transition{
		From:  StateMainMenu,
		To:    StateGameplay,
		Guard: func(shared Data) bool { return false },
	})
	m.RegisterTransition(Transition{From: StateMainMenu, To: StateGameplay})

	m.RequestChange(StateMainMenu, nil)
	m.Update(0)

	if !m.RequestChange(StateGameplay, nil) {
		t.Error("second transition with passing guard should win")
	}
}

func TestHistoryBound(t *testing.T) {
	m, _, _, _ := newTestManager()
	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	// Ping-pong gameplay <-> pause well past the cap.
	next := StatePause
	for i := 0; i < 25; i++ {
		if !m.RequestChange(next, nil) {
			t.Fatalf("transition %d denied", i)
		}
		m.Update(0)
		if next == StatePause {
			next = StateGameplay
		} else {
			next = StatePause
		}
	}

	h := m.History()
	if len(h) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(h))
	}
	// The newest entry is the predecessor of the current state.
	if m.CurrentType() == StatePause && h[9] != StateGameplay {
		t.Errorf("unexpected newest history entry: %v", h[9])
	}
}

func TestReturnToPrevious(t *testing.T) {
	m, _, _, _ := newTestManager()

	if m.ReturnToPrevious(nil) {
		t.Error("no previous state yet; must fail")
	}

	m.RequestChange(StateGameplay, nil)
	m.Update(0)
	m.RequestChange(StatePause, nil)
	m.Update(0)

	if !m.ReturnToPrevious(nil) {
		t.Fatal("pause -> gameplay return should be allowed")
	}
	m.Update(0)
	if m.CurrentType() != StateGameplay {
		t.Errorf("expected gameplay after return, got %q", m.CurrentType())
	}
}

func TestForceChangeBypassesTable(t *testing.T) {
	m, _, _, _ := newTestManager()
	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	// gameplay -> main_menu has no edge, ForceChange ignores that.
	if !m.ForceChange(StateMainMenu, nil) {
		t.Fatal("force change should succeed for a registered tag")
	}
	if m.CurrentType() != StateMainMenu {
		t.Errorf("expected main menu, got %q", m.CurrentType())
	}

	if m.ForceChange(StateVictory, nil) {
		t.Error("force change must still reject unregistered tags")
	}
}

func TestEnterReceivesTransitionData(t *testing.T) {
	m := NewManager()

	var got Data
	s := &dataCaptureState{BaseState: NewBaseState("Capture")}
	s.onEnter = func(data Data) { got = data }
	m.Register(StateGameplay, s)

	m.RequestChange(StateGameplay, Data{"wave": 3})
	m.Update(0)

	if got == nil || got["wave"] != 3 {
		t.Errorf("transition data not delivered: %v", got)
	}
}

type dataCaptureState struct {
	BaseState
	onEnter func(Data)
}

func (s *dataCaptureState) Enter(prev State, data Data) {
	s.BaseState.Enter(prev, data)
	if s.onEnter != nil {
		s.onEnter(data)
	}
}

func (s *dataCaptureState) Update(dt float64)           {}
func (s *dataCaptureState) Render(screen *ebiten.Image) {}

func TestEventForwarding(t *testing.T) {
	m, _, play, _ := newTestManager()

	// No active state: silently dropped.
	m.HandleEvent(EventKeyDown, nil)

	m.RequestChange(StateGameplay, nil)
	m.Update(0)
	m.HandleEvent(EventMouseDown, Data{"x": 1.0})

	if len(play.events) != 1 || play.events[0] != EventMouseDown {
		t.Errorf("event not forwarded: %v", play.events)
	}
}

func TestValidate(t *testing.T) {
	m := NewManager()
	m.Register(StateMainMenu, newStubState("Menu"))
	m.Register(StateGameplay, newStubState("Play"))
	m.Register(StateSettings, newStubState("Settings"))
	m.RegisterTransition(Transition{From: StateMainMenu, To: StateGameplay})
	m.RegisterTransition(Transition{From: StateGameplay, To: StateVictory})

	issues := m.Validate()

	wantSubstrings := []string{
		"transition target not registered: victory",
		"no path to the main menu",
		"orphan state (unreachable): settings",
	}
	for _, want := range wantSubstrings {
		found := false
		for _, issue := range issues {
			if strings.Contains(issue, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing issue %q in %v", want, issues)
		}
	}
}

func TestValidateCleanMachine(t *testing.T) {
	m, _, _, _ := newTestManager()
	m.RegisterTransition(Transition{From: StatePause, To: StateMainMenu})

	if issues := m.Validate(); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestCleanup(t *testing.T) {
	m, menu, play, pause := newTestManager()
	play.cleanupErr = errors.New("boom")

	m.RequestChange(StateGameplay, nil)
	m.Update(0)
	m.SetShared("money", 100)

	m.Cleanup()

	if m.Current() != nil || m.CurrentType() != "" || m.PreviousType() != "" {
		t.Error("cleanup did not clear state pointers")
	}
	if _, ok := m.Shared("money"); ok {
		t.Error("cleanup did not clear shared data")
	}
	if len(m.History()) != 0 {
		t.Error("cleanup did not clear history")
	}
	if play.Active() {
		t.Error("active state was not exited")
	}

	// Every state's hook ran despite one failing.
	for _, s := range []*stubState{menu, play, pause} {
		if s.cleanups != 1 {
			t.Errorf("state %s cleaned %d times", s.Name(), s.cleanups)
		}
	}
}

func TestSharedDataSurvivesTransitions(t *testing.T) {
	m, _, _, _ := newTestManager()
	m.SetShared("score", 42)

	m.RequestChange(StateGameplay, nil)
	m.Update(0)
	m.RequestChange(StatePause, nil)
	m.Update(0)

	v, ok := m.Shared("score")
	if !ok || v != 42 {
		t.Errorf("shared data lost across transitions: %v", v)
	}

	m.ClearShared()
	if _, ok := m.Shared("score"); ok {
		t.Error("ClearShared did not clear")
	}
}

func TestCanGoTo(t *testing.T) {
	m, _, _, _ := newTestManager()

	// Before the first transition, any registered state qualifies.
	if !m.CanGoTo(StatePause) {
		t.Error("expected any registered state reachable before start")
	}
	if m.CanGoTo(StateVictory) {
		t.Error("unregistered state must not qualify")
	}

	m.RequestChange(StateGameplay, nil)
	m.Update(0)

	if !m.CanGoTo(StatePause) {
		t.Error("gameplay -> pause should qualify")
	}
	if m.CanGoTo(StateMainMenu) {
		t.Error("gameplay -> main_menu has no edge")
	}
	if !m.IsIn(StateGameplay) {
		t.Error("IsIn should report gameplay")
	}
}
